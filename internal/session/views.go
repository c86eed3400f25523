package session

import (
	"context"
	"errors"

	"github.com/teconavi/alitaramdemo2/internal/consultation"
	"github.com/teconavi/alitaramdemo2/internal/domain"
)

// Consultation form events recorded in metrics.
const (
	eventOpened    = "opened"
	eventCancelled = "cancelled"
	eventSubmitted = "submitted"
	eventBlocked   = "blocked"
)

func (s *Session) OpenProductDetail(productID string, fromChat bool) (domain.UIState, error) {
	ui, err := s.nav.OpenProductDetail(productID, fromChat)
	if err != nil {
		return ui, err
	}
	return s.publishUI(ui), nil
}

// CloseProductDetail returns to the chat when the detail was opened from it.
func (s *Session) CloseProductDetail() domain.UIState {
	ui := s.publishUI(s.nav.CloseProductDetail())
	if ui.ChatOpen {
		s.chat.Open()
	}
	return ui
}

// ConsultFromDetail swaps the open detail view for a consultation about the same product.
func (s *Session) ConsultFromDetail() (domain.ConsultationView, error) {
	ui, productID, err := s.nav.ConsultFromDetail()
	if err != nil {
		return domain.ConsultationView{}, err
	}
	view := s.startConsultation(productID)
	s.publishUI(ui)
	return view, nil
}

func (s *Session) OpenAbout() domain.UIState {
	return s.publishUI(s.nav.OpenAbout())
}

func (s *Session) CloseAbout() domain.UIState {
	return s.publishUI(s.nav.CloseAbout())
}

// OpenConsultation starts a fresh draft. productID may be empty.
func (s *Session) OpenConsultation(productID string) (domain.ConsultationView, error) {
	ui, err := s.nav.OpenConsultation(productID)
	if err != nil {
		return domain.ConsultationView{}, err
	}
	view := s.startConsultation(productID)
	s.publishUI(ui)
	return view, nil
}

func (s *Session) startConsultation(productID string) domain.ConsultationView {
	var product *domain.Product
	if p, ok := s.deps.Catalog.Lookup(productID); ok {
		product = &p
	}
	flow := consultation.NewFlow(s.deps.Gate, product)

	s.mu.Lock()
	s.consult = flow
	s.mu.Unlock()

	s.deps.Metrics.ConsultationEvent(eventOpened)
	return flow.View()
}

// CloseConsultation cancels the draft.
func (s *Session) CloseConsultation() domain.UIState {
	s.mu.Lock()
	had := s.consult != nil
	s.consult = nil
	s.mu.Unlock()
	if had {
		s.deps.Metrics.ConsultationEvent(eventCancelled)
	}
	return s.publishUI(s.nav.CloseConsultation())
}

func (s *Session) flow() (*consultation.Flow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.consult == nil {
		return nil, domain.ErrNoConsultation
	}
	return s.consult, nil
}

func (s *Session) Consultation() (domain.ConsultationView, error) {
	f, err := s.flow()
	if err != nil {
		return domain.ConsultationView{}, err
	}
	return f.View(), nil
}

func (s *Session) UpdateConsultation(patch domain.ConsultationPatch) (domain.ConsultationView, error) {
	f, err := s.flow()
	if err != nil {
		return domain.ConsultationView{}, err
	}
	return f.Update(patch)
}

func (s *Session) NextConsultationStep(ctx context.Context) (domain.ConsultationView, error) {
	f, err := s.flow()
	if err != nil {
		return domain.ConsultationView{}, err
	}
	view, err := f.Next(ctx)
	if err != nil {
		s.recordBlocked(err)
	}
	return view, err
}

func (s *Session) PreviousConsultationStep() (domain.ConsultationView, error) {
	f, err := s.flow()
	if err != nil {
		return domain.ConsultationView{}, err
	}
	return f.Back()
}

// ReviewConsultation returns the confirm-step summary.
func (s *Session) ReviewConsultation() (domain.ConsultationView, error) {
	f, err := s.flow()
	if err != nil {
		return domain.ConsultationView{}, err
	}
	return f.Review()
}

// SubmitConsultation finalises the draft, discards it and closes the form.
func (s *Session) SubmitConsultation(ctx context.Context) (domain.Receipt, error) {
	f, err := s.flow()
	if err != nil {
		return domain.Receipt{}, err
	}
	receipt, err := f.Submit(ctx)
	if err != nil {
		s.recordBlocked(err)
		return domain.Receipt{}, err
	}

	s.mu.Lock()
	if s.consult == f {
		s.consult = nil
	}
	s.mu.Unlock()
	s.publishUI(s.nav.CloseConsultation())

	s.deps.Metrics.ConsultationEvent(eventSubmitted)
	s.log.WithField("reference", receipt.Reference).WithField("origin_product", receipt.Form.OriginProductID).Info("consultation requested")
	return receipt, nil
}

func (s *Session) recordBlocked(err error) {
	var blocked *consultation.BlockedError
	if errors.As(err, &blocked) {
		s.deps.Metrics.ConsultationEvent(eventBlocked)
	}
}
