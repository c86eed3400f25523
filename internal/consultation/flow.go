// Package consultation implements the multi-step consultation request form.
package consultation

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/teconavi/alitaramdemo2/internal/domain"
)

// BlockedError lists why the current step cannot be left.
type BlockedError struct {
	Step    domain.ConsultationStep
	Reasons []string
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("%s step incomplete: %s", e.Step, strings.Join(e.Reasons, "; "))
}

func (e *BlockedError) Unwrap() error {
	return domain.ErrStepBlocked
}

// Flow is the form state machine: contact -> condition -> context -> confirm,
// with submit as the terminal transition out of confirm.
type Flow struct {
	gate    Gate
	product *domain.Product
	now     func() time.Time

	mu   sync.Mutex
	step domain.ConsultationStep
	form domain.ConsultationForm
}

// NewFlow opens a draft, optionally tied to the product that prompted it.
func NewFlow(gate Gate, product *domain.Product) *Flow {
	f := &Flow{
		gate: gate,
		now:  time.Now,
		step: domain.StepContact,
		form: domain.ConsultationForm{MobilityLevel: domain.MobilityIndependent},
	}
	if product != nil {
		p := *product
		f.product = &p
		f.form.OriginProductID = p.ID
	}
	return f
}

// View returns the current step and draft.
func (f *Flow) View() domain.ConsultationView {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.viewLocked()
}

func (f *Flow) viewLocked() domain.ConsultationView {
	return domain.ConsultationView{
		Step:    f.step,
		Index:   f.step.Index(),
		Form:    f.form,
		Product: f.product,
	}
}

// Update applies the fields present in patch.
func (f *Flow) Update(patch domain.ConsultationPatch) (domain.ConsultationView, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step == domain.StepSubmitted {
		return f.viewLocked(), domain.ErrNoConsultation
	}
	if patch.Name != nil {
		f.form.Name = *patch.Name
	}
	if patch.Phone != nil {
		f.form.Phone = *patch.Phone
	}
	if patch.Province != nil {
		f.form.Province = *patch.Province
	}
	if patch.MobilityLevel != nil {
		f.form.MobilityLevel = *patch.MobilityLevel
	}
	if patch.Condition != nil {
		f.form.Condition = *patch.Condition
	}
	if patch.Details != nil {
		f.form.Details = *patch.Details
	}
	return f.viewLocked(), nil
}

// Next advances one step if the gate allows leaving the current one.
func (f *Flow) Next(ctx context.Context) (domain.ConsultationView, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	idx := f.step.Index()
	switch {
	case f.step == domain.StepSubmitted:
		return f.viewLocked(), domain.ErrNoConsultation
	case idx == len(domain.ConsultationSteps)-1:
		return f.viewLocked(), domain.ErrNoNextStep
	}

	if err := f.checkLocked(ctx); err != nil {
		return f.viewLocked(), err
	}
	f.step = domain.ConsultationSteps[idx+1]
	return f.viewLocked(), nil
}

// Back returns to the previous step. Fields keep their values.
func (f *Flow) Back() (domain.ConsultationView, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	idx := f.step.Index()
	switch {
	case f.step == domain.StepSubmitted:
		return f.viewLocked(), domain.ErrNoConsultation
	case idx <= 0:
		return f.viewLocked(), domain.ErrNoPreviousStep
	}
	f.step = domain.ConsultationSteps[idx-1]
	return f.viewLocked(), nil
}

// Review returns the summary shown on the confirm step.
func (f *Flow) Review() (domain.ConsultationView, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != domain.StepConfirm {
		return f.viewLocked(), domain.ErrNotAtReview
	}
	return f.viewLocked(), nil
}

// Submit finalises the request from the confirm step.
func (f *Flow) Submit(ctx context.Context) (domain.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step != domain.StepConfirm {
		return domain.Receipt{}, domain.ErrNotAtReview
	}
	if err := f.checkLocked(ctx); err != nil {
		return domain.Receipt{}, err
	}

	f.step = domain.StepSubmitted
	return domain.Receipt{
		Reference:   "consult_" + uuid.New().String()[:8],
		Form:        f.form,
		Product:     f.product,
		SubmittedAt: f.now(),
	}, nil
}

func (f *Flow) checkLocked(ctx context.Context) error {
	decision, err := f.gate.Check(ctx, f.step, f.form)
	if err != nil {
		return fmt.Errorf("failed to check %s step: %w", f.step, err)
	}
	if !decision.Allow {
		return &BlockedError{Step: f.step, Reasons: decision.Reasons}
	}
	return nil
}
