// Package navigation owns the per-session view state: which surfaces are open
// and how they hand off to each other.
package navigation

import (
	"fmt"
	"strings"
	"sync"

	"github.com/teconavi/alitaramdemo2/internal/domain"
)

// ProductLookup resolves catalogue ids.
type ProductLookup func(id string) (domain.Product, bool)

// Coordinator is the explicit store for domain.UIState. Every mutation is a named operation.
type Coordinator struct {
	lookup ProductLookup

	mu    sync.Mutex
	state domain.UIState
}

func NewCoordinator(lookup ProductLookup) *Coordinator {
	return &Coordinator{lookup: lookup}
}

// Snapshot returns a copy of the current state.
func (c *Coordinator) Snapshot() domain.UIState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Coordinator) OpenChat() domain.UIState {
	return c.update(func(s *domain.UIState) { s.ChatOpen = true })
}

func (c *Coordinator) CloseChat() domain.UIState {
	return c.update(func(s *domain.UIState) { s.ChatOpen = false })
}

// StartChatWithMessage opens the chat with text queued for sending.
func (c *Coordinator) StartChatWithMessage(text string) (domain.UIState, error) {
	if strings.TrimSpace(text) == "" {
		return c.Snapshot(), domain.ErrEmptyMessage
	}
	return c.update(func(s *domain.UIState) {
		s.PendingChatMessage = text
		s.ChatOpen = true
	}), nil
}

// TakePendingMessage consumes the queued chat text, if any.
func (c *Coordinator) TakePendingMessage() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	text := c.state.PendingChatMessage
	c.state.PendingChatMessage = ""
	return text, text != ""
}

// OpenProductDetail shows a product. Opening from the chat hides the chat and
// remembers to bring it back when the detail closes.
func (c *Coordinator) OpenProductDetail(productID string, fromChat bool) (domain.UIState, error) {
	if err := c.check(productID); err != nil {
		return c.Snapshot(), err
	}
	return c.update(func(s *domain.UIState) {
		s.DetailProductID = productID
		s.DetailFromChat = fromChat
		if fromChat {
			s.ChatOpen = false
		}
	}), nil
}

// CloseProductDetail hides the detail view, reopening the chat if that is where it came from.
func (c *Coordinator) CloseProductDetail() domain.UIState {
	return c.update(func(s *domain.UIState) {
		if s.DetailProductID == "" {
			return
		}
		if s.DetailFromChat {
			s.ChatOpen = true
		}
		s.DetailProductID = ""
		s.DetailFromChat = false
	})
}

// ConsultFromDetail closes the detail view without returning to the chat and
// opens the consultation for the same product.
func (c *Coordinator) ConsultFromDetail() (domain.UIState, string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	productID := c.state.DetailProductID
	if productID == "" {
		return c.state, "", domain.ErrNoDetailOpen
	}
	c.state.DetailProductID = ""
	c.state.DetailFromChat = false
	c.state.ConsultationOpen = true
	c.state.ConsultationProductID = productID
	return c.state, productID, nil
}

// OpenConsultation opens the form, optionally tied to an originating product.
func (c *Coordinator) OpenConsultation(productID string) (domain.UIState, error) {
	if productID != "" {
		if err := c.check(productID); err != nil {
			return c.Snapshot(), err
		}
	}
	return c.update(func(s *domain.UIState) {
		s.ConsultationOpen = true
		s.ConsultationProductID = productID
	}), nil
}

func (c *Coordinator) CloseConsultation() domain.UIState {
	return c.update(func(s *domain.UIState) {
		s.ConsultationOpen = false
		s.ConsultationProductID = ""
	})
}

func (c *Coordinator) OpenAbout() domain.UIState {
	return c.update(func(s *domain.UIState) { s.AboutOpen = true })
}

func (c *Coordinator) CloseAbout() domain.UIState {
	return c.update(func(s *domain.UIState) { s.AboutOpen = false })
}

func (c *Coordinator) update(fn func(s *domain.UIState)) domain.UIState {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.state)
	return c.state
}

func (c *Coordinator) check(productID string) error {
	if _, ok := c.lookup(productID); !ok {
		return fmt.Errorf("%w: %s", domain.ErrProductNotFound, productID)
	}
	return nil
}
