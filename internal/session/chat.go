package session

import (
	"context"
	"fmt"

	"github.com/teconavi/alitaramdemo2/internal/catalog"
	"github.com/teconavi/alitaramdemo2/internal/domain"
)

// OpenChat shows the chat surface and seeds the greeting on first open.
func (s *Session) OpenChat() domain.UIState {
	ui := s.publishUI(s.nav.OpenChat())
	s.chat.Open()
	return ui
}

func (s *Session) CloseChat() domain.UIState {
	return s.publishUI(s.nav.CloseChat())
}

// StartChat opens the chat with text to send as soon as the conversation is idle.
func (s *Session) StartChat(text string) (domain.UIState, error) {
	ui, err := s.nav.StartChatWithMessage(text)
	if err != nil {
		return ui, err
	}
	s.publishUI(ui)
	s.chat.Open()
	s.sendPending()
	return s.nav.Snapshot(), nil
}

// ChatAboutProduct starts the chat with an inquiry about one product.
func (s *Session) ChatAboutProduct(productID string) (domain.UIState, error) {
	p, err := s.deps.Catalog.Get(productID)
	if err != nil {
		return s.nav.Snapshot(), err
	}
	return s.StartChat(catalog.ProductInquiry(p.Name, p.ID))
}

// ChatAboutTopic starts the chat from one of the quick topics.
func (s *Session) ChatAboutTopic(topic string) (domain.UIState, error) {
	if !catalog.IsQuickTopic(topic) {
		return s.nav.Snapshot(), fmt.Errorf("%w: %s", domain.ErrUnknownTopic, topic)
	}
	return s.StartChat(catalog.TopicInquiry(topic))
}

// SendMessage submits user text. The returned channel yields the assistant reply.
func (s *Session) SendMessage(text string) (domain.ChatMessage, <-chan domain.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chat.Submit(text)
}

// Messages returns the stored log with suggestions resolved against the catalogue.
func (s *Session) Messages(ctx context.Context, limit int) ([]domain.ChatMessage, error) {
	stored, err := s.deps.Store.ListMessages(ctx, s.ID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	out := make([]domain.ChatMessage, 0, len(stored))
	for _, m := range stored {
		var products []domain.Product
		for _, id := range m.ProductIDs {
			if p, ok := s.deps.Catalog.Lookup(id); ok {
				products = append(products, p)
			}
		}
		out = append(out, domain.NewChatMessage(m.MessageID, m.Role, m.Content, m.CreatedAt, products))
	}
	return out, nil
}

// LiveMessages returns the in-memory log without touching the store.
func (s *Session) LiveMessages() []domain.ChatMessage {
	return s.chat.Messages()
}
