// Package session ties one browser session's view state, conversation and
// consultation draft together and publishes their changes.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/teconavi/alitaramdemo2/internal/catalog"
	"github.com/teconavi/alitaramdemo2/internal/consultation"
	"github.com/teconavi/alitaramdemo2/internal/conversation"
	"github.com/teconavi/alitaramdemo2/internal/domain"
	"github.com/teconavi/alitaramdemo2/internal/metrics"
	"github.com/teconavi/alitaramdemo2/internal/navigation"
	"github.com/teconavi/alitaramdemo2/internal/protocol"
	"github.com/teconavi/alitaramdemo2/internal/repository"
)

// Publisher pushes events to every client of a session.
type Publisher interface {
	BroadcastJSON(sessionID string, v interface{}) error
}

// Deps are shared by every session.
type Deps struct {
	Catalog       *catalog.Catalog
	Sender        conversation.Sender
	Gate          consultation.Gate
	Store         store.Store
	Publisher     Publisher
	Metrics       *metrics.Metrics
	Log           logrus.FieldLogger
	GreetingDelay time.Duration
}

// Session is the runtime state of one browser session.
type Session struct {
	ID        string
	CreatedAt time.Time

	deps Deps
	log  logrus.FieldLogger
	nav  *navigation.Coordinator
	chat *conversation.Machine

	// mu serialises chat submissions and the consultation draft.
	mu      sync.Mutex
	consult *consultation.Flow
}

// New creates an idle session. The caller persists the session record.
func New(id string, createdAt time.Time, deps Deps) *Session {
	s := &Session{
		ID:        id,
		CreatedAt: createdAt,
		deps:      deps,
		log:       deps.Log.WithField("session_id", id),
		nav:       navigation.NewCoordinator(deps.Catalog.Lookup),
	}
	s.chat = conversation.NewMachine(deps.Sender, conversation.MachineOptions{
		GreetingDelay: deps.GreetingDelay,
		Lookup:        deps.Catalog.Lookup,
		Observer:      deps.Metrics,
		Hooks: conversation.Hooks{
			OnMessage: s.onMessage,
			OnStatus:  s.onStatus,
			OnIdle:    s.sendPending,
		},
	})
	return s
}

func (s *Session) onMessage(msg domain.ChatMessage, seq int) {
	stored := &domain.StoredMessage{
		MessageID: msg.ID,
		SessionID: s.ID,
		Seq:       int64(seq),
		Role:      msg.Role,
		Content:   msg.Text,
		CreatedAt: msg.CreatedAt,
	}
	for _, p := range msg.SuggestedProducts {
		stored.ProductIDs = append(stored.ProductIDs, p.ID)
	}
	if err := s.deps.Store.AppendMessage(context.Background(), stored); err != nil {
		s.log.WithError(err).WithField("message_id", msg.ID).Error("failed to store chat message")
	}

	s.publish(protocol.ChatMessageEvent{
		BaseMessage: s.base(protocol.TypeChatMessage),
		Seq:         seq,
		Message:     msg,
	})
}

func (s *Session) onStatus(status domain.ChatStatus) {
	s.publish(protocol.ChatStateEvent{
		BaseMessage: s.base(protocol.TypeChatState),
		Status:      status,
	})
}

func (s *Session) base(typ string) protocol.BaseMessage {
	return protocol.BaseMessage{Type: typ, Ts: time.Now().UnixMilli(), SessionID: s.ID}
}

func (s *Session) publish(v interface{}) {
	if s.deps.Publisher == nil {
		return
	}
	if err := s.deps.Publisher.BroadcastJSON(s.ID, v); err != nil {
		s.log.WithError(err).Warn("failed to publish session event")
	}
}

func (s *Session) publishUI(ui domain.UIState) domain.UIState {
	s.publish(protocol.UIStateEvent{BaseMessage: s.base(protocol.TypeUIState), UI: ui})
	return ui
}

// sendPending submits the queued seed text once the conversation is idle.
func (s *Session) sendPending() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.chat.Status() != domain.ChatStatusIdle {
		return
	}
	text, ok := s.nav.TakePendingMessage()
	if !ok {
		return
	}
	if _, _, err := s.chat.Submit(text); err != nil {
		s.log.WithError(err).Warn("failed to send pending chat message")
	}
}

// State returns the combined snapshot for rendering.
func (s *Session) State() domain.SessionState {
	ui := s.nav.Snapshot()
	state := domain.SessionState{
		SessionID:    s.ID,
		UI:           ui,
		ChatStatus:   s.chat.Status(),
		MessageCount: s.chat.Len(),
	}
	if ui.DetailProductID != "" {
		if p, ok := s.deps.Catalog.Lookup(ui.DetailProductID); ok {
			state.Detail = &p
		}
	}
	s.mu.Lock()
	if s.consult != nil {
		v := s.consult.View()
		state.Consultation = &v
	}
	s.mu.Unlock()
	return state
}

// Close stops timers. In-flight replies still land in the (discarded) log.
func (s *Session) Close() {
	s.chat.Stop()
}

// Wait blocks until no reply is pending.
func (s *Session) Wait() {
	s.chat.Wait()
}
