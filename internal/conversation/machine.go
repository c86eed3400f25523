package conversation

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/teconavi/alitaramdemo2/internal/domain"
	"github.com/teconavi/alitaramdemo2/internal/recommend"
)

const (
	// GreetingText is the locally generated welcome message.
	GreetingText = "👋 Hi there. I am the AliTaram Specialist. I can analyze your needs and recommend specific clinical products. How can I help you move better today?"

	// EmptyReplyText replaces an empty provider reply.
	EmptyReplyText = "I apologize, I didn't quite catch that. Could you rephrase?"

	// DefaultGreetingDelay is how long after the chat first opens the greeting appears.
	DefaultGreetingDelay = 500 * time.Millisecond
)

// Sender produces the assistant reply for one turn. *Client implements it.
type Sender interface {
	SendTurn(ctx context.Context, history []domain.Turn, text string) string
}

// SuggestionObserver records machine-level chat events.
type SuggestionObserver interface {
	AddSuggestions(n int)
	BusyRejected()
}

// Hooks are called outside the state lock. OnMessage and OnStatus run in the
// order the changes were made and must not call back into the machine.
type Hooks struct {
	// OnMessage receives every appended message with its position in the log.
	OnMessage func(msg domain.ChatMessage, seq int)
	// OnStatus receives every status change.
	OnStatus func(status domain.ChatStatus)
	// OnIdle runs after a reply has been emitted. It may call Submit.
	OnIdle func()
}

// MachineOptions configures a Machine.
type MachineOptions struct {
	// GreetingDelay is applied when the chat first opens. Zero or less appends the greeting immediately.
	GreetingDelay time.Duration
	Lookup        recommend.LookupFunc
	Hooks         Hooks
	Observer      SuggestionObserver
	Now           func() time.Time
}

// Machine is the per-session conversation state machine. It allows at most one
// provider call in flight and keeps an append-only message log.
type Machine struct {
	sender   Sender
	lookup   recommend.LookupFunc
	hooks    Hooks
	observer SuggestionObserver
	now      func() time.Time
	delay    time.Duration

	// emitMu orders state changes with their hook calls. Taken before mu.
	emitMu sync.Mutex

	mu                sync.Mutex
	messages          []domain.ChatMessage
	status            domain.ChatStatus
	counter           int
	greetingScheduled bool
	greetingTimer     *time.Timer
	inflight          sync.WaitGroup
	stopped           bool
}

// NewMachine creates an idle machine with an empty log.
func NewMachine(sender Sender, opts MachineOptions) *Machine {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Lookup == nil {
		opts.Lookup = func(string) (domain.Product, bool) { return domain.Product{}, false }
	}
	return &Machine{
		sender:   sender,
		lookup:   opts.Lookup,
		hooks:    opts.Hooks,
		observer: opts.Observer,
		now:      opts.Now,
		delay:    opts.GreetingDelay,
		status:   domain.ChatStatusIdle,
	}
}

// Open seeds the greeting the first time the chat surface is shown.
func (m *Machine) Open() {
	m.mu.Lock()
	if m.stopped || m.greetingScheduled || len(m.messages) > 0 {
		m.mu.Unlock()
		return
	}
	m.greetingScheduled = true
	if m.delay > 0 {
		m.greetingTimer = time.AfterFunc(m.delay, m.appendGreeting)
		m.mu.Unlock()
		return
	}
	m.mu.Unlock()
	m.appendGreeting()
}

func (m *Machine) appendGreeting() {
	m.emitMu.Lock()
	defer m.emitMu.Unlock()

	m.mu.Lock()
	if m.stopped || m.hasGreetingLocked() {
		m.mu.Unlock()
		return
	}
	msg := domain.NewChatMessage(domain.GreetingMessageID, domain.RoleAssistant, GreetingText, m.now(), nil)
	seq := m.appendLocked(msg)
	m.mu.Unlock()

	m.emitMessage(msg, seq)
}

func (m *Machine) hasGreetingLocked() bool {
	for _, msg := range m.messages {
		if msg.ID == domain.GreetingMessageID {
			return true
		}
	}
	return false
}

// Submit appends a user message and starts the provider call in the background.
// The returned channel yields the assistant message once, then closes.
func (m *Machine) Submit(text string) (domain.ChatMessage, <-chan domain.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.ChatMessage{}, nil, domain.ErrEmptyMessage
	}

	m.emitMu.Lock()
	m.mu.Lock()
	if m.status == domain.ChatStatusAwaitingResponse {
		m.mu.Unlock()
		m.emitMu.Unlock()
		if m.observer != nil {
			m.observer.BusyRejected()
		}
		return domain.ChatMessage{}, nil, domain.ErrBusy
	}

	history := m.turnsLocked()
	m.counter++
	msg := domain.NewChatMessage(fmt.Sprintf("msg_%d", m.counter), domain.RoleUser, text, m.now(), nil)
	seq := m.appendLocked(msg)
	m.status = domain.ChatStatusAwaitingResponse
	m.inflight.Add(1)
	m.mu.Unlock()

	m.emitMessage(msg, seq)
	m.emitStatus(domain.ChatStatusAwaitingResponse)
	m.emitMu.Unlock()

	done := make(chan domain.ChatMessage, 1)
	go m.complete(history, text, done)
	return msg, done, nil
}

// complete runs detached from any request: a reply arriving after the chat
// surface closed is still appended.
func (m *Machine) complete(history []domain.Turn, text string, done chan<- domain.ChatMessage) {
	defer m.inflight.Done()
	defer close(done)

	raw := m.sender.SendTurn(context.Background(), history, text)
	if strings.TrimSpace(raw) == "" {
		raw = EmptyReplyText
	}
	parsed := recommend.Parse(raw, m.lookup)

	m.emitMu.Lock()
	m.mu.Lock()
	m.counter++
	reply := domain.NewChatMessage(fmt.Sprintf("msg_%d", m.counter), domain.RoleAssistant, parsed.Text, m.now(), parsed.Products)
	seq := m.appendLocked(reply)
	m.status = domain.ChatStatusIdle
	m.mu.Unlock()

	if m.observer != nil {
		m.observer.AddSuggestions(len(parsed.Products))
	}
	m.emitMessage(reply, seq)
	m.emitStatus(domain.ChatStatusIdle)
	m.emitMu.Unlock()

	if m.hooks.OnIdle != nil {
		m.hooks.OnIdle()
	}
	done <- reply
}

func (m *Machine) appendLocked(msg domain.ChatMessage) int {
	m.messages = append(m.messages, msg)
	return len(m.messages) - 1
}

func (m *Machine) turnsLocked() []domain.Turn {
	out := make([]domain.Turn, 0, len(m.messages))
	for _, msg := range m.messages {
		out = append(out, msg.Turn())
	}
	return out
}

func (m *Machine) emitMessage(msg domain.ChatMessage, seq int) {
	if m.hooks.OnMessage != nil {
		m.hooks.OnMessage(msg, seq)
	}
}

func (m *Machine) emitStatus(status domain.ChatStatus) {
	if m.hooks.OnStatus != nil {
		m.hooks.OnStatus(status)
	}
}

// Messages returns a copy of the log in append order.
func (m *Machine) Messages() []domain.ChatMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.ChatMessage, len(m.messages))
	copy(out, m.messages)
	return out
}

func (m *Machine) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.messages)
}

func (m *Machine) Status() domain.ChatStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// Wait blocks until no provider call is in flight.
func (m *Machine) Wait() {
	m.inflight.Wait()
}

// Stop cancels a pending greeting. In-flight calls still complete.
func (m *Machine) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopped = true
	if m.greetingTimer != nil {
		m.greetingTimer.Stop()
	}
}
