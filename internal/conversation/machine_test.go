package conversation

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teconavi/alitaramdemo2/internal/catalog"
	"github.com/teconavi/alitaramdemo2/internal/domain"
)

type scriptedSender struct {
	mu        sync.Mutex
	histories [][]domain.Turn
	texts     []string
	reply     string
	release   chan struct{}
}

func (s *scriptedSender) SendTurn(ctx context.Context, history []domain.Turn, text string) string {
	s.mu.Lock()
	s.histories = append(s.histories, history)
	s.texts = append(s.texts, text)
	s.mu.Unlock()
	if s.release != nil {
		<-s.release
	}
	return s.reply
}

func (s *scriptedSender) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.texts)
}

func newTestMachine(sender Sender, opts MachineOptions) *Machine {
	if opts.Lookup == nil {
		opts.Lookup = catalog.Default().Lookup
	}
	return NewMachine(sender, opts)
}

func await(t *testing.T, done <-chan domain.ChatMessage) domain.ChatMessage {
	t.Helper()
	select {
	case msg := <-done:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for reply")
	}
	return domain.ChatMessage{}
}

func TestSubmitAppendsReplyWithSuggestions(t *testing.T) {
	m := newTestMachine(&scriptedSender{reply: "Try this. [RECOMMEND: p2]"}, MachineOptions{})

	user, done, err := m.Submit("  my dad cannot get out of the bath ")
	require.NoError(t, err)
	assert.Equal(t, "msg_1", user.ID)
	assert.Equal(t, "my dad cannot get out of the bath", user.Text)

	reply := await(t, done)
	assert.Equal(t, "msg_2", reply.ID)
	assert.Equal(t, domain.RoleAssistant, reply.Role)
	assert.Equal(t, "Try this.", reply.Text)
	assert.True(t, reply.IsProductSuggestion)
	require.Len(t, reply.SuggestedProducts, 1)
	assert.Equal(t, "p2", reply.SuggestedProducts[0].ID)

	assert.Equal(t, domain.ChatStatusIdle, m.Status())
	assert.Equal(t, 2, m.Len())
}

func TestSubmitRejectsEmpty(t *testing.T) {
	sender := &scriptedSender{reply: "x"}
	m := newTestMachine(sender, MachineOptions{})

	_, _, err := m.Submit("   \t\n")
	assert.ErrorIs(t, err, domain.ErrEmptyMessage)
	assert.Equal(t, 0, m.Len())
	assert.Equal(t, domain.ChatStatusIdle, m.Status())
	assert.Equal(t, 0, sender.callCount())
}

func TestSubmitWhileAwaitingIsRejected(t *testing.T) {
	sender := &scriptedSender{reply: "ok", release: make(chan struct{})}
	m := newTestMachine(sender, MachineOptions{})

	_, done, err := m.Submit("first")
	require.NoError(t, err)
	assert.Equal(t, domain.ChatStatusAwaitingResponse, m.Status())

	_, _, err = m.Submit("second")
	assert.ErrorIs(t, err, domain.ErrBusy)
	assert.Equal(t, 1, m.Len())

	close(sender.release)
	await(t, done)
	assert.Equal(t, 1, sender.callCount())
	assert.Equal(t, 2, m.Len())
}

func TestEmptyReplyIsReplaced(t *testing.T) {
	m := newTestMachine(&scriptedSender{reply: "  "}, MachineOptions{})

	_, done, err := m.Submit("hello")
	require.NoError(t, err)
	reply := await(t, done)
	assert.Equal(t, EmptyReplyText, reply.Text)
	assert.False(t, reply.IsProductSuggestion)
}

func TestFallbackReplyIsAppendedOnce(t *testing.T) {
	c := newTestClient(t, &fakeProvider{err: context.DeadlineExceeded}, nil)
	m := newTestMachine(c, MachineOptions{})

	_, done, err := m.Submit("hello")
	require.NoError(t, err)
	reply := await(t, done)

	msgs := m.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, FallbackText, reply.Text)
	assert.Equal(t, FallbackText, msgs[1].Text)
	assert.Equal(t, domain.ChatStatusIdle, m.Status())
}

func TestGreetingSeededOnceAndExcludedFromHistory(t *testing.T) {
	p := &fakeProvider{reply: "sure"}
	c := newTestClient(t, p, nil)
	m := newTestMachine(c, MachineOptions{GreetingDelay: 10 * time.Millisecond})

	m.Open()
	m.Open()
	assert.Equal(t, 0, m.Len())

	require.Eventually(t, func() bool { return m.Len() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	m.Open()

	msgs := m.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, domain.GreetingMessageID, msgs[0].ID)
	assert.Equal(t, domain.RoleAssistant, msgs[0].Role)
	assert.Equal(t, GreetingText, msgs[0].Text)

	_, done, err := m.Submit("first")
	require.NoError(t, err)
	await(t, done)
	_, done, err = m.Submit("second")
	require.NoError(t, err)
	await(t, done)

	calls := p.calls()
	require.Len(t, calls, 2)
	assert.Empty(t, calls[0].History)
	require.Len(t, calls[1].History, 2)
	for _, h := range calls[1].History {
		assert.NotEqual(t, GreetingText, h.Text)
	}
}

func TestGreetingNotSeededWhenLogNotEmpty(t *testing.T) {
	m := newTestMachine(&scriptedSender{reply: "ok"}, MachineOptions{})
	_, done, err := m.Submit("hi")
	require.NoError(t, err)
	await(t, done)

	m.Open()
	for _, msg := range m.Messages() {
		assert.NotEqual(t, domain.GreetingMessageID, msg.ID)
	}
}

func TestStopCancelsPendingGreeting(t *testing.T) {
	m := newTestMachine(&scriptedSender{}, MachineOptions{GreetingDelay: 20 * time.Millisecond})
	m.Open()
	m.Stop()

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 0, m.Len())
}

func TestHooksSeeEveryMessageInOrder(t *testing.T) {
	var (
		mu       sync.Mutex
		seqs     []int
		statuses []domain.ChatStatus
	)
	m := newTestMachine(&scriptedSender{reply: "ok"}, MachineOptions{Hooks: Hooks{
		OnMessage: func(msg domain.ChatMessage, seq int) {
			mu.Lock()
			defer mu.Unlock()
			seqs = append(seqs, seq)
		},
		OnStatus: func(s domain.ChatStatus) {
			mu.Lock()
			defer mu.Unlock()
			statuses = append(statuses, s)
		},
	}})

	m.Open()
	_, done, err := m.Submit("hi")
	require.NoError(t, err)
	await(t, done)
	m.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{0, 1, 2}, seqs)
	assert.Equal(t, []domain.ChatStatus{domain.ChatStatusAwaitingResponse, domain.ChatStatusIdle}, statuses)
}

// blockAfterFirst answers the first turn at once and holds every later one.
type blockAfterFirst struct {
	mu      sync.Mutex
	calls   int
	release chan struct{}
}

func (b *blockAfterFirst) SendTurn(ctx context.Context, history []domain.Turn, text string) string {
	b.mu.Lock()
	b.calls++
	n := b.calls
	b.mu.Unlock()
	if n > 1 {
		<-b.release
	}
	return "ok"
}

func TestStatusEventsFollowStateOrder(t *testing.T) {
	sender := &blockAfterFirst{release: make(chan struct{})}
	defer close(sender.release)

	var (
		mu       sync.Mutex
		statuses []domain.ChatStatus
		m        *Machine
	)
	second := make(chan error, 1)
	m = newTestMachine(sender, MachineOptions{Hooks: Hooks{
		OnMessage: func(msg domain.ChatMessage, seq int) {
			if msg.Role != domain.RoleAssistant || seq != 1 {
				return
			}
			// A concurrent submit lands while the first reply is being emitted.
			go func() {
				_, _, err := m.Submit("second")
				second <- err
			}()
			time.Sleep(20 * time.Millisecond)
		},
		OnStatus: func(s domain.ChatStatus) {
			mu.Lock()
			defer mu.Unlock()
			statuses = append(statuses, s)
		},
	}})

	_, done, err := m.Submit("first")
	require.NoError(t, err)
	await(t, done)

	select {
	case err := <-second:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatalf("second submit did not return")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []domain.ChatStatus{
		domain.ChatStatusAwaitingResponse,
		domain.ChatStatusIdle,
		domain.ChatStatusAwaitingResponse,
	}, statuses)
	assert.Equal(t, m.Status(), statuses[len(statuses)-1])
}

func TestOnIdleMaySubmit(t *testing.T) {
	sender := &scriptedSender{reply: "ok"}
	var m *Machine
	var once sync.Once
	m = newTestMachine(sender, MachineOptions{Hooks: Hooks{
		OnIdle: func() {
			once.Do(func() {
				_, _, err := m.Submit("follow up")
				assert.NoError(t, err)
			})
		},
	}})

	_, done, err := m.Submit("first")
	require.NoError(t, err)
	await(t, done)
	m.Wait()

	assert.Equal(t, 2, sender.callCount())
	assert.Equal(t, 4, m.Len())
}
