// Package conversation implements the assistant conversation: the provider-facing
// client and the per-session state machine.
package conversation

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/teconavi/alitaramdemo2/internal/adapter/llm"
	"github.com/teconavi/alitaramdemo2/internal/domain"
	"github.com/teconavi/alitaramdemo2/internal/metrics"
)

// FallbackText is returned to the user whenever the provider call fails.
const FallbackText = "I'm having a brief connection issue. Please try sending your message again, or click 'Book Consultation' for immediate help."

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// TurnObserver records provider call outcomes.
type TurnObserver interface {
	ObserveTurn(provider, outcome string, d time.Duration)
}

// ClientOptions configures a Client.
type ClientOptions struct {
	Model string
	// Timeout bounds one provider call. Zero disables it.
	Timeout time.Duration
}

// Client sends one conversational turn to the language model.
type Client struct {
	provider    llm.Provider
	model       string
	instruction string
	timeout     time.Duration
	log         logrus.FieldLogger
	observer    TurnObserver
}

// NewClient creates a client whose system instruction embeds the given catalogue.
func NewClient(provider llm.Provider, products []domain.Product, opts ClientOptions, log logrus.FieldLogger, observer TurnObserver) (*Client, error) {
	instruction, err := SystemInstruction(products)
	if err != nil {
		return nil, err
	}
	model := opts.Model
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		provider:    provider,
		model:       model,
		instruction: instruction,
		timeout:     opts.Timeout,
		log:         log.WithField("provider", provider.Name()),
		observer:    observer,
	}, nil
}

// SendTurn returns the raw reply for text given the prior history. It never fails:
// any provider error yields FallbackText. An empty reply is returned as is.
func (c *Client) SendTurn(ctx context.Context, history []domain.Turn, text string) string {
	req := &llm.Request{
		Model:             c.model,
		SystemInstruction: c.instruction,
		History:           ProviderHistory(history),
		Message:           text,
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	reply, err := c.generate(ctx, req)
	elapsed := time.Since(start)

	if err != nil {
		c.log.WithError(err).WithField("history_len", len(req.History)).Error("assistant turn failed, returning fallback")
		c.observe(metrics.OutcomeFallback, elapsed)
		return FallbackText
	}
	if reply == "" {
		c.observe(metrics.OutcomeEmpty, elapsed)
	} else {
		c.observe(metrics.OutcomeOK, elapsed)
	}
	c.log.WithField("duration", elapsed).Debug("assistant turn completed")
	return reply
}

func (c *Client) generate(ctx context.Context, req *llm.Request) (reply string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("provider panic: %v", r)
		}
	}()
	return c.provider.Generate(ctx, req)
}

func (c *Client) observe(outcome string, d time.Duration) {
	if c.observer != nil {
		c.observer.ObserveTurn(c.provider.Name(), outcome, d)
	}
}

// ProviderHistory drops system turns and the local greeting, then maps roles for the provider.
func ProviderHistory(history []domain.Turn) []llm.Message {
	out := make([]llm.Message, 0, len(history))
	for _, t := range history {
		if t.Role == domain.RoleSystem || t.ID == domain.GreetingMessageID {
			continue
		}
		role := llm.RoleUser
		if t.Role == domain.RoleAssistant {
			role = llm.RoleModel
		}
		out = append(out, llm.Message{Role: role, Text: t.Text})
	}
	return out
}
