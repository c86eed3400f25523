// Package llm provides an abstraction over the language model APIs used by the assistant.
package llm

import (
	"context"
	"errors"
)

// Roles understood by every provider. Providers map them to their own vocabulary.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// ErrEmptyResponse is returned when the provider answers without any candidate text container.
var ErrEmptyResponse = errors.New("llm response has no candidates")

// Message is one prior turn of the conversation.
type Message struct {
	Role string
	Text string
}

// Request is a single conversational turn sent to a provider.
type Request struct {
	Model             string
	SystemInstruction string
	History           []Message
	Message           string
}

// Provider generates the assistant's reply for a conversational turn.
type Provider interface {
	// Generate returns the raw reply text. An empty string with a nil error is a valid reply.
	Generate(ctx context.Context, req *Request) (string, error)

	// Name identifies the provider in logs and metrics.
	Name() string
}

// Ensure every provider implements Provider.
var (
	_ Provider = (*GeminiProvider)(nil)
	_ Provider = (*OpenAIProvider)(nil)
	_ Provider = (*MockProvider)(nil)
)
