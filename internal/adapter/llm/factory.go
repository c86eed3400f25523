package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// ModeMock forces the mock provider regardless of credentials.
	ModeMock = "MOCK"

	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderMock   = "mock"
)

// Options selects and configures a provider.
type Options struct {
	Mode     string
	Provider string
	APIKey   string
	BaseURL  string
	Timeout  time.Duration
}

// NewProvider creates a Provider from options. Mock mode, the mock provider name,
// or a missing API key for a hosted provider all select the MockProvider.
func NewProvider(ctx context.Context, opts Options, log logrus.FieldLogger) (Provider, error) {
	if strings.EqualFold(opts.Mode, ModeMock) {
		log.Info("APP_MODE=MOCK detected, using mock LLM provider")
		return NewMockProvider(nil), nil
	}

	switch strings.ToLower(opts.Provider) {
	case ProviderMock:
		return NewMockProvider(nil), nil
	case "", ProviderGemini:
		if opts.APIKey == "" {
			log.Warn("no API key configured, using mock LLM provider")
			return NewMockProvider(nil), nil
		}
		return NewGeminiProvider(ctx, opts.APIKey)
	case ProviderOpenAI:
		if opts.BaseURL == "" {
			return nil, fmt.Errorf("LLM_BASE_URL is required for provider %q", opts.Provider)
		}
		return NewOpenAIProvider(opts.BaseURL, opts.APIKey, opts.Timeout), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", opts.Provider)
	}
}
