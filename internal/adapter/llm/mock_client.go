package llm

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"
)

// MockRule maps message keywords onto a canned recommendation.
type MockRule struct {
	Keywords  []string
	ProductID string
	Reason    string
}

// DefaultMockRules cover the bundled catalogue.
var DefaultMockRules = []MockRule{
	{Keywords: []string{"bath", "tub", "shower"}, ProductID: "p2", Reason: "This allows seated entry without lifting the legs over the tub wall."},
	{Keywords: []string{"hip", "knee", "surgery", "walker"}, ProductID: "p1", Reason: "Its light frame suits the first weeks after joint surgery."},
	{Keywords: []string{"stroke", "gait", "foot drop"}, ProductID: "p3", Reason: "It corrects foot drop during the swing phase of walking."},
	{Keywords: []string{"recliner", "stand up", "lift chair"}, ProductID: "p4", Reason: "The vertical lift helps with standing when core strength is limited."},
	{Keywords: []string{"scooter", "outdoor", "errands"}, ProductID: "p5", Reason: "It keeps longer trips possible with limited walking endurance."},
	{Keywords: []string{"bed", "sleep"}, ProductID: "p6", Reason: "The Hi-Lo function makes bed transfers safer."},
	{Keywords: []string{"oxygen", "breath", "copd"}, ProductID: "p7", Reason: "Pulse-dose delivery gives up to 8 hours away from home."},
	{Keywords: []string{"ramp", "wheelchair", "stairs", "steps"}, ProductID: "p8", Reason: "The modular sections fit most entryways."},
}

// MockProvider is an offline Provider for local runs and tests.
type MockProvider struct {
	rules []MockRule
}

// NewMockProvider creates a mock provider. Nil rules select DefaultMockRules.
func NewMockProvider(rules []MockRule) *MockProvider {
	if rules == nil {
		rules = DefaultMockRules
	}
	return &MockProvider{rules: rules}
}

func (m *MockProvider) Name() string { return "mock" }

// Generate recommends the first product whose keywords appear in the message.
func (m *MockProvider) Generate(ctx context.Context, req *Request) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	text := strings.ToLower(req.Message)
	for _, rule := range m.rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(text, kw) {
				return fmt.Sprintf("Understood. I recommend the following. [RECOMMEND: %s] %s Would you like me to open the booking form so a specialist can confirm the fit?", rule.ProductID, rule.Reason), nil
			}
		}
	}

	if len(req.History) == 0 {
		return "I can help with that. Who is the equipment for, and how are they moving around today?", nil
	}
	return fmt.Sprintf("Thanks, noted: %q. Could you tell me where the difficulty happens most, for example the bathroom, the bedroom or the stairs?", truncate(req.Message, 100)), nil
}

// truncate shortens s to at most maxLen runes.
func truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	return string([]rune(s)[:maxLen]) + "..."
}
