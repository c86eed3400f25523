package domain

import "time"

// GreetingMessageID is the reserved id of the locally generated welcome message.
const GreetingMessageID = "init"

// Spec is one row of a product's specification table.
type Spec struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Product is an immutable catalogue record.
type Product struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Category         string   `json:"category"`
	PriceRef         int      `json:"price_ref"`
	ImageURL         string   `json:"image_url"`
	ShortDescription string   `json:"short_description"`
	ClinicalSummary  string   `json:"clinical_summary"`
	Badges           []string `json:"badges"`
	Specs            []Spec   `json:"specs"`
}

// SpecMap returns the specification table keyed by spec name.
func (p Product) SpecMap() map[string]string {
	out := make(map[string]string, len(p.Specs))
	for _, s := range p.Specs {
		out[s.Key] = s.Value
	}
	return out
}

// ChatMessage is one turn of a session's conversation log.
type ChatMessage struct {
	ID                  string    `json:"id"`
	Role                Role      `json:"role"`
	Text                string    `json:"text"`
	CreatedAt           time.Time `json:"created_at"`
	IsProductSuggestion bool      `json:"is_product_suggestion,omitempty"`
	SuggestedProducts   []Product `json:"suggested_products,omitempty"`
}

// NewChatMessage builds a message whose suggestion flag follows the product list.
func NewChatMessage(id string, role Role, text string, at time.Time, products []Product) ChatMessage {
	msg := ChatMessage{
		ID:        id,
		Role:      role,
		Text:      text,
		CreatedAt: at,
	}
	if len(products) > 0 {
		msg.IsProductSuggestion = true
		msg.SuggestedProducts = append([]Product(nil), products...)
	}
	return msg
}

// Turn is the provider-neutral view of a chat message.
type Turn struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Turn converts the message for transmission.
func (m ChatMessage) Turn() Turn {
	return Turn{ID: m.ID, Role: m.Role, Text: m.Text}
}

// Session represents one browser session.
type Session struct {
	SessionID string    `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
}

// StoredMessage is the persisted form of a ChatMessage.
type StoredMessage struct {
	MessageID  string    `json:"message_id"`
	SessionID  string    `json:"session_id"`
	Seq        int64     `json:"seq"`
	Role       Role      `json:"role"`
	Content    string    `json:"content"`
	ProductIDs []string  `json:"product_ids,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
