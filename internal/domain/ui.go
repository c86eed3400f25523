package domain

// UIState is the per-session navigation state shared by every view.
type UIState struct {
	ChatOpen              bool   `json:"chat_open"`
	ConsultationOpen      bool   `json:"consultation_open"`
	ConsultationProductID string `json:"consultation_product_id,omitempty"`
	DetailProductID       string `json:"detail_product_id,omitempty"`
	DetailFromChat        bool   `json:"detail_from_chat"`
	AboutOpen             bool   `json:"about_open"`
	PendingChatMessage    string `json:"pending_chat_message,omitempty"`
}

// SessionState is the combined snapshot returned to clients.
type SessionState struct {
	SessionID    string            `json:"session_id"`
	UI           UIState           `json:"ui"`
	ChatStatus   ChatStatus        `json:"chat_status"`
	MessageCount int               `json:"message_count"`
	Detail       *Product          `json:"detail,omitempty"`
	Consultation *ConsultationView `json:"consultation,omitempty"`
}
