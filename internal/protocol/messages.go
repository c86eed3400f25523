// Package protocol defines the WebSocket message protocol between browsers and the site backend.
package protocol

import "github.com/teconavi/alitaramdemo2/internal/domain"

// Message types from client to server
const (
	TypeHello        = "hello"
	TypeChatSend     = "chat_send"
	TypeChatStart    = "chat_start"
	TypeChatOpen     = "chat_open"
	TypeChatClose    = "chat_close"
	TypeProductOpen  = "product_open"
	TypeProductClose = "product_close"
)

// Message types from server to client
const (
	TypeHelloAck    = "hello_ack"
	TypeChatMessage = "chat_message"
	TypeChatState   = "chat_state"
	TypeUIState     = "ui_state"
	TypeError       = "error"
)

// BaseMessage contains common fields for all messages.
type BaseMessage struct {
	Type      string `json:"type"`
	Ts        int64  `json:"ts"`
	RequestID string `json:"request_id,omitempty"`
	SessionID string `json:"session_id,omitempty"`
}

// HelloMessage binds the connection to an existing session, or creates one when SessionID is empty.
type HelloMessage struct {
	BaseMessage
	ClientMeta map[string]string `json:"client_meta,omitempty"`
}

// HelloAckMessage is sent after a successful hello. It carries the state needed to render.
type HelloAckMessage struct {
	BaseMessage
	State    domain.SessionState  `json:"state"`
	Messages []domain.ChatMessage `json:"messages"`
}

// ChatSendMessage submits user text.
type ChatSendMessage struct {
	BaseMessage
	Text string `json:"text"`
}

// ChatStartMessage opens the chat with a seed message. ProductID takes
// precedence over Topic, and Topic over Text.
type ChatStartMessage struct {
	BaseMessage
	Text      string `json:"text,omitempty"`
	ProductID string `json:"product_id,omitempty"`
	Topic     string `json:"topic,omitempty"`
}

// ProductOpenMessage opens a product detail view.
type ProductOpenMessage struct {
	BaseMessage
	ProductID string `json:"product_id"`
	FromChat  bool   `json:"from_chat"`
}

// ChatMessageEvent pushes one appended chat message.
type ChatMessageEvent struct {
	BaseMessage
	Seq     int                `json:"seq"`
	Message domain.ChatMessage `json:"message"`
}

// ChatStateEvent pushes the conversation status (drives the typing indicator).
type ChatStateEvent struct {
	BaseMessage
	Status domain.ChatStatus `json:"status"`
}

// UIStateEvent pushes the navigation state.
type UIStateEvent struct {
	BaseMessage
	UI domain.UIState `json:"ui"`
}

// ErrorMessage is sent when a client message cannot be handled.
type ErrorMessage struct {
	BaseMessage
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes
const (
	ErrorCodeInvalidMessage  = "invalid_message"
	ErrorCodeSessionRequired = "session_required"
	ErrorCodeNotFound        = "not_found"
	ErrorCodeBusy            = "busy"
	ErrorCodeInternalError   = "internal_error"
)
