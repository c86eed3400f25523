// Package ws provides the WebSocket endpoint browsers use for live chat and view state.
package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/teconavi/alitaramdemo2/internal/config"
	"github.com/teconavi/alitaramdemo2/internal/domain"
	"github.com/teconavi/alitaramdemo2/internal/hub"
	"github.com/teconavi/alitaramdemo2/internal/protocol"
	"github.com/teconavi/alitaramdemo2/internal/service"
	"github.com/teconavi/alitaramdemo2/internal/session"
)

// Server handles WebSocket connections.
type Server struct {
	cfg      *config.Config
	hub      *hub.Hub
	service  *service.Service
	log      logrus.FieldLogger
	upgrader websocket.Upgrader
}

// NewServer creates a new WebSocket server.
func NewServer(cfg *config.Config, h *hub.Hub, svc *service.Service, log logrus.FieldLogger) *Server {
	return &Server{
		cfg:     cfg,
		hub:     h,
		service: svc,
		log:     log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// RegisterRoutes mounts the WebSocket endpoint.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/ws", s.HandleWebSocket)
}

// HandleWebSocket handles WebSocket upgrade and connection lifecycle.
func (s *Server) HandleWebSocket(c echo.Context) error {
	ws, err := s.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		s.log.WithError(err).Warn("failed to upgrade websocket")
		return err
	}

	conn := s.hub.NewConnection(ws)
	s.hub.Register(conn)

	ws.SetReadLimit(s.cfg.MaxMessageSize)

	go s.writePump(conn)
	go s.readPump(conn)

	return nil
}

// readPump reads messages from the WebSocket connection.
func (s *Server) readPump(conn *hub.Connection) {
	defer func() {
		s.hub.Unregister(conn)
		conn.Close()
	}()

	conn.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout))
	conn.Conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout))
		return nil
	})

	for {
		_, message, err := conn.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.log.WithError(err).WithField("conn_id", conn.ID).Warn("websocket read failed")
			}
			break
		}

		s.handleMessage(conn, message)
	}
}

// writePump writes messages to the WebSocket connection.
func (s *Server) writePump(conn *hub.Connection) {
	ticker := time.NewTicker(s.cfg.PingInterval)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case message, ok := <-conn.Send:
			conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
			if !ok {
				// Hub closed the channel
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
				s.log.WithError(err).WithField("conn_id", conn.ID).Warn("websocket write failed")
				return
			}

		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleMessage dispatches incoming messages to appropriate handlers.
func (s *Server) handleMessage(conn *hub.Connection, data []byte) {
	var baseMsg protocol.BaseMessage
	if err := json.Unmarshal(data, &baseMsg); err != nil {
		s.sendError(conn, "", protocol.ErrorCodeInvalidMessage, "invalid JSON message")
		return
	}

	if baseMsg.Type == protocol.TypeHello {
		s.handleHello(conn, data)
		return
	}

	// Everything else needs a bound session.
	if conn.SessionID == "" {
		s.sendError(conn, baseMsg.RequestID, protocol.ErrorCodeSessionRequired, "must send hello first")
		return
	}
	sess, err := s.service.GetSession(conn.SessionID)
	if err != nil {
		s.sendDomainError(conn, baseMsg.RequestID, err)
		return
	}

	switch baseMsg.Type {
	case protocol.TypeChatSend:
		s.handleChatSend(conn, sess, baseMsg.RequestID, data)
	case protocol.TypeChatStart:
		s.handleChatStart(conn, sess, baseMsg.RequestID, data)
	case protocol.TypeChatOpen:
		sess.OpenChat()
	case protocol.TypeChatClose:
		sess.CloseChat()
	case protocol.TypeProductOpen:
		s.handleProductOpen(conn, sess, baseMsg.RequestID, data)
	case protocol.TypeProductClose:
		sess.CloseProductDetail()
	default:
		s.sendError(conn, baseMsg.RequestID, protocol.ErrorCodeInvalidMessage, "unknown message type: "+baseMsg.Type)
	}
}

// handleHello binds the connection to a session and sends the current state.
func (s *Server) handleHello(conn *hub.Connection, data []byte) {
	var msg protocol.HelloMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		s.sendError(conn, "", protocol.ErrorCodeInvalidMessage, "invalid hello message")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sess, created, err := s.service.GetOrCreateSession(ctx, msg.SessionID)
	if err != nil {
		s.sendDomainError(conn, msg.RequestID, err)
		return
	}
	messages, err := sess.Messages(ctx, 0)
	if err != nil {
		s.sendDomainError(conn, msg.RequestID, err)
		return
	}

	s.hub.BindSession(conn, sess.ID)

	ack := protocol.HelloAckMessage{
		BaseMessage: protocol.BaseMessage{
			Type:      protocol.TypeHelloAck,
			Ts:        time.Now().UnixMilli(),
			RequestID: msg.RequestID,
			SessionID: sess.ID,
		},
		State:    sess.State(),
		Messages: messages,
	}
	if err := s.hub.SendJSONToConnection(conn, ack); err != nil {
		s.log.WithError(err).WithField("conn_id", conn.ID).Warn("failed to send hello_ack")
	}

	s.log.WithFields(logrus.Fields{
		"conn_id":    conn.ID,
		"session_id": sess.ID,
		"created":    created,
	}).Info("hello handshake completed")
}

// handleChatSend submits user text. Messages and status changes reach the
// client through session events, so nothing is sent back here on success.
func (s *Server) handleChatSend(conn *hub.Connection, sess *session.Session, requestID string, data []byte) {
	var msg protocol.ChatSendMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		s.sendError(conn, requestID, protocol.ErrorCodeInvalidMessage, "invalid chat_send message")
		return
	}
	if _, _, err := sess.SendMessage(msg.Text); err != nil {
		s.sendDomainError(conn, requestID, err)
	}
}

func (s *Server) handleChatStart(conn *hub.Connection, sess *session.Session, requestID string, data []byte) {
	var msg protocol.ChatStartMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		s.sendError(conn, requestID, protocol.ErrorCodeInvalidMessage, "invalid chat_start message")
		return
	}
	var err error
	switch {
	case msg.ProductID != "":
		_, err = sess.ChatAboutProduct(msg.ProductID)
	case msg.Topic != "":
		_, err = sess.ChatAboutTopic(msg.Topic)
	default:
		_, err = sess.StartChat(msg.Text)
	}
	if err != nil {
		s.sendDomainError(conn, requestID, err)
	}
}

func (s *Server) handleProductOpen(conn *hub.Connection, sess *session.Session, requestID string, data []byte) {
	var msg protocol.ProductOpenMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		s.sendError(conn, requestID, protocol.ErrorCodeInvalidMessage, "invalid product_open message")
		return
	}
	if _, err := sess.OpenProductDetail(msg.ProductID, msg.FromChat); err != nil {
		s.sendDomainError(conn, requestID, err)
	}
}

func (s *Server) sendDomainError(conn *hub.Connection, requestID string, err error) {
	s.sendError(conn, requestID, errorCode(err), err.Error())
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptyMessage), errors.Is(err, domain.ErrUnknownTopic):
		return protocol.ErrorCodeInvalidMessage
	case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, domain.ErrProductNotFound):
		return protocol.ErrorCodeNotFound
	case errors.Is(err, domain.ErrBusy):
		return protocol.ErrorCodeBusy
	default:
		return protocol.ErrorCodeInternalError
	}
}

// sendError sends an error message to a connection.
func (s *Server) sendError(conn *hub.Connection, requestID, code, message string) {
	errMsg := protocol.ErrorMessage{
		BaseMessage: protocol.BaseMessage{
			Type:      protocol.TypeError,
			Ts:        time.Now().UnixMilli(),
			RequestID: requestID,
			SessionID: conn.SessionID,
		},
		Code:    code,
		Message: message,
	}
	if err := s.hub.SendJSONToConnection(conn, errMsg); err != nil {
		s.log.WithError(err).WithField("conn_id", conn.ID).Warn("failed to send error")
	}
}
