package ws

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teconavi/alitaramdemo2/internal/catalog"
	"github.com/teconavi/alitaramdemo2/internal/config"
	"github.com/teconavi/alitaramdemo2/internal/domain"
	"github.com/teconavi/alitaramdemo2/internal/hub"
	"github.com/teconavi/alitaramdemo2/internal/policy"
	"github.com/teconavi/alitaramdemo2/internal/protocol"
	"github.com/teconavi/alitaramdemo2/internal/repository"
	"github.com/teconavi/alitaramdemo2/internal/service"
)

type echoSender struct{}

func (echoSender) SendTurn(ctx context.Context, history []domain.Turn, text string) string {
	return "Try this [RECOMMEND: p8]"
}

type allowGate struct{}

func (allowGate) Check(ctx context.Context, step domain.ConsultationStep, form domain.ConsultationForm) (policy.Decision, error) {
	return policy.Decision{Allow: true}, nil
}

func newTestServer(t *testing.T) (string, *service.Service) {
	t.Helper()
	log, _ := test.NewNullLogger()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	h := hub.NewHub(log, nil)
	go h.Run(ctx)

	st, err := store.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	svc, err := service.New(st, catalog.Default(), echoSender{}, allowGate{}, h, nil, &config.Config{SessionCapacity: 8}, log)
	require.NoError(t, err)
	t.Cleanup(svc.Close)

	cfg := &config.Config{
		PingInterval:   time.Minute,
		WriteTimeout:   time.Second,
		ReadTimeout:    time.Minute,
		MaxMessageSize: 65536,
	}
	e := echo.New()
	NewServer(cfg, h, svc, log).RegisterRoutes(e)
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)

	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws", svc
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

// readUntil returns the first message of the given type.
func readUntil(t *testing.T, conn *websocket.Conn, typ string) []byte {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	for {
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)
		var base protocol.BaseMessage
		require.NoError(t, json.Unmarshal(data, &base))
		if base.Type == typ {
			return data
		}
	}
}

func TestMessagesRequireHello(t *testing.T) {
	url, _ := newTestServer(t)
	conn := dial(t, url)

	require.NoError(t, conn.WriteJSON(map[string]string{"type": protocol.TypeChatSend, "text": "hi", "request_id": "r1"}))

	var msg protocol.ErrorMessage
	require.NoError(t, json.Unmarshal(readUntil(t, conn, protocol.TypeError), &msg))
	assert.Equal(t, protocol.ErrorCodeSessionRequired, msg.Code)
	assert.Equal(t, "r1", msg.RequestID)
}

func TestHelloThenChat(t *testing.T) {
	url, svc := newTestServer(t)
	conn := dial(t, url)

	require.NoError(t, conn.WriteJSON(map[string]string{"type": protocol.TypeHello}))
	var ack protocol.HelloAckMessage
	require.NoError(t, json.Unmarshal(readUntil(t, conn, protocol.TypeHelloAck), &ack))
	require.True(t, strings.HasPrefix(ack.SessionID, "sess_"))
	assert.Empty(t, ack.Messages)

	require.NoError(t, conn.WriteJSON(map[string]string{"type": protocol.TypeChatSend, "text": "ramp for my front steps"}))

	var reply protocol.ChatMessageEvent
	for {
		require.NoError(t, json.Unmarshal(readUntil(t, conn, protocol.TypeChatMessage), &reply))
		if reply.Message.Role == domain.RoleAssistant {
			break
		}
	}
	assert.Equal(t, "Try this", reply.Message.Text)
	require.Len(t, reply.Message.SuggestedProducts, 1)
	assert.Equal(t, "p8", reply.Message.SuggestedProducts[0].ID)

	sess, err := svc.GetSession(ack.SessionID)
	require.NoError(t, err)
	sess.Wait()

	// A second connection resuming the session gets the log.
	other := dial(t, url)
	require.NoError(t, other.WriteJSON(map[string]string{"type": protocol.TypeHello, "session_id": ack.SessionID}))
	var resumed protocol.HelloAckMessage
	require.NoError(t, json.Unmarshal(readUntil(t, other, protocol.TypeHelloAck), &resumed))
	assert.Equal(t, ack.SessionID, resumed.SessionID)
	assert.Len(t, resumed.Messages, 2)
}

func TestProductOpenUnknown(t *testing.T) {
	url, _ := newTestServer(t)
	conn := dial(t, url)

	require.NoError(t, conn.WriteJSON(map[string]string{"type": protocol.TypeHello}))
	readUntil(t, conn, protocol.TypeHelloAck)

	require.NoError(t, conn.WriteJSON(map[string]interface{}{"type": protocol.TypeProductOpen, "product_id": "p42"}))
	var msg protocol.ErrorMessage
	require.NoError(t, json.Unmarshal(readUntil(t, conn, protocol.TypeError), &msg))
	assert.Equal(t, protocol.ErrorCodeNotFound, msg.Code)

	require.NoError(t, conn.WriteJSON(map[string]interface{}{"type": protocol.TypeProductOpen, "product_id": "p2"}))
	var ui protocol.UIStateEvent
	require.NoError(t, json.Unmarshal(readUntil(t, conn, protocol.TypeUIState), &ui))
	assert.Equal(t, "p2", ui.UI.DetailProductID)
}

func TestChatStartFromTopic(t *testing.T) {
	url, _ := newTestServer(t)
	conn := dial(t, url)

	require.NoError(t, conn.WriteJSON(map[string]string{"type": protocol.TypeHello}))
	readUntil(t, conn, protocol.TypeHelloAck)

	require.NoError(t, conn.WriteJSON(map[string]string{"type": protocol.TypeChatStart, "topic": "Moving House", "request_id": "r2"}))
	var errMsg protocol.ErrorMessage
	require.NoError(t, json.Unmarshal(readUntil(t, conn, protocol.TypeError), &errMsg))
	assert.Equal(t, protocol.ErrorCodeInvalidMessage, errMsg.Code)
	assert.Equal(t, "r2", errMsg.RequestID)

	require.NoError(t, conn.WriteJSON(map[string]string{"type": protocol.TypeChatStart, "topic": "Wheelchair Ramps"}))
	var ev protocol.ChatMessageEvent
	for {
		require.NoError(t, json.Unmarshal(readUntil(t, conn, protocol.TypeChatMessage), &ev))
		if ev.Message.Role == domain.RoleUser {
			break
		}
	}
	assert.Equal(t, "I'm looking for solutions for Wheelchair Ramps", ev.Message.Text)
}
