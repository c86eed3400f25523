// Command chatcli talks to the site assistant over the WebSocket API from a terminal.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/teconavi/alitaramdemo2/internal/domain"
	"github.com/teconavi/alitaramdemo2/internal/protocol"
)

// Client represents a WebSocket client.
type Client struct {
	conn      *websocket.Conn
	sessionID string
	requests  int
	log       logrus.FieldLogger
	done      chan struct{}
}

// NewClient creates a new client and connects to the server.
func NewClient(addr string, log logrus.FieldLogger) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.Dial(addr, nil)
	if err != nil {
		return nil, fmt.Errorf("dial: %w", err)
	}

	return &Client{
		conn: conn,
		log:  log,
		done: make(chan struct{}),
	}, nil
}

// Close closes the client connection.
func (c *Client) Close() error {
	close(c.done)
	return c.conn.Close()
}

// SendHello sends a hello message and waits for hello_ack.
func (c *Client) SendHello(sessionID string) (*protocol.HelloAckMessage, error) {
	msg := protocol.HelloMessage{
		BaseMessage: protocol.BaseMessage{
			Type:      protocol.TypeHello,
			Ts:        time.Now().UnixMilli(),
			SessionID: sessionID,
		},
		ClientMeta: map[string]string{
			"client": "chatcli",
		},
	}

	if err := c.conn.WriteJSON(msg); err != nil {
		return nil, fmt.Errorf("write hello: %w", err)
	}

	_, data, err := c.conn.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("read hello_ack: %w", err)
	}

	var base protocol.BaseMessage
	if err := json.Unmarshal(data, &base); err != nil {
		return nil, fmt.Errorf("unmarshal hello_ack: %w", err)
	}

	if base.Type == protocol.TypeError {
		var errMsg protocol.ErrorMessage
		json.Unmarshal(data, &errMsg)
		return nil, fmt.Errorf("hello failed: %s - %s", errMsg.Code, errMsg.Message)
	}

	if base.Type != protocol.TypeHelloAck {
		return nil, fmt.Errorf("expected hello_ack, got: %s", base.Type)
	}

	var ack protocol.HelloAckMessage
	if err := json.Unmarshal(data, &ack); err != nil {
		return nil, fmt.Errorf("unmarshal hello_ack: %w", err)
	}
	c.sessionID = ack.SessionID
	return &ack, nil
}

func (c *Client) send(typ string, fields map[string]interface{}) error {
	c.requests++
	msg := map[string]interface{}{
		"type":       typ,
		"ts":         time.Now().UnixMilli(),
		"session_id": c.sessionID,
		"request_id": fmt.Sprintf("req_%d", c.requests),
	}
	for k, v := range fields {
		msg[k] = v
	}
	return c.conn.WriteJSON(msg)
}

// ReadMessages reads and prints events from the server.
func (c *Client) ReadMessages() {
	for {
		select {
		case <-c.done:
			return
		default:
			_, data, err := c.conn.ReadMessage()
			if err != nil {
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
					c.log.WithError(err).Error("read failed")
				}
				return
			}
			if err := printEvent(data); err != nil {
				c.log.WithError(err).Warn("unreadable event")
			}
		}
	}
}

func printEvent(data []byte) error {
	var base protocol.BaseMessage
	if err := json.Unmarshal(data, &base); err != nil {
		return err
	}

	switch base.Type {
	case protocol.TypeChatMessage:
		var ev protocol.ChatMessageEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			return err
		}
		// Own messages are already on screen.
		if ev.Message.Role != domain.RoleUser {
			printMessage(ev.Message)
		}
	case protocol.TypeChatState:
		var ev protocol.ChatStateEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			return err
		}
		if ev.Status == domain.ChatStatusAwaitingResponse {
			fmt.Println("  ...")
		}
	case protocol.TypeUIState:
		var ev protocol.UIStateEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			return err
		}
		if ev.UI.DetailProductID != "" {
			fmt.Printf("[viewing %s]\n", ev.UI.DetailProductID)
		}
	case protocol.TypeError:
		var ev protocol.ErrorMessage
		if err := json.Unmarshal(data, &ev); err != nil {
			return err
		}
		fmt.Printf("! %s: %s\n", ev.Code, ev.Message)
	}
	return nil
}

func printMessage(m domain.ChatMessage) {
	fmt.Printf("\n%s: %s\n", m.Role, m.Text)
	for _, p := range m.SuggestedProducts {
		fmt.Printf("  * %s (%s) %s [/open %s]\n", p.Name, p.Category, p.ShortDescription, p.ID)
	}
}

func main() {
	addr := flag.String("addr", "ws://localhost:8080/ws", "WebSocket server address")
	sessionID := flag.String("session", "", "Resume an existing session")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	fmt.Printf("Connecting to %s...\n", *addr)

	client, err := NewClient(*addr, log)
	if err != nil {
		log.WithError(err).Fatal("failed to connect")
	}
	defer client.Close()

	ack, err := client.SendHello(*sessionID)
	if err != nil {
		log.WithError(err).Fatal("hello failed")
	}

	fmt.Printf("Session established: %s\n", client.sessionID)
	for _, m := range ack.Messages {
		printMessage(m)
	}
	fmt.Println("\nType a message and press Enter to send.")
	fmt.Println("Commands: /open <product-id>, /back, /close, /quit")

	go client.ReadMessages()
	if err := client.send(protocol.TypeChatOpen, nil); err != nil {
		log.WithError(err).Fatal("failed to open chat")
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	scanner := bufio.NewScanner(os.Stdin)

	for {
		select {
		case <-interrupt:
			fmt.Println("\nInterrupted")
			return
		default:
			if !scanner.Scan() {
				return
			}

			input := strings.TrimSpace(scanner.Text())
			if input == "" {
				continue
			}

			var sendErr error
			switch fields := strings.Fields(input); fields[0] {
			case "/quit":
				fmt.Println("Bye!")
				return
			case "/open":
				if len(fields) < 2 {
					fmt.Println("usage: /open <product-id>")
					continue
				}
				sendErr = client.send(protocol.TypeProductOpen, map[string]interface{}{"product_id": fields[1], "from_chat": true})
			case "/back":
				sendErr = client.send(protocol.TypeProductClose, nil)
			case "/close":
				sendErr = client.send(protocol.TypeChatClose, nil)
			default:
				sendErr = client.send(protocol.TypeChatSend, map[string]interface{}{"text": input})
			}
			if sendErr != nil {
				log.WithError(sendErr).Error("send failed")
			}
		}
	}
}
