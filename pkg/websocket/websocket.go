package websocketPkg

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"restobot/internal/api/chat"
)

// IChatClient talks to the chat WebSocket endpoint, one request frame per reply frame.
type IChatClient interface {
	Send(ctx context.Context, text string) (*chat.MessageResponse, error)
	SessionID() string
	Close() error
}

type replyFrame struct {
	chat.MessageResponse
	Error  string `json:"error"`
	Status int    `json:"status"`
}

type webSocketClient struct {
	conn         *websocket.Conn
	sessionID    string
	mu           sync.Mutex
	closeOnce    sync.Once
	done         chan struct{}
	pingInterval time.Duration
	readTimeout  time.Duration
	writeTimeout time.Duration
}

// Dial opens baseURL/<sessionID>, e.g. ws://localhost:3000/api/v1/chat/ws.
func Dial(ctx context.Context, baseURL, sessionID string) (IChatClient, error) {
	if sessionID == "" {
		return nil, errors.New("session id is required")
	}

	target := strings.TrimSuffix(baseURL, "/") + "/" + url.PathEscape(sessionID)

	dialer := *websocket.DefaultDialer
	dialer.HandshakeTimeout = 10 * time.Second

	conn, _, err := dialer.DialContext(ctx, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", target, err)
	}

	c := &webSocketClient{
		conn:         conn,
		sessionID:    sessionID,
		done:         make(chan struct{}),
		pingInterval: 30 * time.Second,
		readTimeout:  35 * time.Second,
		writeTimeout: 5 * time.Second,
	}
	go c.keepAlive()

	return c, nil
}

func (c *webSocketClient) SessionID() string { return c.sessionID }

func (c *webSocketClient) Send(ctx context.Context, text string) (*chat.MessageResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	deadline := time.Now().Add(c.readTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	if err := c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout)); err != nil {
		return nil, err
	}
	if err := c.conn.WriteJSON(chat.MessageRequest{Text: text}); err != nil {
		return nil, fmt.Errorf("send: %w", err)
	}

	if err := c.conn.SetReadDeadline(deadline); err != nil {
		return nil, err
	}
	var frame replyFrame
	if err := c.conn.ReadJSON(&frame); err != nil {
		return nil, fmt.Errorf("receive: %w", err)
	}

	if frame.Error != "" {
		return nil, fmt.Errorf("server error %d: %s", frame.Status, frame.Error)
	}
	return &frame.MessageResponse, nil
}

func (c *webSocketClient) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.done)

		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye")
		_ = c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(c.writeTimeout))
		err = c.conn.Close()
	})
	return err
}

func (c *webSocketClient) keepAlive() {
	ticker := time.NewTicker(c.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(c.writeTimeout)); err != nil {
				logrus.WithError(err).Warn("WebSocket ping failed")
				return
			}
		}
	}
}
