package websocketPkg

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restobot/internal/api/chat"
)

func newEchoServer(t *testing.T) string {
	t.Helper()

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		sessionID := strings.TrimPrefix(r.URL.Path, "/ws/")
		for {
			var req chat.MessageRequest
			if err := conn.ReadJSON(&req); err != nil {
				return
			}
			if req.Text == "ошибка" {
				_ = conn.WriteJSON(map[string]interface{}{"error": "bad frame", "status": 400})
				continue
			}
			_ = conn.WriteJSON(chat.MessageResponse{SessionID: sessionID, Reply: "эхо: " + req.Text, State: "NONE"})
		}
	}))
	t.Cleanup(srv.Close)

	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

func TestChatClientRoundTrip(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := Dial(ctx, newEchoServer(t), "s1")
	require.NoError(t, err)
	defer client.Close()

	resp, err := client.Send(ctx, "привет")
	require.NoError(t, err)
	assert.Equal(t, "s1", resp.SessionID)
	assert.Equal(t, "эхо: привет", resp.Reply)

	_, err = client.Send(ctx, "ошибка")
	assert.ErrorContains(t, err, "bad frame")

	resp, err = client.Send(ctx, "ещё")
	require.NoError(t, err)
	assert.Equal(t, "эхо: ещё", resp.Reply)

	assert.NoError(t, client.Close())
	assert.NoError(t, client.Close())
}

func TestDialRequiresSessionID(t *testing.T) {
	_, err := Dial(context.Background(), "ws://localhost:1", "")
	assert.Error(t, err)
}
