package chatHandler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restobot/internal/api/chat"
	chatRepository "restobot/internal/api/chat/repository"
	chatService "restobot/internal/api/chat/service"
	"restobot/internal/dialogue"
	"restobot/internal/middleware"
	jwtPkg "restobot/pkg/jwt"
	"restobot/pkg/utils"
	websocketPkg "restobot/pkg/websocket"
)

const testSecret = "chat-handler-secret"

func TestMain(m *testing.M) {
	os.Setenv("APP_ENV", "test")
	os.Setenv(middleware.AccessTokenSecret, testSecret)
	os.Exit(m.Run())
}

func newTestApp(t *testing.T) (*fiber.App, *ChatHandler) {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	reg, err := dialogue.LoadRegistry(context.Background(), dialogue.LocalReader{}, dialogue.LoadOptions{
		CatalogPath:   "../../../../configs/catalog.yaml",
		DialoguesPath: "../../../../configs/dialogues.txt",
		RegistryOptions: dialogue.RegistryOptions{
			AdMode: dialogue.AdModeOff,
		},
	}, dialogue.NewRandom(1))
	require.NoError(t, err)

	engine := dialogue.NewEngine(reg, dialogue.NewRandom(1), logger)
	svc := chatService.NewChatService(logger, engine, chatRepository.NewMemorySessionStore(time.Hour), nil, utils.New())

	mw := middleware.New(logger)
	h := New(logger, validator.New(), mw, svc)

	app := fiber.New()
	app.Use(mw.NewRequestIDMiddleware())
	h.Start(app.Group("/api/v1"))

	return app, h
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}, token string) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func adminToken(t *testing.T) string {
	t.Helper()
	token, err := jwtPkg.SignAdmin("operator", time.Hour, testSecret)
	require.NoError(t, err)
	return token
}

func TestSendMessageAndSnapshot(t *testing.T) {
	app, _ := newTestApp(t)

	resp, data := doJSON(t, app, fiber.MethodPost, "/api/v1/chat/message", chat.MessageRequest{SessionID: "s1", Text: "сколько стоит борщ"}, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(data))

	var msg chat.MessageResponse
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, "s1", msg.SessionID)
	assert.Equal(t, "борщ", msg.FocusDish)
	assert.Equal(t, "WAITING_FOR_INTENT", msg.State)

	resp, data = doJSON(t, app, fiber.MethodGet, "/api/v1/chat/sessions/s1", nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var snapshot chat.SessionSnapshot
	require.NoError(t, json.Unmarshal(data, &snapshot))
	assert.Equal(t, []string{"сколько стоит борщ"}, snapshot.History)
}

func TestSendMessageValidation(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest(fiber.MethodPost, "/api/v1/chat/message", bytes.NewBufferString("{not json"))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, app, fiber.MethodPost, "/api/v1/chat/message", chat.MessageRequest{SessionID: "сессия", Text: "привет"}, "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestUnknownSessionIsNotFound(t *testing.T) {
	app, _ := newTestApp(t)

	resp, _ := doJSON(t, app, fiber.MethodGet, "/api/v1/chat/sessions/missing", nil, "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, app, fiber.MethodGet, "/api/v1/chat/sessions/missing/logs", nil, "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestResetSessionRequiresAdmin(t *testing.T) {
	app, _ := newTestApp(t)

	resp, _ := doJSON(t, app, fiber.MethodPost, "/api/v1/chat/message", chat.MessageRequest{SessionID: "s1", Text: "привет"}, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, fiber.MethodDelete, "/api/v1/chat/sessions/s1", nil, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, app, fiber.MethodDelete, "/api/v1/chat/sessions/s1", nil, adminToken(t))
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp, _ = doJSON(t, app, fiber.MethodGet, "/api/v1/chat/sessions/s1", nil, "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestAnalyze(t *testing.T) {
	app, _ := newTestApp(t)

	resp, _ := doJSON(t, app, fiber.MethodPost, "/api/v1/chat/nlp/analyze", chat.AnalyzeRequest{Text: "пицца до 600 рублей"}, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, data := doJSON(t, app, fiber.MethodPost, "/api/v1/chat/nlp/analyze", chat.AnalyzeRequest{Text: "пицца до 600 рублей"}, adminToken(t))
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(data))

	var analysis dialogue.Analysis
	require.NoError(t, json.Unmarshal(data, &analysis))
	assert.Equal(t, "пицца", analysis.Category)
	require.NotNil(t, analysis.Price)
	assert.Equal(t, 600, *analysis.Price)
}

func TestWebSocketRequiresUpgrade(t *testing.T) {
	app, _ := newTestApp(t)

	resp, _ := doJSON(t, app, fiber.MethodGet, "/api/v1/chat/ws/s1", nil, "")
	assert.Equal(t, fiber.StatusUpgradeRequired, resp.StatusCode)
}

func TestWebSocketConversation(t *testing.T) {
	app, _ := newTestApp(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.Shutdown() })

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := websocketPkg.Dial(ctx, "ws://"+ln.Addr().String()+"/api/v1/chat/ws", "ws-1")
	require.NoError(t, err)
	defer client.Close()

	resp, err := client.Send(ctx, "сколько стоит борщ")
	require.NoError(t, err)
	assert.Equal(t, "ws-1", resp.SessionID)
	assert.Equal(t, "борщ", resp.FocusDish)

	resp, err = client.Send(ctx, "да")
	require.NoError(t, err)
	assert.Equal(t, "Цена на борщ — 350 рублей. Что ещё интересует?", resp.Reply)

	resp, err = client.Send(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, chat.EmptyTextReply, resp.Reply)
}

func TestReplyWhatsApp(t *testing.T) {
	_, h := newTestApp(t)

	reply, err := h.ReplyWhatsApp(context.Background(), "79990000000@s.whatsapp.net", "/start")
	require.NoError(t, err)
	assert.Contains(t, reply, "Здравствуйте!")
}
