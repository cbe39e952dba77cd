package chatHandler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"golang.org/x/net/context"

	"restobot/internal/api/chat"
	"restobot/internal/entity"
	"restobot/internal/middleware"
	contextPkg "restobot/pkg/context"
	"restobot/pkg/log"
	"restobot/pkg/response"
)

type wsError struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

func (h *ChatHandler) UpgradeWebSocket(ctx *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(ctx) {
		return ctx.Next()
	}
	return fiber.ErrUpgradeRequired
}

// ServeWebSocket turns every inbound {"text": ...} frame into one reply frame of the
// session named in the path.
func (h *ChatHandler) ServeWebSocket(conn *websocket.Conn) {
	sessionID := conn.Params("session_id")
	requestID, _ := conn.Locals(middleware.RequestIDKey).(string)

	fields := log.Fields{
		"request_id": requestID,
		"session_id": sessionID,
	}
	h.log.WithFields(fields).Info("WebSocket chat opened")
	defer h.log.WithFields(fields).Info("WebSocket chat closed")

	for {
		var req chat.MessageRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.log.WithFields(fields).WithError(err).Warn("WebSocket read failed")
			}
			return
		}
		req.SessionID = sessionID

		var frame interface{}
		if err := h.validator.Struct(req); err != nil {
			frame = wsError{Error: err.Error(), Status: fiber.StatusBadRequest}
		} else {
			c, cancel := context.WithTimeout(contextPkg.WithRequestID(context.Background(), requestID), 30*time.Second)
			resp, err := h.chatService.SendMessage(c, entity.ChannelWebSocket, req)
			cancel()

			if err != nil {
				h.log.WithFields(fields).WithError(err).Warn("WebSocket turn failed")
				frame = wsError{Error: err.Error(), Status: response.Status(err)}
			} else {
				frame = resp
			}
		}

		if err := conn.WriteJSON(frame); err != nil {
			h.log.WithFields(fields).WithError(err).Warn("WebSocket write failed")
			return
		}
	}
}
