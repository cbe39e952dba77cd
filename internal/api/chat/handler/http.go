package chatHandler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"

	chatService "restobot/internal/api/chat/service"
	"restobot/internal/middleware"
)

type ChatHandler struct {
	log         *logrus.Logger
	validator   *validator.Validate
	middleware  middleware.Middleware
	chatService chatService.IChatService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	cs chatService.IChatService,
) *ChatHandler {
	return &ChatHandler{
		log:         log,
		validator:   validate,
		middleware:  middleware,
		chatService: cs,
	}
}

func (h *ChatHandler) Start(srv fiber.Router) {
	chat := srv.Group("/chat")

	chat.Post("/message", h.middleware.NewRateLimiter, h.SendMessage)

	sessions := chat.Group("/sessions")
	sessions.Get("/:session_id", h.GetSession)
	sessions.Get("/:session_id/logs", h.GetChatLogs)
	sessions.Delete("/:session_id", h.middleware.NewTokenMiddleware, h.ResetSession)

	// Operator tooling
	nlp := chat.Group("/nlp", h.middleware.NewTokenMiddleware)
	nlp.Post("/analyze", h.Analyze)

	chat.Use("/ws", h.UpgradeWebSocket)
	chat.Get("/ws/:session_id", websocket.New(h.ServeWebSocket))
}
