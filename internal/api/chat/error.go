package chat

import "restobot/pkg/response"

var (
	ErrSessionNotFound   = response.NewError(404, "session not found")
	ErrInvalidSessionID  = response.NewError(400, "invalid session id")
	ErrChatLogDisabled   = response.NewError(404, "chat log persistence is disabled")
	ErrInvalidPagination = response.NewError(400, "page and limit must be positive")
	ErrTextTooLong       = response.NewError(400, "text is too long")
	ErrEngineFailed      = response.NewError(500, "failed to process message")
)
