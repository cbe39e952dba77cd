package chat

import (
	"time"

	"restobot/internal/entity"
)

const (
	MaxTextLength   = 2000
	DefaultLogLimit = 20
	MaxLogLimit     = 100

	EmptyTextReply = "Пожалуйста, отправьте текст."
)

type MessageRequest struct {
	SessionID string `json:"session_id" validate:"omitempty,max=128,printascii"`
	Text      string `json:"text" validate:"max=2000"`
}

type MessageResponse struct {
	SessionID  string `json:"session_id"`
	Reply      string `json:"reply"`
	Intent     string `json:"intent,omitempty"`
	Category   string `json:"category,omitempty"`
	State      string `json:"state"`
	FocusDish  string `json:"focus_dish,omitempty"`
	Advertised bool   `json:"advertised"`
}

type SessionSnapshot struct {
	SessionID    string         `json:"session_id"`
	Channel      string         `json:"channel"`
	State        string         `json:"state"`
	FocusDish    string         `json:"focus_dish,omitempty"`
	LastIntent   string         `json:"last_intent,omitempty"`
	LastResponse string         `json:"last_response,omitempty"`
	History      []string       `json:"history"`
	Stats        map[string]int `json:"stats"`
	CreatedAt    time.Time      `json:"created_at"`
	LastActivity time.Time      `json:"last_activity"`
}

func NewSessionSnapshot(s *entity.ChatSession) *SessionSnapshot {
	return &SessionSnapshot{
		SessionID:    s.ID,
		Channel:      string(s.Channel),
		State:        string(s.GetState()),
		FocusDish:    s.FocusDish,
		LastIntent:   s.LastIntent,
		LastResponse: s.LastResponse,
		History:      s.GetHistory(),
		Stats:        s.GetStats(),
		CreatedAt:    s.CreatedAt,
		LastActivity: s.LastActivity,
	}
}

type ChatLogResponse struct {
	ID        string    `json:"id"`
	Channel   string    `json:"channel"`
	Utterance string    `json:"utterance"`
	Response  string    `json:"response"`
	Intent    string    `json:"intent,omitempty"`
	Category  string    `json:"category"`
	State     string    `json:"state"`
	FocusDish string    `json:"focus_dish,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type ChatLogsResponse struct {
	SessionID string            `json:"session_id"`
	Logs      []ChatLogResponse `json:"logs"`
	Total     int               `json:"total"`
	Page      int               `json:"page"`
	Limit     int               `json:"limit"`
}

type AnalyzeRequest struct {
	Text string `json:"text" validate:"required,max=2000"`
}
