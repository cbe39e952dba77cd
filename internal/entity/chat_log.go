package entity

import "time"

// ChatLog is one persisted turn of a conversation.
type ChatLog struct {
	ID        string
	SessionID string
	Channel   Channel
	Utterance string
	Response  string
	Intent    string
	Category  string
	State     DialogueState
	FocusDish string
	CreatedAt time.Time
}
