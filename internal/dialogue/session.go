package dialogue

import "restobot/internal/entity"

// Session is the per-conversation state handle. The engine never persists it; callers
// load and save it around Process and must not share one Session between goroutines.
type Session interface {
	GetState() entity.DialogueState
	SetState(state entity.DialogueState)
	GetFocusDish() string
	SetFocusDish(dish string)
	GetHistory() []string
	AppendHistory(utterance string)
	GetLastIntent() string
	SetLastIntent(intent string)
	GetLastResponse() string
	SetLastResponse(response string)
	RecordStat(category string)
}

var _ Session = (*entity.ChatSession)(nil)
