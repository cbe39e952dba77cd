package entity

import "time"

type DialogueState string

const (
	StateNone             DialogueState = "NONE"
	StateWaitingForDish   DialogueState = "WAITING_FOR_DISH"
	StateWaitingForIntent DialogueState = "WAITING_FOR_INTENT"
)

// HistoryLimit bounds ChatSession.History; the oldest utterance is evicted first.
const HistoryLimit = 5

type Channel string

const (
	ChannelHTTP      Channel = "http"
	ChannelWebSocket Channel = "websocket"
	ChannelWhatsApp  Channel = "whatsapp"
)

// ChatSession is the per-conversation state. Transports own its lifetime; the dialogue
// engine mutates it through the accessor methods below.
type ChatSession struct {
	ID           string         `json:"id"`
	Channel      Channel        `json:"channel"`
	State        DialogueState  `json:"state"`
	FocusDish    string         `json:"focus_dish,omitempty"`
	LastResponse string         `json:"last_response,omitempty"`
	LastIntent   string         `json:"last_intent,omitempty"`
	History      []string       `json:"history"`
	Stats        map[string]int `json:"stats"`
	CreatedAt    time.Time      `json:"created_at"`
	LastActivity time.Time      `json:"last_activity"`
}

func NewChatSession(id string, channel Channel, now time.Time) *ChatSession {
	return &ChatSession{
		ID:           id,
		Channel:      channel,
		State:        StateNone,
		History:      []string{},
		Stats:        map[string]int{},
		CreatedAt:    now,
		LastActivity: now,
	}
}

func (s *ChatSession) GetState() DialogueState {
	if s.State == "" {
		return StateNone
	}
	return s.State
}

func (s *ChatSession) SetState(state DialogueState) { s.State = state }

func (s *ChatSession) GetFocusDish() string { return s.FocusDish }

func (s *ChatSession) SetFocusDish(dish string) { s.FocusDish = dish }

func (s *ChatSession) GetHistory() []string {
	out := make([]string, len(s.History))
	copy(out, s.History)
	return out
}

func (s *ChatSession) AppendHistory(utterance string) {
	s.History = append(s.History, utterance)
	if len(s.History) > HistoryLimit {
		s.History = append([]string(nil), s.History[len(s.History)-HistoryLimit:]...)
	}
}

func (s *ChatSession) GetLastIntent() string { return s.LastIntent }

func (s *ChatSession) SetLastIntent(intent string) { s.LastIntent = intent }

func (s *ChatSession) GetLastResponse() string { return s.LastResponse }

func (s *ChatSession) SetLastResponse(response string) { s.LastResponse = response }

func (s *ChatSession) RecordStat(category string) {
	if s.Stats == nil {
		s.Stats = map[string]int{}
	}
	s.Stats[category]++
}

func (s *ChatSession) GetStats() map[string]int {
	out := make(map[string]int, len(s.Stats))
	for k, v := range s.Stats {
		out[k] = v
	}
	return out
}

// Clone returns a deep copy so stores never share slices or maps with callers.
func (s *ChatSession) Clone() *ChatSession {
	c := *s
	c.History = s.GetHistory()
	c.Stats = s.GetStats()
	return &c
}
