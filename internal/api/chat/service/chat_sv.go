package chatService

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"restobot/internal/api/chat"
	"restobot/internal/dialogue"
	"restobot/internal/entity"
	contextPkg "restobot/pkg/context"
)

const (
	commandStart = "/start"
	commandHelp  = "/help"
)

func (s *chatService) SendMessage(ctx context.Context, channel entity.Channel, req chat.MessageRequest) (*chat.MessageResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	text := strings.TrimSpace(req.Text)
	if utf8.RuneCountInString(text) > chat.MaxTextLength {
		return nil, chat.ErrTextTooLong
	}

	sessionID := req.SessionID
	if sessionID == "" {
		id, err := s.utils.NewULIDFromTimestamp(s.now())
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Failed to generate session id")
			return nil, err
		}
		sessionID = id
	}
	ctx = contextPkg.WithSessionID(ctx, sessionID)

	unlock := s.locks.Lock(sessionID)
	defer unlock()

	session, err := s.loadOrCreate(ctx, sessionID, channel)
	if err != nil {
		return nil, err
	}

	if text == "" {
		return &chat.MessageResponse{
			SessionID: sessionID,
			Reply:     chat.EmptyTextReply,
			State:     string(session.GetState()),
			FocusDish: session.GetFocusDish(),
		}, nil
	}

	var reply dialogue.Reply
	switch strings.ToLower(text) {
	case commandStart:
		reply = s.engine.Start(session)
	case commandHelp:
		reply = s.engine.Help(session)
	default:
		reply = s.engine.Process(session, text)
	}

	session.LastActivity = s.now()
	if err := s.sessions.Save(ctx, session); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": sessionID,
			"error":      err.Error(),
		}).Error("Failed to save session")
		return nil, err
	}

	s.persistLog(ctx, session, text, reply)

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"session_id": sessionID,
		"channel":    channel,
		"state":      reply.State,
		"intent":     reply.Intent,
		"category":   reply.Category,
	}).Info("Turn processed")

	return &chat.MessageResponse{
		SessionID:  sessionID,
		Reply:      reply.Text,
		Intent:     reply.Intent,
		Category:   reply.Category,
		State:      string(reply.State),
		FocusDish:  reply.FocusDish,
		Advertised: reply.Advertised,
	}, nil
}

func (s *chatService) loadOrCreate(ctx context.Context, sessionID string, channel entity.Channel) (*entity.ChatSession, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if errors.Is(err, chat.ErrSessionNotFound) {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"session_id": sessionID,
			"channel":    channel,
		}).Debug("Starting new session")
		return entity.NewChatSession(sessionID, channel, s.now()), nil
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}

// persistLog never fails the turn; the reply was already produced and saved.
func (s *chatService) persistLog(ctx context.Context, session *entity.ChatSession, text string, reply dialogue.Reply) {
	if s.chatRepo == nil {
		return
	}

	fields := logrus.Fields{
		"request_id": contextPkg.GetRequestID(ctx),
		"session_id": session.ID,
	}

	id, err := s.utils.NewULIDFromTimestamp(s.now())
	if err != nil {
		fields["error"] = err.Error()
		s.log.WithFields(fields).Warn("Failed to generate chat log id")
		return
	}

	client, err := s.chatRepo.NewClient(false)
	if err != nil {
		fields["error"] = err.Error()
		s.log.WithFields(fields).Warn("Failed to open chat log client")
		return
	}

	err = client.ChatLogs.CreateChatLog(ctx, entity.ChatLog{
		ID:        id,
		SessionID: session.ID,
		Channel:   session.Channel,
		Utterance: text,
		Response:  reply.Text,
		Intent:    reply.Intent,
		Category:  reply.Category,
		State:     reply.State,
		FocusDish: reply.FocusDish,
		CreatedAt: s.now(),
	})
	if err != nil {
		fields["error"] = err.Error()
		s.log.WithFields(fields).Warn("Failed to persist chat log")
	}
}

func (s *chatService) GetSession(ctx context.Context, sessionID string) (*chat.SessionSnapshot, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return chat.NewSessionSnapshot(session), nil
}

func (s *chatService) ResetSession(ctx context.Context, sessionID string) error {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	if _, err := s.sessions.Get(ctx, sessionID); err != nil {
		return err
	}

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{
		"request_id": contextPkg.GetRequestID(ctx),
		"session_id": sessionID,
	}).Info("Session reset")
	return nil
}

func (s *chatService) GetChatLogs(ctx context.Context, sessionID string, page, limit int) (*chat.ChatLogsResponse, error) {
	if s.chatRepo == nil {
		return nil, chat.ErrChatLogDisabled
	}
	if page < 1 || limit < 1 {
		return nil, chat.ErrInvalidPagination
	}
	if limit > chat.MaxLogLimit {
		limit = chat.MaxLogLimit
	}

	client, err := s.chatRepo.NewClient(false)
	if err != nil {
		return nil, err
	}

	logs, total, err := client.ChatLogs.GetChatLogsBySessionID(ctx, sessionID, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	resp := &chat.ChatLogsResponse{
		SessionID: sessionID,
		Logs:      make([]chat.ChatLogResponse, 0, len(logs)),
		Total:     total,
		Page:      page,
		Limit:     limit,
	}
	for _, l := range logs {
		resp.Logs = append(resp.Logs, chat.ChatLogResponse{
			ID:        l.ID,
			Channel:   string(l.Channel),
			Utterance: l.Utterance,
			Response:  l.Response,
			Intent:    l.Intent,
			Category:  l.Category,
			State:     string(l.State),
			FocusDish: l.FocusDish,
			CreatedAt: l.CreatedAt,
		})
	}
	return resp, nil
}

func (s *chatService) Analyze(_ context.Context, req chat.AnalyzeRequest) (*dialogue.Analysis, error) {
	analysis := s.engine.Analyze(req.Text)
	return &analysis, nil
}
