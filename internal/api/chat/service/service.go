package chatService

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"restobot/internal/api/chat"
	chatRepository "restobot/internal/api/chat/repository"
	"restobot/internal/dialogue"
	"restobot/internal/entity"
	"restobot/pkg/utils"
)

type IChatService interface {
	SendMessage(ctx context.Context, channel entity.Channel, req chat.MessageRequest) (*chat.MessageResponse, error)
	GetSession(ctx context.Context, sessionID string) (*chat.SessionSnapshot, error)
	ResetSession(ctx context.Context, sessionID string) error
	GetChatLogs(ctx context.Context, sessionID string, page, limit int) (*chat.ChatLogsResponse, error)
	Analyze(ctx context.Context, req chat.AnalyzeRequest) (*dialogue.Analysis, error)
}

type chatService struct {
	log      *logrus.Logger
	engine   *dialogue.Engine
	sessions chatRepository.SessionStore
	chatRepo chatRepository.Repository
	utils    utils.IUtils
	locks    *keyedMutex
	now      func() time.Time
}

// NewChatService wires the engine to a session store. chatRepo may be nil, which turns
// chat log persistence off.
func NewChatService(
	log *logrus.Logger,
	engine *dialogue.Engine,
	sessions chatRepository.SessionStore,
	chatRepo chatRepository.Repository,
	utils utils.IUtils,
) IChatService {
	return &chatService{
		log:      log,
		engine:   engine,
		sessions: sessions,
		chatRepo: chatRepo,
		utils:    utils,
		locks:    newKeyedMutex(),
		now:      time.Now,
	}
}
