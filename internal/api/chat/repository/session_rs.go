package chatRepository

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"restobot/internal/api/chat"
	"restobot/internal/entity"
	contextPkg "restobot/pkg/context"
	"restobot/pkg/redis"
)

const sessionKeyPrefix = "restobot:session:"

// SessionStore persists dialogue sessions between turns. Get returns
// chat.ErrSessionNotFound for unknown or expired ids.
type SessionStore interface {
	Get(ctx context.Context, id string) (*entity.ChatSession, error)
	Save(ctx context.Context, session *entity.ChatSession) error
	Delete(ctx context.Context, id string) error
}

type redisSessionStore struct {
	redis redis.IRedis
	ttl   time.Duration
	log   *logrus.Logger
}

// NewRedisSessionStore keeps each session as a JSON value whose TTL is refreshed on every
// save.
func NewRedisSessionStore(client redis.IRedis, ttl time.Duration, log *logrus.Logger) SessionStore {
	return &redisSessionStore{redis: client, ttl: ttl, log: log}
}

func (s *redisSessionStore) Get(ctx context.Context, id string) (*entity.ChatSession, error) {
	var session entity.ChatSession
	if err := s.redis.GetJSON(ctx, sessionKeyPrefix+id, &session); err != nil {
		if errors.Is(err, redis.ErrNotFound) {
			return nil, chat.ErrSessionNotFound
		}
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"session_id": id,
			"error":      err.Error(),
		}).Error("Failed to load session")
		return nil, err
	}
	return &session, nil
}

func (s *redisSessionStore) Save(ctx context.Context, session *entity.ChatSession) error {
	return s.redis.SetJSON(ctx, sessionKeyPrefix+session.ID, session, s.ttl)
}

func (s *redisSessionStore) Delete(ctx context.Context, id string) error {
	return s.redis.Delete(ctx, sessionKeyPrefix+id)
}

type memoryEntry struct {
	session   *entity.ChatSession
	expiresAt time.Time
}

type memorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]memoryEntry
	ttl      time.Duration
	now      func() time.Time
}

// NewMemorySessionStore serves a single process. A zero ttl never expires sessions.
func NewMemorySessionStore(ttl time.Duration) SessionStore {
	return newMemorySessionStore(ttl, time.Now)
}

func newMemorySessionStore(ttl time.Duration, now func() time.Time) *memorySessionStore {
	return &memorySessionStore{
		sessions: make(map[string]memoryEntry),
		ttl:      ttl,
		now:      now,
	}
}

func (s *memorySessionStore) Get(_ context.Context, id string) (*entity.ChatSession, error) {
	s.mu.RLock()
	entry, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return nil, chat.ErrSessionNotFound
	}
	if s.ttl > 0 && s.now().After(entry.expiresAt) {
		s.mu.Lock()
		if current, ok := s.sessions[id]; ok && current.expiresAt.Equal(entry.expiresAt) {
			delete(s.sessions, id)
		}
		s.mu.Unlock()
		return nil, chat.ErrSessionNotFound
	}
	return entry.session.Clone(), nil
}

func (s *memorySessionStore) Save(_ context.Context, session *entity.ChatSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[session.ID] = memoryEntry{
		session:   session.Clone(),
		expiresAt: s.now().Add(s.ttl),
	}
	return nil
}

func (s *memorySessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}
