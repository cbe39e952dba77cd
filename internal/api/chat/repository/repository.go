package chatRepository

import (
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"restobot/internal/entity"
)

type SQLExecutor interface {
	sqlx.ExtContext
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
	Rebind(query string) string
}

func New(db *sqlx.DB, log *logrus.Logger) Repository {
	return &repository{
		DB:  db,
		log: log,
	}
}

type repository struct {
	DB  *sqlx.DB
	log *logrus.Logger
}

type Repository interface {
	NewClient(tx bool) (Client, error)
	EnsureSchema(ctx context.Context) error
}

func (r *repository) NewClient(tx bool) (Client, error) {
	var sqlExecutor SQLExecutor
	var commitFunc, rollbackFunc func() error

	sqlExecutor = r.DB

	if tx {
		txx, err := r.DB.Beginx()
		if err != nil {
			return Client{}, err
		}

		sqlExecutor = txx
		commitFunc = txx.Commit
		rollbackFunc = txx.Rollback
	} else {
		commitFunc = func() error { return nil }
		rollbackFunc = func() error { return nil }
	}

	return Client{
		ChatLogs: &chatLogRepository{q: sqlExecutor, log: r.log},
		Commit:   commitFunc,
		Rollback: rollbackFunc,
	}, nil
}

func (r *repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.DB.ExecContext(ctx, queryCreateChatLogsTable); err != nil {
		r.log.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Error("Failed to create chat_logs table")
		return err
	}
	return nil
}

type Client struct {
	ChatLogs interface {
		CreateChatLog(ctx context.Context, log entity.ChatLog) error
		GetChatLogsBySessionID(ctx context.Context, sessionID string, limit, offset int) ([]entity.ChatLog, int, error)
		DeleteChatLogsBySessionID(ctx context.Context, sessionID string) (int64, error)
	}

	Commit   func() error
	Rollback func() error
}

type chatLogRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}
