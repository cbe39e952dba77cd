package chatRepository

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"restobot/internal/entity"
	contextPkg "restobot/pkg/context"
)

type ChatLogDB struct {
	ID        sql.NullString `db:"id"`
	SessionID sql.NullString `db:"session_id"`
	Channel   sql.NullString `db:"channel"`
	Utterance sql.NullString `db:"utterance"`
	Response  sql.NullString `db:"response"`
	Intent    sql.NullString `db:"intent"`
	Category  sql.NullString `db:"category"`
	State     sql.NullString `db:"state"`
	FocusDish sql.NullString `db:"focus_dish"`
	CreatedAt time.Time      `db:"created_at"`
}

func (r *chatLogRepository) CreateChatLog(ctx context.Context, chatLog entity.ChatLog) error {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"id":         chatLog.ID,
		"session_id": chatLog.SessionID,
		"channel":    string(chatLog.Channel),
		"utterance":  chatLog.Utterance,
		"response":   chatLog.Response,
		"intent":     nullString(chatLog.Intent),
		"category":   chatLog.Category,
		"state":      string(chatLog.State),
		"focus_dish": nullString(chatLog.FocusDish),
		"created_at": chatLog.CreatedAt,
	}

	query, args, err := sqlx.Named(queryCreateChatLog, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CreateChatLog named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": chatLog.SessionID,
			"error":      err.Error(),
		}).Error("CreateChatLog execution err")
		return err
	}

	return nil
}

func (r *chatLogRepository) GetChatLogsBySessionID(ctx context.Context, sessionID string, limit, offset int) ([]entity.ChatLog, int, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var logsDB []ChatLogDB
	var total int

	countQuery, countArgs, err := sqlx.Named(queryCountChatLogsBySessionID, map[string]interface{}{
		"session_id": sessionID,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CountChatLogsBySessionID named query preparation err")
		return nil, 0, err
	}
	countQuery = r.q.Rebind(countQuery)

	if err := r.q.QueryRowxContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CountChatLogsBySessionID execution err")
		return nil, 0, err
	}

	query, args, err := sqlx.Named(queryGetChatLogsBySessionID, map[string]interface{}{
		"session_id": sessionID,
		"limit":      limit,
		"offset":     offset,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetChatLogsBySessionID named query preparation err")
		return nil, 0, err
	}
	query = r.q.Rebind(query)

	if err := r.q.SelectContext(ctx, &logsDB, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetChatLogsBySessionID execution err")
		return nil, 0, err
	}

	logs := make([]entity.ChatLog, 0, len(logsDB))
	for _, logDB := range logsDB {
		logs = append(logs, makeChatLog(logDB))
	}

	return logs, total, nil
}

func (r *chatLogRepository) DeleteChatLogsBySessionID(ctx context.Context, sessionID string) (int64, error) {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(queryDeleteChatLogsBySessionID, map[string]interface{}{
		"session_id": sessionID,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteChatLogsBySessionID named query preparation err")
		return 0, err
	}
	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteChatLogsBySessionID execution err")
		return 0, err
	}

	return result.RowsAffected()
}

func makeChatLog(logDB ChatLogDB) entity.ChatLog {
	return entity.ChatLog{
		ID:        logDB.ID.String,
		SessionID: logDB.SessionID.String,
		Channel:   entity.Channel(logDB.Channel.String),
		Utterance: logDB.Utterance.String,
		Response:  logDB.Response.String,
		Intent:    logDB.Intent.String,
		Category:  logDB.Category.String,
		State:     entity.DialogueState(logDB.State.String),
		FocusDish: logDB.FocusDish.String,
		CreatedAt: logDB.CreatedAt,
	}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
