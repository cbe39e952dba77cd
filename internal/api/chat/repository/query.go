package chatRepository

const (
	queryCreateChatLogsTable = `
		CREATE TABLE IF NOT EXISTS chat_logs (
			id          VARCHAR(26) PRIMARY KEY,
			session_id  VARCHAR(128) NOT NULL,
			channel     VARCHAR(16) NOT NULL,
			utterance   TEXT NOT NULL,
			response    TEXT NOT NULL,
			intent      VARCHAR(64),
			category    VARCHAR(32) NOT NULL,
			state       VARCHAR(32) NOT NULL,
			focus_dish  VARCHAR(128),
			created_at  TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_chat_logs_session_created
			ON chat_logs (session_id, created_at);
	`

	queryCreateChatLog = `
		INSERT INTO chat_logs (
			id, session_id, channel, utterance, response,
			intent, category, state, focus_dish, created_at
		) VALUES (
			:id, :session_id, :channel, :utterance, :response,
			:intent, :category, :state, :focus_dish, :created_at
		)
	`

	queryCountChatLogsBySessionID = `
		SELECT COUNT(*)
		FROM chat_logs
		WHERE session_id = :session_id
	`

	queryGetChatLogsBySessionID = `
		SELECT
			id, session_id, channel, utterance, response,
			intent, category, state, focus_dish, created_at
		FROM chat_logs
		WHERE session_id = :session_id
		ORDER BY created_at ASC, id ASC
		LIMIT :limit OFFSET :offset
	`

	queryDeleteChatLogsBySessionID = `
		DELETE FROM chat_logs
		WHERE session_id = :session_id
	`
)
