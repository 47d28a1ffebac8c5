package store

import (
	"context"
	"database/sql"
	"fmt"
)

// migrations are applied in order. Each entry runs once; the applied
// count is tracked in PRAGMA user_version.
var migrations = []string{
	`CREATE TABLE words (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		day         INTEGER NOT NULL DEFAULT 0,
		japanese    TEXT NOT NULL,
		furigana    TEXT NOT NULL DEFAULT '',
		translation TEXT NOT NULL,
		sentence    TEXT NOT NULL DEFAULT '',
		created_at  INTEGER NOT NULL,
		UNIQUE (japanese, translation)
	);
	CREATE INDEX idx_words_day ON words (day);`,

	`CREATE TABLE snapshots (
		session_id TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL,
		skill_id   TEXT NOT NULL,
		completed  INTEGER NOT NULL DEFAULT 0,
		updated_at INTEGER NOT NULL,
		data       BLOB NOT NULL
	);
	CREATE INDEX idx_snapshots_user ON snapshots (user_id, updated_at);`,

	`CREATE TABLE answer_events (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence       INTEGER NOT NULL,
		timestamp      INTEGER NOT NULL,
		session_id     TEXT NOT NULL,
		skill_id       TEXT NOT NULL,
		exercise_type  TEXT NOT NULL,
		word           TEXT NOT NULL,
		correct_answer TEXT NOT NULL,
		learner_answer TEXT NOT NULL,
		correct        INTEGER NOT NULL,
		score          REAL NOT NULL,
		match_type     TEXT NOT NULL DEFAULT ''
	);
	CREATE INDEX idx_answer_events_type ON answer_events (exercise_type);`,

	`CREATE TABLE llm_request_events (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence      INTEGER NOT NULL,
		timestamp     INTEGER NOT NULL,
		provider      TEXT NOT NULL,
		model         TEXT NOT NULL,
		purpose       TEXT NOT NULL,
		input_tokens  INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms    INTEGER NOT NULL DEFAULT 0,
		success       INTEGER NOT NULL,
		error_message TEXT NOT NULL DEFAULT '',
		request_body  TEXT NOT NULL DEFAULT '',
		response_body TEXT NOT NULL DEFAULT ''
	);`,
}

func migrate(ctx context.Context, db *sql.DB) error {
	var version int
	if err := db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	for i := version; i < len(migrations); i++ {
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, migrations[i]); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", i+1)); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d: set version: %w", i+1, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("migration %d: commit: %w", i+1, err)
		}
	}
	return nil
}
