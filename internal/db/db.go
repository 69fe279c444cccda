package db

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq"
)

func Connect(ctx context.Context, connString string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connString)
	if err != nil {
		return nil, err
	}

	// analytics writes are small and infrequent
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Schema creates the analytics table when missing.
const Schema = `
CREATE TABLE IF NOT EXISTS ai_request_events (
	id               BIGSERIAL PRIMARY KEY,
	event_name       TEXT        NOT NULL,
	event_time       TIMESTAMPTZ NOT NULL,
	request_id       TEXT        NOT NULL,
	task_type        TEXT        NOT NULL,
	http_status      INTEGER     NOT NULL,
	error_kind       TEXT,
	latency_ms       BIGINT      NOT NULL,
	platform         TEXT        NOT NULL,
	app_version      TEXT,
	session_id       TEXT,
	properties       JSONB       NOT NULL DEFAULT '{}'::jsonb
)`

func Migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, Schema)
	return err
}
