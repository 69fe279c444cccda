package analytics

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

const EventAIRequest = "ai_request_handled"

// Execer is the part of *sql.DB the recorder needs.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Envelope is what we store with every event.
type Envelope struct {
	RequestID  string
	SessionID  string
	Platform   string
	AppVersion string
}

// FromRequest extracts event envelope fields from request headers.
func FromRequest(r *http.Request) Envelope {
	platform := strings.ToLower(strings.TrimSpace(r.Header.Get("X-Platform")))
	if platform != "ios" && platform != "android" && platform != "web" {
		platform = "unknown"
	}

	// supabase-js clients identify themselves via x-client-info
	appVer := strings.TrimSpace(r.Header.Get("X-App-Version"))
	if appVer == "" {
		appVer = strings.TrimSpace(r.Header.Get("X-Client-Info"))
	}

	return Envelope{
		SessionID:  strings.TrimSpace(r.Header.Get("X-Session-Id")),
		Platform:   platform,
		AppVersion: appVer,
	}
}

// Event describes one handled assistant request. It never carries prompt or
// completion text, only sizes.
type Event struct {
	TaskType     string
	HTTPStatus   int
	ErrorKind    string
	Latency      time.Duration
	PromptChars  int
	ResultChars  int
	UpstreamCode int
}

// Recorder writes events to Postgres. A nil Recorder or one without a
// database records nothing.
type Recorder struct {
	db Execer
}

func NewRecorder(db Execer) *Recorder {
	return &Recorder{db: db}
}

func (r *Recorder) Enabled() bool {
	return r != nil && r.db != nil
}

// Log inserts one event. Callers treat failures as non-fatal.
func (r *Recorder) Log(ctx context.Context, env Envelope, ev Event) error {
	if !r.Enabled() {
		return nil
	}

	props := map[string]any{
		"prompt_chars": ev.PromptChars,
		"result_chars": ev.ResultChars,
	}
	if ev.UpstreamCode != 0 {
		props["upstream_status"] = ev.UpstreamCode
	}
	b, err := json.Marshal(props)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO ai_request_events (
			event_name, event_time,
			request_id, task_type, http_status, error_kind, latency_ms,
			platform, app_version, session_id,
			properties
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11::jsonb)
	`, EventAIRequest, time.Now().UTC(),
		env.RequestID, ev.TaskType, ev.HTTPStatus, nullIfEmpty(ev.ErrorKind), ev.Latency.Milliseconds(),
		env.Platform, nullIfEmpty(env.AppVersion), nullIfEmpty(env.SessionID),
		string(b),
	)
	return err
}

func nullIfEmpty(s string) sql.NullString {
	if strings.TrimSpace(s) == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}
