package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"mentorship-backend/internal/ai"
	"mentorship-backend/internal/analytics"
	"mentorship-backend/internal/logger"
)

const (
	maxBodyBytes    = 1 << 20
	requestIDHeader = "X-Request-Id"
	allowHeaders    = "authorization, x-client-info, apikey, content-type"
)

// SetCORSHeaders attaches the header set every response must carry.
func SetCORSHeaders(h http.Header) {
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Headers", allowHeaders)
}

type Handler struct {
	AI        ai.Completer
	Analytics *analytics.Recorder
	Log       *logger.Logger
}

func New(completer ai.Completer, recorder *analytics.Recorder, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{
		AI:        completer,
		Analytics: recorder,
		Log:       log,
	}
}

// Assistant handles one request: preflight, parse, compile, dispatch, respond.
func (h *Handler) Assistant(w http.ResponseWriter, r *http.Request) {
	SetCORSHeaders(w.Header())

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	start := time.Now()
	requestID := strings.TrimSpace(r.Header.Get(requestIDHeader))
	if requestID == "" {
		requestID = uuid.NewString()
	}
	w.Header().Set(requestIDHeader, requestID)
	log := h.Log.With("request_id", requestID)

	var (
		taskType ai.TaskType
		prompt   ai.PromptPair
		result   string
	)
	err := func() error {
		req, err := parseRequest(w, r)
		if err != nil {
			return err
		}
		// type is checked before data so an unknown type wins over bad data
		if taskType, err = ai.ParseTaskType(req.Type); err != nil {
			taskType = ai.TaskType(req.Type)
			return err
		}

		fields, err := ai.ParseFields(req.Data)
		if err != nil {
			return err
		}

		prompt, err = ai.Compile(taskType, fields)
		if err != nil {
			return err
		}

		log.Info("processing ai request", "task_type", taskType)
		result, err = h.AI.Complete(r.Context(), prompt)
		return err
	}()

	ev := analytics.Event{
		TaskType:    string(taskType),
		PromptChars: len(prompt.System) + len(prompt.User),
	}

	if err != nil {
		e := ai.AsError(err)
		log.Error("ai request failed",
			"task_type", taskType,
			"error_kind", e.Kind.String(),
			"upstream_status", e.UpstreamStatus,
			"upstream_body", e.UpstreamBody,
			"error", err)

		writeJSON(w, e.Kind.HTTPStatus(), ErrorResponse{Error: e.Message})

		ev.HTTPStatus = e.Kind.HTTPStatus()
		ev.ErrorKind = e.Kind.String()
		ev.UpstreamCode = e.UpstreamStatus
	} else {
		log.Info("ai response generated", "task_type", taskType, "result_chars", len(result))

		writeJSON(w, http.StatusOK, Response{Result: result, Type: taskType})

		ev.HTTPStatus = http.StatusOK
		ev.ResultChars = len(result)
	}

	ev.Latency = time.Since(start)
	h.record(r, requestID, ev)
}

func parseRequest(w http.ResponseWriter, r *http.Request) (Request, error) {
	if r.Method != http.MethodPost {
		return Request{}, ai.MalformedRequest(errors.New("method " + r.Method + " not supported"))
	}

	var req Request
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		return Request{}, ai.MalformedRequest(err)
	}
	// a literal null body or one without "type" decodes to the zero value
	if req.Type == "" {
		return Request{}, ai.MalformedRequest(errors.New(`missing "type"`))
	}
	return req, nil
}

func (h *Handler) record(r *http.Request, requestID string, ev analytics.Event) {
	if !h.Analytics.Enabled() {
		return
	}
	env := analytics.FromRequest(r)
	env.RequestID = requestID

	// the response is already written; don't let a client disconnect drop the event
	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), 3*time.Second)
	defer cancel()
	if err := h.Analytics.Log(ctx, env, ev); err != nil {
		h.Log.Warn("analytics insert failed", "request_id", requestID, "error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
