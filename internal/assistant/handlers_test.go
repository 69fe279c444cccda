package assistant

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mentorship-backend/internal/ai"
	"mentorship-backend/internal/analytics"
	"mentorship-backend/internal/config"
)

type fakeCompleter struct {
	text   string
	err    error
	calls  int
	prompt ai.PromptPair
}

func (f *fakeCompleter) Complete(_ context.Context, p ai.PromptPair) (string, error) {
	f.calls++
	f.prompt = p
	return f.text, f.err
}

type recordingExecer struct {
	args []any
}

func (e *recordingExecer) ExecContext(_ context.Context, _ string, args ...any) (sql.Result, error) {
	e.args = args
	return nil, nil
}

func doRequest(t *testing.T, h *Handler, method, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, "/ai-assistant", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Assistant(rec, req)
	return rec
}

func assertCORS(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "authorization, x-client-info, apikey, content-type", rec.Header().Get("Access-Control-Allow-Headers"))
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

func TestAssistantDoubtAnswer(t *testing.T) {
	fc := &fakeCompleter{text: "Recursion can be slow due to..."}
	h := New(fc, nil, nil)

	rec := doRequest(t, h, http.MethodPost,
		`{"type":"doubt-answer","data":{"title":"Why is recursion slow?","description":"...","category":"academics"}}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assertCORS(t, rec)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, Response{Result: "Recursion can be slow due to...", Type: ai.TaskDoubtAnswer}, body)

	assert.Equal(t, 1, fc.calls)
	assert.Contains(t, fc.prompt.User, "Question: Why is recursion slow?")
	assert.Contains(t, fc.prompt.User, "Category: academics")
}

func TestAssistantPreflight(t *testing.T) {
	fc := &fakeCompleter{}
	h := New(fc, nil, nil)

	for _, body := range []string{"", "not json", `{"type":"bogus"}`} {
		rec := doRequest(t, h, http.MethodOptions, body)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Body.String())
		assertCORS(t, rec)
	}
	assert.Zero(t, fc.calls)
}

func TestAssistantUnknownTaskType(t *testing.T) {
	fc := &fakeCompleter{text: "should not be used"}
	h := New(fc, nil, nil)

	rec := doRequest(t, h, http.MethodPost, `{"type":"bogus-type","data":{}}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assertCORS(t, rec)
	assert.Equal(t, "Unknown AI task type: bogus-type", decodeError(t, rec))
	assert.Zero(t, fc.calls)
}

func TestAssistantMalformedRequest(t *testing.T) {
	tests := []struct {
		name   string
		method string
		body   string
	}{
		{"empty body", http.MethodPost, ""},
		{"not json", http.MethodPost, "type=doubt-answer"},
		{"array body", http.MethodPost, `[{"type":"doubt-answer"}]`},
		{"data is a string", http.MethodPost, `{"type":"doubt-answer","data":"title"}`},
		{"get request", http.MethodGet, ""},
		{"null body", http.MethodPost, "null"},
		{"missing type", http.MethodPost, `{"data":{"title":"t"}}`},
		{"empty type", http.MethodPost, `{"type":"","data":{}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc := &fakeCompleter{}
			rec := doRequest(t, New(fc, nil, nil), tt.method, tt.body)

			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assertCORS(t, rec)
			msg := decodeError(t, rec)
			assert.True(t, strings.HasPrefix(msg, "Invalid request body"), msg)
			assert.Zero(t, fc.calls)
		})
	}
}

func TestAssistantUnknownTypeReportedBeforeBadData(t *testing.T) {
	fc := &fakeCompleter{}
	rec := doRequest(t, New(fc, nil, nil), http.MethodPost, `{"type":"bogus","data":"x"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assertCORS(t, rec)
	assert.Equal(t, "Unknown AI task type: bogus", decodeError(t, rec))
	assert.Zero(t, fc.calls)
}

func TestAssistantStructuredTasksReturnRawText(t *testing.T) {
	reply := "I think mentor m1 fits best, but here is no JSON at all {"
	for _, taskType := range []ai.TaskType{ai.TaskMentorMatch, ai.TaskContentModeration} {
		t.Run(string(taskType), func(t *testing.T) {
			h := New(&fakeCompleter{text: reply}, nil, nil)
			rec := doRequest(t, h, http.MethodPost, `{"type":"`+string(taskType)+`","data":{"content":"hello"}}`)

			require.Equal(t, http.StatusOK, rec.Code)
			var body Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, reply, body.Result)
			assert.Equal(t, taskType, body.Type)
		})
	}
}

func TestAssistantEmptyCompletionIsSuccess(t *testing.T) {
	h := New(&fakeCompleter{text: ""}, nil, nil)
	rec := doRequest(t, h, http.MethodPost, `{"type":"certificate-text","data":null}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "", body.Result)
	assert.Equal(t, ai.TaskCertificateText, body.Type)
}

func TestAssistantErrorKinds(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"rate limited", &ai.Error{Kind: ai.KindRateLimited, Message: "Rate limit exceeded. Please try again later.", UpstreamStatus: 429}, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later."},
		{"quota", &ai.Error{Kind: ai.KindQuotaExceeded, Message: "AI usage limit reached. Please check your workspace credits.", UpstreamStatus: 402}, http.StatusPaymentRequired, "AI usage limit reached. Please check your workspace credits."},
		{"upstream", &ai.Error{Kind: ai.KindUpstreamError, Message: "AI gateway request failed", UpstreamStatus: 503, UpstreamBody: "internal stack trace"}, http.StatusInternalServerError, "AI gateway request failed"},
		{"unclassified", context.DeadlineExceeded, http.StatusInternalServerError, "AI gateway request failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := New(&fakeCompleter{err: tt.err}, nil, nil)
			rec := doRequest(t, h, http.MethodPost, `{"type":"career-roadmap","data":{"year":"3rd"}}`)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assertCORS(t, rec)
			assert.Equal(t, tt.wantMsg, decodeError(t, rec))
			assert.NotContains(t, rec.Body.String(), "internal stack trace")
		})
	}
}

func TestAssistantKeepsCallerRequestID(t *testing.T) {
	h := New(&fakeCompleter{text: "ok"}, nil, nil)
	req := httptest.NewRequest(http.MethodPost, "/ai-assistant", strings.NewReader(`{"type":"doubt-answer","data":{}}`))
	req.Header.Set("X-Request-Id", "req-from-client")
	rec := httptest.NewRecorder()

	h.Assistant(rec, req)

	assert.Equal(t, "req-from-client", rec.Header().Get("X-Request-Id"))
}

func TestAssistantRecordsAnalytics(t *testing.T) {
	db := &recordingExecer{}
	h := New(&fakeCompleter{text: "summary"}, analytics.NewRecorder(db), nil)

	rec := doRequest(t, h, http.MethodPost, `{"type":"session-summary","data":{"topic":"DP"}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, db.args, 11)
	assert.Equal(t, rec.Header().Get("X-Request-Id"), db.args[2])
	assert.Equal(t, "session-summary", db.args[3])
	assert.Equal(t, http.StatusOK, db.args[4])
	assert.NotContains(t, db.args[10], "summary\"")
}

// End to end against a fake gateway with no credential configured.
func TestAssistantMissingCredentialMakesNoUpstreamCall(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()

	client := ai.New(config.AIConfig{BaseURL: srv.URL + "/v1/", Model: "m", Timeout: time.Second}, nil)
	h := New(client, nil, nil)

	for _, taskType := range ai.TaskTypes() {
		rec := doRequest(t, h, http.MethodPost, `{"type":"`+string(taskType)+`","data":{}}`)

		assert.Equal(t, http.StatusInternalServerError, rec.Code, taskType)
		assertCORS(t, rec)
		msg := decodeError(t, rec)
		assert.Equal(t, "AI assistant is not configured", msg)
	}
	assert.EqualValues(t, 0, atomic.LoadInt32(&calls))
}

func TestAssistantUpstreamStatusesEndToEnd(t *testing.T) {
	tests := []struct {
		upstream int
		want     int
	}{
		{http.StatusTooManyRequests, http.StatusTooManyRequests},
		{http.StatusPaymentRequired, http.StatusPaymentRequired},
		{http.StatusBadGateway, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.upstream), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.upstream)
				_, _ = w.Write([]byte(`{"error":{"message":"gateway detail"}}`))
			}))
			defer srv.Close()

			client := ai.New(config.AIConfig{APIKey: "k", BaseURL: srv.URL + "/v1/", Model: "m", Timeout: 5 * time.Second}, nil)
			rec := doRequest(t, New(client, nil, nil), http.MethodPost, `{"type":"doubt-answer","data":{"title":"t"}}`)

			assert.Equal(t, tt.want, rec.Code)
			assertCORS(t, rec)
			assert.NotContains(t, rec.Body.String(), "gateway detail")
		})
	}
}
