package ai

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"mentorship-backend/internal/config"
	"mentorship-backend/internal/logger"
)

const maxLoggedBodyBytes = 2048

var tracer = otel.Tracer("mentorship-backend/internal/ai")

// Completer sends one prompt pair upstream and returns the completion text.
type Completer interface {
	Complete(ctx context.Context, prompt PromptPair) (string, error)
}

// Client talks to an OpenAI-compatible chat completion gateway. It makes
// exactly one attempt per call.
type Client struct {
	openai     openai.Client
	configured bool
	Model      string
	log        *logger.Logger
}

func New(cfg config.AIConfig, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Nop()
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}))
	}

	model := cfg.Model
	if model == "" {
		model = config.DefaultModel
	}

	return &Client{
		openai:     openai.NewClient(opts...),
		configured: cfg.APIKey != "",
		Model:      model,
		log:        log,
	}
}

// Complete returns the first choice's message content. A response with no
// choices or no content yields "" rather than an error.
func (c *Client) Complete(ctx context.Context, prompt PromptPair) (string, error) {
	if !c.configured {
		return "", newError(KindMissingConfiguration, missingConfigurationMessage, nil)
	}

	ctx, span := tracer.Start(ctx, "ai.complete", trace.WithAttributes(
		attribute.String("ai.model", c.Model),
	))
	defer span.End()

	start := time.Now()
	resp, err := c.openai.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.Model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(prompt.System),
			openai.UserMessage(prompt.User),
		},
	})
	if err != nil {
		classified := classify(err)
		span.SetAttributes(attribute.Int("ai.upstream_status", classified.UpstreamStatus))
		span.SetStatus(codes.Error, classified.Kind.String())
		return "", classified
	}
	span.SetAttributes(attribute.Int("ai.upstream_status", http.StatusOK))

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		c.log.Warn("empty completion", "model", c.Model, "choices", len(resp.Choices))
		return "", nil
	}

	c.log.Debug("completion received",
		"model", c.Model,
		"duration_ms", time.Since(start).Milliseconds(),
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens)

	return resp.Choices[0].Message.Content, nil
}

// classify maps an upstream failure onto the caller-facing error kinds.
func classify(err error) *Error {
	var apiErr *openai.Error
	if !errors.As(err, &apiErr) {
		// transport failure or cancellation: no upstream status to report
		return newError(KindUpstreamError, upstreamErrorMessage, err)
	}

	var e *Error
	switch apiErr.StatusCode {
	case http.StatusTooManyRequests:
		e = newError(KindRateLimited, rateLimitedMessage, err)
	case http.StatusPaymentRequired:
		e = newError(KindQuotaExceeded, quotaExceededMessage, err)
	default:
		e = newError(KindUpstreamError, upstreamErrorMessage, err)
	}
	e.UpstreamStatus = apiErr.StatusCode
	e.UpstreamBody = truncate(upstreamBody(apiErr), maxLoggedBodyBytes)
	return e
}

// upstreamBody returns the full error body as the gateway sent it. The
// client buffers the body before decoding, so Response.Body still holds it.
func upstreamBody(apiErr *openai.Error) string {
	if apiErr.Response != nil && apiErr.Response.Body != nil {
		b, err := io.ReadAll(apiErr.Response.Body)
		if err == nil && len(b) > 0 {
			return string(b)
		}
	}
	return apiErr.RawJSON()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
