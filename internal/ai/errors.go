package ai

import (
	"errors"
	"net/http"
)

type ErrorKind int

const (
	KindUpstreamError ErrorKind = iota
	KindMalformedRequest
	KindUnknownTaskType
	KindMissingConfiguration
	KindRateLimited
	KindQuotaExceeded
)

func (k ErrorKind) String() string {
	switch k {
	case KindMalformedRequest:
		return "malformed_request"
	case KindUnknownTaskType:
		return "unknown_task_type"
	case KindMissingConfiguration:
		return "missing_configuration"
	case KindRateLimited:
		return "rate_limited"
	case KindQuotaExceeded:
		return "quota_exceeded"
	default:
		return "upstream_error"
	}
}

// HTTPStatus is the status returned to the caller for this kind.
func (k ErrorKind) HTTPStatus() int {
	switch k {
	case KindRateLimited:
		return http.StatusTooManyRequests
	case KindQuotaExceeded:
		return http.StatusPaymentRequired
	default:
		return http.StatusInternalServerError
	}
}

const (
	malformedRequestMessage     = `Invalid request body: expected JSON object with "type" and "data"`
	missingConfigurationMessage = "AI assistant is not configured"
	rateLimitedMessage          = "Rate limit exceeded. Please try again later."
	quotaExceededMessage        = "AI usage limit reached. Please check your workspace credits."
	upstreamErrorMessage        = "AI gateway request failed"
)

// Error is a classified failure. Message is safe to show to the caller;
// UpstreamStatus and UpstreamBody are for operator logs only.
type Error struct {
	Kind           ErrorKind
	Message        string
	UpstreamStatus int
	UpstreamBody   string
	Err            error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind ErrorKind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// MalformedRequest wraps a request parsing failure.
func MalformedRequest(err error) *Error {
	return newError(KindMalformedRequest, malformedRequestMessage, err)
}

// AsError classifies err, treating anything unclassified as an upstream error.
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return newError(KindUpstreamError, upstreamErrorMessage, err)
}
