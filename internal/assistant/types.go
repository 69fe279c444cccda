package assistant

import (
	"encoding/json"

	"mentorship-backend/internal/ai"
)

// Request is the inbound body: {"type": ..., "data": {...}}.
type Request struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type Response struct {
	Result string      `json:"result"`
	Type   ai.TaskType `json:"type"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
