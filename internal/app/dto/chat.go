// Package dto defines the request/response shapes of the HTTP surface.
package dto

import (
	"github.com/tripflow/tripflow/internal/app/agent"
	"github.com/tripflow/tripflow/internal/core/reduce"
)

// ChatRequest represents one conversation turn from the user.
type ChatRequest struct {
	Message  string `json:"message" validate:"required"`
	ThreadID string `json:"thread_id,omitempty"`
}

// ChatResponse carries the agent's reply plus the full payloads fetched
// during this turn, keyed for later retrieval via the data endpoints.
type ChatResponse struct {
	Response  string                               `json:"response"`
	ThreadID  string                               `json:"thread_id"`
	DataStore map[string]map[string]reduce.Payload `json:"data_store"`
}

// HistoryResponse returns a thread's conversation in display form.
type HistoryResponse struct {
	ThreadID string               `json:"thread_id"`
	Messages []agent.HistoryEntry `json:"messages"`
}

// DataResponse returns one full payload by data type and key.
type DataResponse struct {
	DataType string         `json:"data_type"`
	Key      string         `json:"key"`
	Data     reduce.Payload `json:"data"`
}

// KeysResponse lists the deposit keys held for one data type.
type KeysResponse struct {
	DataType string   `json:"data_type"`
	Keys     []string `json:"keys"`
	Count    int      `json:"count"`
}

// StatusResponse is the generic acknowledgement shape.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse is the uniform error shape.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
