// Package api provides HTTP handlers for the LifeOS backend.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/xonecas/lifeos/internal/store"
)

// Responder produces a reply to a user chat message.
type Responder interface {
	Respond(ctx context.Context, userMessage string) (string, error)
}

// Handler provides common handler dependencies.
type Handler struct {
	store     *store.Store
	responder Responder
}

// NewHandler creates a new Handler.
func NewHandler(s *store.Store, r Responder) *Handler {
	return &Handler{store: s, responder: r}
}

// BaseResponse is the success envelope for all endpoints.
type BaseResponse struct {
	Status   string         `json:"status"`
	Code     int            `json:"code"`
	Message  string         `json:"message"`
	Data     any            `json:"data,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// ErrorResponse is the error envelope for all endpoints.
type ErrorResponse struct {
	Status  string `json:"status"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Errors  []any  `json:"errors,omitempty"`
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Success writes a success envelope.
func Success(w http.ResponseWriter, status int, message string, data any) {
	JSON(w, status, BaseResponse{
		Status:  "success",
		Code:    status,
		Message: message,
		Data:    data,
	})
}

// Error writes an error envelope.
func Error(w http.ResponseWriter, status int, message string, errs ...any) {
	JSON(w, status, ErrorResponse{
		Status:  "error",
		Code:    status,
		Message: message,
		Errors:  errs,
	})
}
