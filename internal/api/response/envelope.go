package response

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Meta holds metadata for every response.
type Meta struct {
	RequestID string `json:"requestId"`
	Timestamp string `json:"timestamp"`
	Flash     string `json:"flash,omitempty"`
}

// Error represents a structured error.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	// Input echoes the submitted form so the client can re-display it.
	Input any `json:"input,omitempty"`
}

// Envelope is the standard response wrapper.
type Envelope struct {
	Data  any    `json:"data"`
	Error *Error `json:"error"`
	Meta  Meta   `json:"meta"`
}

// NewMeta creates a Meta with a new UUID and current timestamp.
// If requestID is provided, it uses that instead of generating a new one.
func NewMeta(requestID string) Meta {
	if requestID == "" {
		requestID = uuid.New().String()
	}
	return Meta{
		RequestID: requestID,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// JSON writes a JSON response with the given status code and envelope.
func JSON(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Success writes a successful JSON response.
func Success(w http.ResponseWriter, status int, data any, requestID string) {
	JSON(w, status, Envelope{
		Data: data,
		Meta: NewMeta(requestID),
	})
}

// SuccessWithFlash writes a successful JSON response carrying a one-time flash message.
func SuccessWithFlash(w http.ResponseWriter, status int, data any, flash, requestID string) {
	meta := NewMeta(requestID)
	meta.Flash = flash
	JSON(w, status, Envelope{
		Data: data,
		Meta: meta,
	})
}

// NoContent writes a 204 No Content response.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Err writes an error JSON response.
func Err(w http.ResponseWriter, status int, code string, message string, requestID string) {
	JSON(w, status, Envelope{
		Error: &Error{
			Code:    code,
			Message: message,
		},
		Meta: NewMeta(requestID),
	})
}

// ErrWithDetails writes an error JSON response with additional details.
func ErrWithDetails(w http.ResponseWriter, status int, code string, message string, details any, requestID string) {
	JSON(w, status, Envelope{
		Error: &Error{
			Code:    code,
			Message: message,
			Details: details,
		},
		Meta: NewMeta(requestID),
	})
}

// ValidationFailed writes a 422 with per-field errors and the submitted input.
func ValidationFailed(w http.ResponseWriter, details any, input any, requestID string) {
	JSON(w, http.StatusUnprocessableEntity, Envelope{
		Error: &Error{
			Code:    "VALIDATION_ERROR",
			Message: "Validation failed",
			Details: details,
			Input:   input,
		},
		Meta: NewMeta(requestID),
	})
}
