// Package api provides HTTP handlers for the carbon agent API.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rickkk856/carbon-agent-api/internal/llm"
	"github.com/rickkk856/carbon-agent-api/internal/store"
)

// Error categories surfaced to clients.
const (
	CategoryValidation = "validation"
	CategoryStorage    = "storage"
	CategoryUpstream   = "upstream"
	CategoryInternal   = "internal"
)

// ErrorPayload is the structured error body returned by every endpoint.
type ErrorPayload struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"category":"internal","message":"failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a structured JSON error response.
func Error(w http.ResponseWriter, status int, category, message string) {
	JSON(w, status, map[string]ErrorPayload{"error": {Category: category, Message: message}})
}

// ServiceError maps a service-layer failure to an HTTP error response.
// Validation failures are 400, storage failures 500, upstream failures 502.
func ServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrInvalidID):
		Error(w, http.StatusBadRequest, CategoryValidation, err.Error())
	case llm.IsUpstreamError(err):
		Error(w, http.StatusBadGateway, CategoryUpstream, "model call failed")
	case store.IsStorageError(err):
		Error(w, http.StatusInternalServerError, CategoryStorage, "session storage failed")
	default:
		Error(w, http.StatusInternalServerError, CategoryInternal, "internal error")
	}
}
