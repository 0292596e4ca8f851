package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rickkk856/carbon-agent-api/internal/llm"
	"github.com/rickkk856/carbon-agent-api/internal/store"
)

func TestJSON(t *testing.T) {
	w := httptest.NewRecorder()
	data := map[string]string{"foo": "bar"}

	JSON(w, http.StatusOK, data)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	var got map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if got["foo"] != "bar" {
		t.Errorf("Expected foo=bar, got %v", got["foo"])
	}
}

func TestErrorPayloadShape(t *testing.T) {
	w := httptest.NewRecorder()

	Error(w, http.StatusBadRequest, CategoryValidation, "prompt is required")

	resp := w.Result()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", resp.StatusCode)
	}

	var got map[string]ErrorPayload
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if got["error"].Category != CategoryValidation {
		t.Errorf("Expected category %q, got %q", CategoryValidation, got["error"].Category)
	}
	if got["error"].Message != "prompt is required" {
		t.Errorf("Unexpected message: %q", got["error"].Message)
	}
}

func TestServiceErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCat    string
	}{
		{
			name:       "invalid id",
			err:        fmt.Errorf("%w: user %q", store.ErrInvalidID, "../x"),
			wantStatus: http.StatusBadRequest,
			wantCat:    CategoryValidation,
		},
		{
			name:       "upstream",
			err:        &llm.UpstreamError{Err: errors.New("boom")},
			wantStatus: http.StatusBadGateway,
			wantCat:    CategoryUpstream,
		},
		{
			name:       "storage",
			err:        &store.StorageError{Op: "read", Path: "x", Err: errors.New("io")},
			wantStatus: http.StatusInternalServerError,
			wantCat:    CategoryStorage,
		},
		{
			name:       "unknown",
			err:        errors.New("unexpected"),
			wantStatus: http.StatusInternalServerError,
			wantCat:    CategoryInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			ServiceError(w, tt.err)

			resp := w.Result()
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, resp.StatusCode)
			}
			var got map[string]ErrorPayload
			if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
				t.Fatalf("Failed to decode response: %v", err)
			}
			if got["error"].Category != tt.wantCat {
				t.Errorf("Expected category %q, got %q", tt.wantCat, got["error"].Category)
			}
		})
	}
}
