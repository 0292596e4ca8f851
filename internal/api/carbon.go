package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rickkk856/carbon-agent-api/internal/agent"
)

// maxRequestBodySize caps incoming JSON bodies (1MB).
const maxRequestBodySize = 1 << 20

// Handler serves the analysis endpoints.
type Handler struct {
	svc *agent.Service
}

// NewHandler creates an API handler around the agent service.
func NewHandler(svc *agent.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers the analysis endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/carbon", h.HandleCarbon)
	r.Post("/carbon-streaming", h.HandleCarbonStreaming)
	r.Post("/weather", h.HandleWeather)
}

// decodeChatRequest validates the request body before anything is
// persisted; a malformed body never reaches the store.
func decodeChatRequest(w http.ResponseWriter, r *http.Request) (agent.ChatRequest, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)

	var req agent.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, CategoryValidation, "invalid request body")
		return req, false
	}
	if req.Prompt == "" {
		Error(w, http.StatusBadRequest, CategoryValidation, "prompt is required")
		return req, false
	}
	if req.UserID == "" {
		Error(w, http.StatusBadRequest, CategoryValidation, "user_id is required")
		return req, false
	}
	if req.SessionID == "" {
		Error(w, http.StatusBadRequest, CategoryValidation, "session_id is required")
		return req, false
	}
	return req, true
}

// HandleCarbon handles POST /carbon: one full analysis turn, answered as a
// single JSON document.
func (h *Handler) HandleCarbon(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeChatRequest(w, r)
	if !ok {
		return
	}

	reply, err := h.svc.Analyze(r.Context(), req)
	if err != nil {
		ServiceError(w, err)
		return
	}
	JSON(w, http.StatusOK, agent.ChatResponse{Response: reply})
}

// HandleCarbonStreaming handles POST /carbon-streaming: the answer is
// delivered as plain text chunks, flushed as the model produces them. An
// interrupted stream simply ends without a trailing success marker.
func (h *Handler) HandleCarbonStreaming(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeChatRequest(w, r)
	if !ok {
		return
	}

	flusher, canFlush := w.(http.Flusher)
	if !canFlush {
		Error(w, http.StatusInternalServerError, CategoryInternal, "streaming not supported")
		return
	}

	wrote := false
	for fragment, err := range h.svc.AnalyzeStream(r.Context(), req) {
		if err != nil {
			if !wrote {
				ServiceError(w, err)
			}
			// Mid-stream failure: the chunks already sent stand; just stop.
			return
		}
		if !wrote {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.Header().Set("Cache-Control", "no-cache")
			w.WriteHeader(http.StatusOK)
			wrote = true
		}
		if _, err := w.Write([]byte(fragment)); err != nil {
			slog.Warn("failed to write stream chunk", "error", err)
			return
		}
		flusher.Flush()
	}
}

// HandleWeather handles POST /weather: a stateless single-shot answer.
func (h *Handler) HandleWeather(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)

	var req agent.WeatherRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, CategoryValidation, "invalid request body")
		return
	}
	if req.Prompt == "" {
		Error(w, http.StatusBadRequest, CategoryValidation, "prompt is required")
		return
	}

	reply, err := h.svc.Weather(r.Context(), req.Prompt)
	if err != nil {
		ServiceError(w, err)
		return
	}
	JSON(w, http.StatusOK, agent.ChatResponse{Response: reply})
}
