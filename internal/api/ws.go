package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/coder/websocket"

	"github.com/rickkk856/carbon-agent-api/internal/agent"
)

// WebSocketHandler serves the WebSocket chat variant of the streaming
// endpoint: one prompt message in, text fragments out, close on completion.
type WebSocketHandler struct {
	svc            *agent.Service
	allowedOrigins []string
}

// NewWebSocketHandler creates the WebSocket chat handler.
func NewWebSocketHandler(svc *agent.Service, allowedOrigins []string) *WebSocketHandler {
	return &WebSocketHandler{svc: svc, allowedOrigins: allowedOrigins}
}

// ServeHTTP upgrades the connection and runs one streamed analysis turn.
func (h *WebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	opts := &websocket.AcceptOptions{}
	for _, o := range h.allowedOrigins {
		if o == "*" {
			opts.InsecureSkipVerify = true
			break
		}
		opts.OriginPatterns = append(opts.OriginPatterns, o)
	}

	conn, err := websocket.Accept(w, r, opts)
	if err != nil {
		slog.Warn("websocket accept failed", "error", err)
		return
	}
	defer conn.Close(websocket.StatusInternalError, "handler exited")

	ctx := r.Context()

	_, data, err := conn.Read(ctx)
	if err != nil {
		slog.Debug("websocket read failed", "error", err)
		return
	}

	var req agent.ChatRequest
	if err := json.Unmarshal(data, &req); err != nil || req.Prompt == "" || req.UserID == "" || req.SessionID == "" {
		_ = conn.Close(websocket.StatusUnsupportedData, "prompt, user_id and session_id are required")
		return
	}

	for fragment, err := range h.svc.AnalyzeStream(ctx, req) {
		if err != nil {
			_ = conn.Close(websocket.StatusInternalError, "analysis failed")
			return
		}
		if err := conn.Write(ctx, websocket.MessageText, []byte(fragment)); err != nil {
			slog.Debug("websocket write failed", "error", err)
			return
		}
	}

	_ = conn.Close(websocket.StatusNormalClosure, "")
}
