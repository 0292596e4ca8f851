// Package agent orchestrates conversations between the HTTP layer, the
// session store, and the upstream model.
package agent

// Agent role identifiers within a session. The carbon agent owns persisted
// history; the weather agent is stateless and never stored.
const (
	CarbonAgentID = "carbon"
)

// ChatRequest is a prompt addressed to the carbon agent within a session.
type ChatRequest struct {
	Prompt    string `json:"prompt"`
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"`
}

// ChatResponse is the agent's full answer for the non-streaming endpoint.
type ChatResponse struct {
	Response string `json:"response"`
}

// WeatherRequest is a prompt for the stateless weather variant.
type WeatherRequest struct {
	Prompt string `json:"prompt"`
}
