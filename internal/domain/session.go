// Package domain contains core domain types for the carbon agent API.
package domain

import (
	"time"
)

// Session is a user's named conversation context. It groups one or more
// agent states under a (user_id, session_id) pair and is created on the
// first request that names the pair. Sessions are never destroyed
// automatically; deletion is an explicit external operation.
type Session struct {
	UserID    string            `json:"user_id"`
	SessionID string            `json:"session_id"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// Key returns the session identity as a single loggable string.
func (s *Session) Key() string {
	return s.UserID + ":" + s.SessionID
}
