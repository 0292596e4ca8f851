// Package store provides conversation persistence interfaces and the
// file-backed implementation.
package store

import (
	"context"

	"github.com/rickkk856/carbon-agent-api/internal/domain"
)

// Repository defines the interface for persisting sessions, agent states,
// and messages.
type Repository interface {
	// LoadOrCreateSession returns the session for (userID, sessionID),
	// creating and persisting an empty one on first use. Idempotent.
	LoadOrCreateSession(ctx context.Context, userID, sessionID string) (*domain.Session, error)

	// TouchSession updates the session's last-activity timestamp and persists it.
	TouchSession(ctx context.Context, session *domain.Session) error

	// DeleteSession removes a session and, by cascade, all of its agent
	// states and messages. Deleting a session that does not exist is a no-op.
	DeleteSession(ctx context.Context, userID, sessionID string) error

	// LoadOrCreateAgent returns the persisted state for agentID within the
	// session, initializing it from defaultCfg when absent.
	LoadOrCreateAgent(ctx context.Context, session *domain.Session, agentID string, defaultCfg domain.AgentConfig) (*domain.AgentState, error)

	// SaveAgent persists the full agent state snapshot (overwrite, not append).
	// Concurrent saves for the same agent are last-writer-wins.
	SaveAgent(ctx context.Context, session *domain.Session, agent *domain.AgentState) error

	// AppendMessage allocates the next message ID for the agent, persists the
	// message as an individual record, and returns it.
	AppendMessage(ctx context.Context, session *domain.Session, agentID string, role domain.Role, content string) (*domain.Message, error)

	// ListMessages returns the agent's messages in ascending ID order. A
	// limit > 0 restricts the result to the most recent limit messages,
	// still in ascending order.
	ListMessages(ctx context.Context, session *domain.Session, agentID string, limit int) ([]*domain.Message, error)
}
