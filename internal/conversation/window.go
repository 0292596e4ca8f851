// Package conversation derives the message subset presented to the model.
package conversation

import (
	"github.com/rickkk856/carbon-agent-api/internal/domain"
)

// Manager selects the portion of stored history submitted with an upstream
// call. Managers hold no persisted state; the window is recomputed on every
// call from what the message store already holds.
type Manager interface {
	Window(history []*domain.Message) []*domain.Message
}

// SlidingWindow keeps the most recent Size messages in original order. It
// bounds only what is sent upstream; storage stays append-only and
// unbounded.
type SlidingWindow struct {
	Size int
}

// NewSlidingWindow returns a sliding-window manager. Size must be positive;
// configuration validation rejects zero before a manager is built.
func NewSlidingWindow(size int) SlidingWindow {
	return SlidingWindow{Size: size}
}

// Window returns the last min(len(history), Size) messages.
func (w SlidingWindow) Window(history []*domain.Message) []*domain.Message {
	if w.Size <= 0 || len(history) <= w.Size {
		return history
	}
	return history[len(history)-w.Size:]
}

// ManagerFor builds the manager matching an agent's persisted
// conversation-manager kind.
func ManagerFor(agent *domain.AgentState) Manager {
	if agent.ConversationManager == domain.ManagerSlidingWindow && agent.Config.WindowSize > 0 {
		return NewSlidingWindow(agent.Config.WindowSize)
	}
	return nullManager{}
}

// nullManager passes the full stored history through.
type nullManager struct{}

func (nullManager) Window(history []*domain.Message) []*domain.Message {
	return history
}
