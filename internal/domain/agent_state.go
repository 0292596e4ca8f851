package domain

// ConversationManagerKind names the truncation policy an agent uses when
// presenting stored history to the model.
type ConversationManagerKind string

const (
	// ManagerSlidingWindow keeps only the most recent N messages.
	ManagerSlidingWindow ConversationManagerKind = "sliding_window"
	// ManagerNull sends the full stored history unmodified.
	ManagerNull ConversationManagerKind = "null"
)

// AgentConfig is the configuration snapshot persisted with an agent state.
// It enumerates the recognized options explicitly instead of carrying a
// free-form dict.
type AgentConfig struct {
	Model        string   `json:"model"`
	SystemPrompt string   `json:"system_prompt"`
	WindowSize   int      `json:"window_size"`
	ToolRefs     []string `json:"tool_refs,omitempty"`
}

// AgentState is the persisted state of one agent role within a session:
// its configuration snapshot, conversation-manager kind, and a free-form
// state blob. The message history lives alongside it as individual
// records, not inside the snapshot.
type AgentState struct {
	AgentID             string                  `json:"agent_id"`
	Config              AgentConfig             `json:"config"`
	ConversationManager ConversationManagerKind `json:"conversation_manager"`
	State               map[string]string       `json:"state,omitempty"`
}
