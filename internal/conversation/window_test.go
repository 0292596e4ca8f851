package conversation

import (
	"fmt"
	"testing"

	"github.com/rickkk856/carbon-agent-api/internal/domain"
)

func history(n int) []*domain.Message {
	msgs := make([]*domain.Message, n)
	for i := range msgs {
		msgs[i] = &domain.Message{
			ID:      uint64(i + 1),
			Role:    domain.RoleUser,
			Content: fmt.Sprintf("m%d", i+1),
		}
	}
	return msgs
}

func TestSlidingWindow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		history int
		size    int
		want    int
		firstID uint64
	}{
		{name: "window smaller than history", history: 5, size: 3, want: 3, firstID: 3},
		{name: "window equals history", history: 4, size: 4, want: 4, firstID: 1},
		{name: "window larger than history", history: 2, size: 10, want: 2, firstID: 1},
		{name: "empty history", history: 0, size: 3, want: 0},
		{name: "single message", history: 1, size: 1, want: 1, firstID: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := NewSlidingWindow(tt.size).Window(history(tt.history))
			if len(got) != tt.want {
				t.Fatalf("expected %d messages, got %d", tt.want, len(got))
			}
			if tt.want == 0 {
				return
			}
			if got[0].ID != tt.firstID {
				t.Errorf("expected window to start at id %d, got %d", tt.firstID, got[0].ID)
			}
			for i := 1; i < len(got); i++ {
				if got[i].ID != got[i-1].ID+1 {
					t.Errorf("window reordered messages: %d after %d", got[i].ID, got[i-1].ID)
				}
			}
		})
	}
}

func TestSlidingWindowKeepsLastElements(t *testing.T) {
	t.Parallel()

	got := NewSlidingWindow(3).Window(history(5))
	for i, want := range []string{"m3", "m4", "m5"} {
		if got[i].Content != want {
			t.Errorf("position %d: expected %q, got %q", i, want, got[i].Content)
		}
	}
}

func TestManagerFor(t *testing.T) {
	t.Parallel()

	sliding := &domain.AgentState{
		ConversationManager: domain.ManagerSlidingWindow,
		Config:              domain.AgentConfig{WindowSize: 2},
	}
	if got := ManagerFor(sliding).Window(history(5)); len(got) != 2 {
		t.Errorf("sliding manager: expected 2 messages, got %d", len(got))
	}

	null := &domain.AgentState{ConversationManager: domain.ManagerNull}
	if got := ManagerFor(null).Window(history(5)); len(got) != 5 {
		t.Errorf("null manager: expected full history, got %d", len(got))
	}
}
