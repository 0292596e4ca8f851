package llm

import (
	"testing"

	"google.golang.org/genai"

	"github.com/rickkk856/carbon-agent-api/internal/domain"
)

func TestBuildContentsMapsRoles(t *testing.T) {
	t.Parallel()

	req := Request{Messages: []*domain.Message{
		{ID: 1, Role: domain.RoleUser, Content: "analyze this"},
		{ID: 2, Role: domain.RoleAssistant, Content: "120 tCO2e"},
		{ID: 3, Role: domain.RoleTool, Content: "fetched page"},
	}}

	contents := buildContents(req)
	if len(contents) != 3 {
		t.Fatalf("expected 3 contents, got %d", len(contents))
	}

	if contents[0].Role != genai.RoleUser {
		t.Errorf("user turn: got role %q", contents[0].Role)
	}
	if contents[1].Role != genai.RoleModel {
		t.Errorf("assistant turn: got role %q", contents[1].Role)
	}
	if contents[2].Role != genai.RoleUser {
		t.Errorf("tool turn must be presented as user, got role %q", contents[2].Role)
	}
}

func TestBuildConfig(t *testing.T) {
	t.Parallel()

	cfg := buildConfig(Request{
		SystemPrompt:    "be concise",
		MaxOutputTokens: 1000,
		Temperature:     0.7,
		ToolRefs:        []string{"http_request", "ready_to_summarize"},
	})

	if cfg.MaxOutputTokens != 1000 {
		t.Errorf("MaxOutputTokens = %d, want 1000", cfg.MaxOutputTokens)
	}
	if cfg.Temperature == nil || *cfg.Temperature != 0.7 {
		t.Errorf("Temperature = %v, want 0.7", cfg.Temperature)
	}
	if cfg.SystemInstruction == nil {
		t.Error("expected a system instruction")
	}
	if len(cfg.Tools) != 1 || cfg.Tools[0].URLContext == nil {
		t.Errorf("expected exactly the URL-context tool, got %v", cfg.Tools)
	}
}

func TestBuildConfigWithoutTools(t *testing.T) {
	t.Parallel()

	cfg := buildConfig(Request{MaxOutputTokens: 100, Temperature: 0.1})
	if len(cfg.Tools) != 0 {
		t.Errorf("expected no tools, got %d", len(cfg.Tools))
	}
	if cfg.SystemInstruction != nil {
		t.Error("expected no system instruction for an empty prompt")
	}
}
