package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "8000" {
		t.Errorf("Port = %q, want %q", cfg.Port, "8000")
	}
	if cfg.Model != "gemini-2.0-flash" {
		t.Errorf("Model = %q, want %q", cfg.Model, "gemini-2.0-flash")
	}
	if cfg.MaxOutputTokens != 1000 {
		t.Errorf("MaxOutputTokens = %d, want 1000", cfg.MaxOutputTokens)
	}
	if cfg.WindowSize != 20 {
		t.Errorf("WindowSize = %d, want 20", cfg.WindowSize)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Errorf("CORSOrigins = %v, want [*]", cfg.CORSOrigins)
	}
}

func TestLoadRequiresAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when GEMINI_API_KEY is unset")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("PORT", "9090")
	t.Setenv("WINDOW_SIZE", "5")
	t.Setenv("TEMPERATURE", "0.2")
	t.Setenv("CORS_ORIGINS", "https://a.example, null")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want %q", cfg.Port, "9090")
	}
	if cfg.WindowSize != 5 {
		t.Errorf("WindowSize = %d, want 5", cfg.WindowSize)
	}
	if cfg.Temperature != 0.2 {
		t.Errorf("Temperature = %v, want 0.2", cfg.Temperature)
	}
	want := []string{"https://a.example", "null"}
	if len(cfg.CORSOrigins) != len(want) {
		t.Fatalf("CORSOrigins = %v, want %v", cfg.CORSOrigins, want)
	}
	for i := range want {
		if cfg.CORSOrigins[i] != want[i] {
			t.Errorf("CORSOrigins[%d] = %q, want %q", i, cfg.CORSOrigins[i], want[i])
		}
	}
}

func TestValidateRejectsZeroWindow(t *testing.T) {
	cfg := &Config{
		Port:            "8000",
		GeminiAPIKey:    "k",
		SessionsDir:     "./sessions",
		Model:           "gemini-2.0-flash",
		MaxOutputTokens: 1000,
		WindowSize:      0,
		CORSOrigins:     []string{"*"},
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for WINDOW_SIZE = 0")
	}
}
