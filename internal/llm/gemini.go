package llm

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/rickkk856/carbon-agent-api/internal/domain"
)

// Gemini calls the Google Gemini API through the genai SDK.
type Gemini struct {
	client *genai.Client
	logger *slog.Logger
}

// GeminiConfig holds client construction options.
type GeminiConfig struct {
	APIKey string
}

// Ensure Gemini implements Client.
var _ Client = (*Gemini)(nil)

// NewGemini creates a Gemini client. The API key is required; model and
// generation parameters travel with each Request.
func NewGemini(ctx context.Context, cfg GeminiConfig, logger *slog.Logger) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: API key is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	return &Gemini{client: client, logger: logger}, nil
}

// Generate performs a blocking completion call.
func (g *Gemini) Generate(ctx context.Context, req Request) (string, error) {
	start := time.Now()

	resp, err := g.client.Models.GenerateContent(ctx, req.Model, buildContents(req), buildConfig(req))
	if err != nil {
		return "", upstreamErr("generate content: %w", err)
	}

	text := responseText(resp)
	if text == "" {
		return "", upstreamErr("empty completion from model %s", req.Model)
	}

	g.logger.Debug("gemini completion finished",
		"model", req.Model,
		"duration", time.Since(start),
		"response_len", len(text),
	)
	return text, nil
}

// Stream performs a streaming completion call, yielding text fragments as
// the provider delivers them. The sequence is finite and non-restartable;
// the caller breaking out of the loop stops consumption.
func (g *Gemini) Stream(ctx context.Context, req Request) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		start := time.Now()
		fragments := 0

		for resp, err := range g.client.Models.GenerateContentStream(ctx, req.Model, buildContents(req), buildConfig(req)) {
			if err != nil {
				yield("", upstreamErr("stream content: %w", err))
				return
			}
			text := responseText(resp)
			if text == "" {
				continue
			}
			fragments++
			if !yield(text, nil) {
				return
			}
		}

		g.logger.Debug("gemini stream finished",
			"model", req.Model,
			"duration", time.Since(start),
			"fragments", fragments,
		)
	}
}

// buildContents converts the windowed conversation into the provider's
// turn format. Tool turns are presented as user turns; the provider only
// distinguishes user and model roles.
func buildContents(req Request) []*genai.Content {
	contents := make([]*genai.Content, 0, len(req.Messages))
	for _, msg := range req.Messages {
		var role genai.Role = genai.RoleUser
		if msg.Role == domain.RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(msg.Content, role))
	}
	return contents
}

func buildConfig(req Request) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		MaxOutputTokens: req.MaxOutputTokens,
		Temperature:     genai.Ptr(req.Temperature),
	}
	if req.SystemPrompt != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.SystemPrompt, genai.RoleUser)
	}
	// The only tool ref mapped upstream today: http_request becomes the
	// provider's built-in URL-context tool so the model can read project
	// URLs itself. Unknown refs stay in the persisted snapshot only.
	for _, ref := range req.ToolRefs {
		if ref == "http_request" {
			cfg.Tools = append(cfg.Tools, &genai.Tool{URLContext: &genai.URLContext{}})
			break
		}
	}
	return cfg
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			b.WriteString(part.Text)
		}
	}
	return b.String()
}
