package agent

import (
	"context"
	"iter"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rickkk856/carbon-agent-api/internal/conversation"
	"github.com/rickkk856/carbon-agent-api/internal/domain"
	"github.com/rickkk856/carbon-agent-api/internal/llm"
	"github.com/rickkk856/carbon-agent-api/internal/store"
)

// Config holds the model parameters applied to every agent the service
// creates. Values come from application configuration at startup.
type Config struct {
	Model           string
	MaxOutputTokens int32
	Temperature     float32
	WindowSize      int
}

// Service runs one conversation turn end to end: load-or-create the
// session and agent state, persist the user turn, window the stored
// history, call the upstream model, persist the assistant turn.
type Service struct {
	llm    llm.Client
	repo   store.Repository
	cfg    Config
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates an agent service.
func NewService(llmClient llm.Client, repo store.Repository, cfg Config, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		llm:    llmClient,
		repo:   repo,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// carbonConfig is the default configuration snapshot written the first
// time a session produces the carbon agent.
func (s *Service) carbonConfig() domain.AgentConfig {
	return domain.AgentConfig{
		Model:        s.cfg.Model,
		SystemPrompt: CarbonSystemPrompt,
		WindowSize:   s.cfg.WindowSize,
		ToolRefs:     []string{"http_request"},
	}
}

// prepareTurn persists the user turn and assembles the upstream request.
// The user message is durably stored before the upstream call begins, so
// an upstream failure leaves the prompt on disk with no assistant reply.
func (s *Service) prepareTurn(ctx context.Context, req ChatRequest) (*domain.Session, *domain.AgentState, llm.Request, error) {
	session, err := s.repo.LoadOrCreateSession(ctx, req.UserID, req.SessionID)
	if err != nil {
		return nil, nil, llm.Request{}, err
	}

	agent, err := s.repo.LoadOrCreateAgent(ctx, session, CarbonAgentID, s.carbonConfig())
	if err != nil {
		return nil, nil, llm.Request{}, err
	}

	if _, err := s.repo.AppendMessage(ctx, session, agent.AgentID, domain.RoleUser, req.Prompt); err != nil {
		return nil, nil, llm.Request{}, err
	}

	history, err := s.repo.ListMessages(ctx, session, agent.AgentID, 0)
	if err != nil {
		return nil, nil, llm.Request{}, err
	}
	window := conversation.ManagerFor(agent).Window(history)

	return session, agent, llm.Request{
		Model:           agent.Config.Model,
		SystemPrompt:    agent.Config.SystemPrompt,
		Messages:        window,
		MaxOutputTokens: s.cfg.MaxOutputTokens,
		Temperature:     s.cfg.Temperature,
		ToolRefs:        agent.Config.ToolRefs,
	}, nil
}

// completeTurn persists the assistant reply and bumps session activity.
func (s *Service) completeTurn(ctx context.Context, session *domain.Session, agent *domain.AgentState, reply string) error {
	if _, err := s.repo.AppendMessage(ctx, session, agent.AgentID, domain.RoleAssistant, reply); err != nil {
		return err
	}
	if err := s.repo.SaveAgent(ctx, session, agent); err != nil {
		return err
	}
	return s.repo.TouchSession(ctx, session)
}

// Analyze runs one full carbon-analysis turn and returns the complete answer.
func (s *Service) Analyze(ctx context.Context, req ChatRequest) (string, error) {
	invocationID := uuid.NewString()
	log := s.logger.With(
		"user_id", req.UserID,
		"session_id", req.SessionID,
		"invocation_id", invocationID,
	)

	session, agent, llmReq, err := s.prepareTurn(ctx, req)
	if err != nil {
		log.Error("failed to prepare conversation turn", "error", err)
		return "", err
	}
	log.Info("carbon analysis started", "session", session.Key(), "window_len", len(llmReq.Messages))

	reply, err := s.llm.Generate(ctx, llmReq)
	if err != nil {
		// The user message stays persisted; no assistant message is written.
		log.Error("upstream call failed", "error", err)
		return "", err
	}

	if err := s.completeTurn(ctx, session, agent, reply); err != nil {
		log.Error("failed to persist assistant reply", "error", err)
		return "", err
	}

	log.Info("carbon analysis completed", "response_len", len(reply))
	return reply, nil
}

// AnalyzeStream runs one carbon-analysis turn, yielding answer fragments
// as the upstream produces them. The completed reply is persisted after
// the stream ends; a stream aborted by upstream failure or consumer
// cancellation persists at most the user's prompt.
func (s *Service) AnalyzeStream(ctx context.Context, req ChatRequest) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		invocationID := uuid.NewString()
		log := s.logger.With(
			"user_id", req.UserID,
			"session_id", req.SessionID,
			"invocation_id", invocationID,
		)

		session, agent, llmReq, err := s.prepareTurn(ctx, req)
		if err != nil {
			log.Error("failed to prepare conversation turn", "error", err)
			yield("", err)
			return
		}
		log.Info("carbon analysis stream started", "session", session.Key(), "window_len", len(llmReq.Messages))

		var reply strings.Builder
		for fragment, err := range s.llm.Stream(ctx, llmReq) {
			if err != nil {
				log.Error("upstream stream failed", "error", err, "partial_len", reply.Len())
				yield("", err)
				return
			}
			reply.WriteString(fragment)
			if !yield(fragment, nil) {
				log.Info("stream consumer disconnected", "partial_len", reply.Len())
				return
			}
		}

		if reply.Len() == 0 {
			// The upstream produced nothing; treat as a failed call.
			log.Warn("upstream stream produced no output")
			yield("", &llm.UpstreamError{Err: errEmptyStream})
			return
		}

		if err := s.completeTurn(ctx, session, agent, reply.String()); err != nil {
			log.Error("failed to persist assistant reply", "error", err)
			yield("", err)
			return
		}
		log.Info("carbon analysis stream completed", "response_len", reply.Len())
	}
}

// Weather answers a prompt with the stateless weather agent. Nothing is
// persisted for this variant.
func (s *Service) Weather(ctx context.Context, prompt string) (string, error) {
	invocationID := uuid.NewString()
	s.logger.Info("weather request started", "invocation_id", invocationID)

	reply, err := s.llm.Generate(ctx, llm.Request{
		Model:        s.cfg.Model,
		SystemPrompt: WeatherSystemPrompt,
		Messages: []*domain.Message{
			{Role: domain.RoleUser, Content: prompt, CreatedAt: s.now().UTC()},
		},
		MaxOutputTokens: s.cfg.MaxOutputTokens,
		Temperature:     s.cfg.Temperature,
	})
	if err != nil {
		s.logger.Error("weather request failed", "invocation_id", invocationID, "error", err)
		return "", err
	}
	return reply, nil
}

// ResetSession deletes a session and all of its agent state and messages.
// Exposed for explicit external cleanup; nothing in the request path calls it.
func (s *Service) ResetSession(ctx context.Context, userID, sessionID string) error {
	return s.repo.DeleteSession(ctx, userID, sessionID)
}
