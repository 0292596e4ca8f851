// Package llm defines the narrow interface to the upstream model provider.
package llm

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/rickkk856/carbon-agent-api/internal/domain"
)

// Request carries everything a single upstream call needs: the agent's
// configuration snapshot and the already-windowed conversation. Messages
// includes the new user turn as its last element.
type Request struct {
	Model           string
	SystemPrompt    string
	Messages        []*domain.Message
	MaxOutputTokens int32
	Temperature     float32
	ToolRefs        []string
}

// Client is the upstream LLM interface. Failures from either method are
// opaque upstream errors; callers only distinguish them from storage and
// validation failures.
type Client interface {
	// Generate returns the complete text answer for the request.
	Generate(ctx context.Context, req Request) (string, error)

	// Stream returns a lazy, finite, non-restartable sequence of text
	// fragments. Stopping the iteration or cancelling the context stops
	// fragment production.
	Stream(ctx context.Context, req Request) iter.Seq2[string, error]
}

// UpstreamError wraps a failure from the model provider.
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// IsUpstreamError reports whether err is (or wraps) an UpstreamError.
func IsUpstreamError(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue)
}

func upstreamErr(format string, args ...any) error {
	return &UpstreamError{Err: fmt.Errorf(format, args...)}
}
