package llm

import (
	"context"
	"fmt"
	"iter"
	"sync"
)

// Mock is a canned-response Client for tests and offline development.
type Mock struct {
	mu        sync.Mutex
	Reply     string
	Fragments []string
	Err       error
	Requests  []Request
}

// Ensure Mock implements Client.
var _ Client = (*Mock)(nil)

func NewMock(reply string) *Mock {
	return &Mock{Reply: reply}
}

func (m *Mock) Generate(_ context.Context, req Request) (string, error) {
	m.mu.Lock()
	m.Requests = append(m.Requests, req)
	m.mu.Unlock()

	if m.Err != nil {
		return "", &UpstreamError{Err: m.Err}
	}
	if m.Reply != "" {
		return m.Reply, nil
	}
	prompt := ""
	if len(req.Messages) > 0 {
		prompt = req.Messages[len(req.Messages)-1].Content
	}
	return fmt.Sprintf("mock reply to %q", prompt), nil
}

func (m *Mock) Stream(_ context.Context, req Request) iter.Seq2[string, error] {
	m.mu.Lock()
	m.Requests = append(m.Requests, req)
	m.mu.Unlock()

	return func(yield func(string, error) bool) {
		if m.Err != nil {
			yield("", &UpstreamError{Err: m.Err})
			return
		}
		fragments := m.Fragments
		if len(fragments) == 0 {
			fragments = []string{m.Reply}
		}
		for _, f := range fragments {
			if !yield(f, nil) {
				return
			}
		}
	}
}

// LastRequest returns the most recent request seen, or nil.
func (m *Mock) LastRequest() *Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Requests) == 0 {
		return nil
	}
	req := m.Requests[len(m.Requests)-1]
	return &req
}
