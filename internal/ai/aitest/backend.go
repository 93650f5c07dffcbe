// Package aitest provides a scripted model backend for tests.
package aitest

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/yungbote/growthdesk-backend/internal/platform/llm"
)

// Backend records every request and answers from a script.
type Backend struct {
	mu      sync.Mutex
	calls   []llm.JSONRequest
	respond func(llm.JSONRequest) (map[string]any, error)
}

func New(respond func(llm.JSONRequest) (map[string]any, error)) *Backend {
	return &Backend{respond: respond}
}

// Returning answers every call with a fresh copy of out. The value goes
// through a JSON round-trip so it has the shapes a real backend decodes into.
func Returning(out any) *Backend {
	raw, err := json.Marshal(out)
	if err != nil {
		panic(err)
	}
	return New(func(llm.JSONRequest) (map[string]any, error) {
		var m map[string]any
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, err
		}
		return m, nil
	})
}

func Failing(err error) *Backend {
	return New(func(llm.JSONRequest) (map[string]any, error) { return nil, err })
}

func (b *Backend) GenerateJSON(_ context.Context, req llm.JSONRequest) (map[string]any, error) {
	b.mu.Lock()
	b.calls = append(b.calls, req)
	b.mu.Unlock()
	return b.respond(req)
}

func (b *Backend) CallCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.calls)
}

func (b *Backend) LastCall() (llm.JSONRequest, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.calls) == 0 {
		return llm.JSONRequest{}, false
	}
	return b.calls[len(b.calls)-1], true
}
