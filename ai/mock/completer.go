package mock

import (
	"context"

	"github.com/campusworks/clubagent/ai"
)

// MockCompleter is a test double for ai.Completer.
// It allows custom behavior injection via function fields.
type MockCompleter struct {
	// CompleteFunc is called by Complete if set.
	// If nil, Complete returns an empty completion.
	CompleteFunc func(ctx context.Context, prompt string) (ai.Completion, error)

	callCount int
	prompts   []string
}

// NewMockCompleter creates a mock completer with default behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockCompleter() *MockCompleter {
	return &MockCompleter{}
}

// Complete records the prompt and delegates to CompleteFunc when set.
func (m *MockCompleter) Complete(ctx context.Context, prompt string) (ai.Completion, error) {
	m.callCount++
	m.prompts = append(m.prompts, prompt)

	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, prompt)
	}

	return ai.Completion{}, nil
}

// CallCount returns the number of times Complete was called.
func (m *MockCompleter) CallCount() int {
	return m.callCount
}

// Prompts returns every prompt Complete received, in call order.
func (m *MockCompleter) Prompts() []string {
	return m.prompts
}

// LastPrompt returns the most recent prompt, or "" if none were sent.
func (m *MockCompleter) LastPrompt() string {
	if len(m.prompts) == 0 {
		return ""
	}
	return m.prompts[len(m.prompts)-1]
}

// Reset clears recorded calls and prompts.
func (m *MockCompleter) Reset() {
	m.callCount = 0
	m.prompts = nil
}
