package llm

import (
	"context"
	"errors"
)

// Client abstracts the hosted language model behind a single synchronous call.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ErrNotConfigured is returned when no provider credentials were supplied at startup.
var ErrNotConfigured = errors.New("llm not configured")

// Disabled stands in when no API key is present: startup proceeds, every call fails.
type Disabled struct{}

// Generate returns ErrNotConfigured.
func (Disabled) Generate(ctx context.Context, prompt string) (string, error) {
	_ = ctx
	_ = prompt
	return "", ErrNotConfigured
}
