package llm

import (
	"context"
	"errors"
)

// Client abstracts language-model providers behind a single text-in/text-out
// call. Prompt construction and response sanitization are entirely the
// caller's responsibility; the model guarantees nothing about output format.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("language model not configured")

// PlaceholderClient is a stub implementation until provider wiring is added.
type PlaceholderClient struct{}

// Generate returns ErrNotConfigured.
func (PlaceholderClient) Generate(ctx context.Context, prompt string) (string, error) {
	_ = ctx
	_ = prompt
	return "", ErrNotConfigured
}
