package llm

import (
	"context"
	"errors"
)

// Request captures one two-message exchange with the text-generation service.
type Request struct {
	Label         string
	Prompt        string
	SystemMessage string
	MaxTokens     int
	Temperature   float32
}

// Client abstracts text-generation providers.
type Client interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// ErrNotConfigured is returned by the placeholder client when no provider
// credentials are available.
var ErrNotConfigured = errors.New("llm provider not configured")

// PlaceholderClient is a stub implementation used when no API key is set.
type PlaceholderClient struct{}

// Generate returns ErrNotConfigured.
func (PlaceholderClient) Generate(ctx context.Context, req Request) (string, error) {
	_ = ctx
	_ = req
	return "", ErrNotConfigured
}
