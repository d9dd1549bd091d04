package llm

import (
	"context"
)

// Request is one chat completion request. Model, temperature and response
// mode vary per call because the four role slots map to different models.
type Request struct {
	Model       string
	System      string
	Prompt      string
	Temperature float64
	MaxTokens   int
	// JSONMode asks the provider for its structured-JSON response mode.
	// Providers without one return ErrJSONModeUnsupported and the gateway
	// falls back to a free-text request with JSON instructions.
	JSONMode bool
}

// Client is a chat-capable LLM provider.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}
