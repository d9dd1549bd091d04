package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/agenthands/tribunal/internal/core/common"
	"github.com/agenthands/tribunal/internal/llm"
)

// ErrExhaustedRetries is returned after the retry budget is consumed by
// transient failures.
var ErrExhaustedRetries = errors.New("exhausted retries")

// ErrMalformedResponse is returned when the final response, after the
// free-text fallback, cannot be parsed as a JSON object. It is never retried.
var ErrMalformedResponse = errors.New("malformed response")

const jsonInstruction = "\n\nIMPORTANT: Respond ONLY with valid JSON, no other text."

type Config struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxTokens    int
}

// Gateway wraps every request to the reasoning service with retry/backoff
// and structured-response fallback. It is stateless and safe to share
// across stages.
type Gateway struct {
	client llm.Client
	cfg    Config
}

func New(client llm.Client, cfg Config) *Gateway {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.InitialDelay <= 0 {
		cfg.InitialDelay = 2 * time.Second
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 4096
	}
	return &Gateway{client: client, cfg: cfg}
}

// Invoke issues the request and returns the JSON object extracted from the
// response. Transient failures are retried with exponential backoff;
// non-transient failures fail immediately.
func (g *Gateway) Invoke(ctx context.Context, req llm.Request) (json.RawMessage, error) {
	if req.MaxTokens == 0 {
		req.MaxTokens = g.cfg.MaxTokens
	}

	var content string
	operation := func() error {
		var err error
		content, err = g.attempt(ctx, req)
		if err == nil {
			return nil
		}
		if llm.IsTransient(err) {
			return err
		}
		return backoff.Permanent(err)
	}

	expo := backoff.NewExponentialBackOff()
	expo.InitialInterval = g.cfg.InitialDelay
	policy := backoff.WithContext(backoff.WithMaxRetries(expo, uint64(g.cfg.MaxAttempts-1)), ctx)

	if err := backoff.Retry(operation, policy); err != nil {
		if llm.IsTransient(err) {
			return nil, fmt.Errorf("%w: %v", ErrExhaustedRetries, err)
		}
		return nil, err
	}

	jsonStr, err := common.ExtractJSON(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return json.RawMessage(jsonStr), nil
}

// attempt tries the structured-JSON response mode first. If the model
// rejects it, the same request is re-issued in free-text mode with explicit
// JSON instructions appended.
func (g *Gateway) attempt(ctx context.Context, req llm.Request) (string, error) {
	jsonReq := req
	jsonReq.JSONMode = true

	content, err := g.client.Complete(ctx, jsonReq)
	if err == nil {
		return content, nil
	}
	if !errors.Is(err, llm.ErrJSONModeUnsupported) {
		return "", err
	}

	textReq := req
	textReq.JSONMode = false
	textReq.Prompt += jsonInstruction
	return g.client.Complete(ctx, textReq)
}

// InvokeAs invokes the request and unmarshals the response into T.
func InvokeAs[T any](ctx context.Context, g *Gateway, req llm.Request) (T, error) {
	var zero T

	raw, err := g.Invoke(ctx, req)
	if err != nil {
		return zero, err
	}

	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return out, nil
}
