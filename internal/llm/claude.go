package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/liushuangls/go-anthropic/v2"
)

type ClaudeClient struct {
	client *anthropic.Client
}

func NewClaudeClient(apiKey string, baseURL string) *ClaudeClient {
	var opts []anthropic.ClientOption
	if baseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(baseURL))
	}
	return &ClaudeClient{
		client: anthropic.NewClient(apiKey, opts...),
	}
}

func (c *ClaudeClient) Complete(ctx context.Context, req Request) (string, error) {
	// The Anthropic API has no structured-JSON response mode; let the
	// gateway fall back to prompt-level JSON instructions.
	if req.JSONMode {
		return "", ErrJSONModeUnsupported
	}

	temperature := float32(req.Temperature)
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = 4096
	}

	msgReq := anthropic.MessagesRequest{
		Model: anthropic.Model(req.Model),
		Messages: []anthropic.Message{
			{
				Role: anthropic.RoleUser,
				Content: []anthropic.MessageContent{
					anthropic.NewTextMessageContent(req.Prompt),
				},
			},
		},
		MaxTokens:   maxTokens,
		Temperature: &temperature,
	}
	if req.System != "" {
		msgReq.System = req.System
	}

	resp, err := c.client.CreateMessages(ctx, msgReq)
	if err != nil {
		return "", classifyAnthropicError(err)
	}
	if len(resp.Content) > 0 && resp.Content[0].Text != nil {
		return *resp.Content[0].Text, nil
	}
	return "", fmt.Errorf("no response content")
}

func classifyAnthropicError(err error) error {
	var apiErr *anthropic.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Type {
		case anthropic.ErrTypeRateLimit, anthropic.ErrTypeOverloaded, anthropic.ErrTypeApi:
			return Transient(err)
		}
		return err
	}
	return Transient(err)
}
