package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/tribunal/internal/config"
)

func TestNewClientOpenAI(t *testing.T) {
	client, err := NewClient(context.Background(), config.LLMConfig{Provider: "openai", APIKey: "sk-test"})

	require.NoError(t, err)
	assert.IsType(t, &OpenAIClient{}, client)
}

func TestNewClientClaude(t *testing.T) {
	client, err := NewClient(context.Background(), config.LLMConfig{Provider: "claude", APIKey: "sk-ant-test"})

	require.NoError(t, err)
	assert.IsType(t, &ClaudeClient{}, client)
}

func TestNewClientOllamaUsesOpenAICompat(t *testing.T) {
	client, err := NewClient(context.Background(), config.LLMConfig{Provider: "ollama"})

	require.NoError(t, err)
	assert.IsType(t, &OpenAIClient{}, client)
}

func TestNewClientProviderCaseInsensitive(t *testing.T) {
	_, err := NewClient(context.Background(), config.LLMConfig{Provider: "OpenAI", APIKey: "sk-test"})

	assert.NoError(t, err)
}

func TestNewClientUnknownProvider(t *testing.T) {
	_, err := NewClient(context.Background(), config.LLMConfig{Provider: "watson"})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported llm provider")
}

func TestTransientClassification(t *testing.T) {
	err := Transient(assert.AnError)

	assert.True(t, IsTransient(err))
	assert.False(t, IsTransient(assert.AnError))
	assert.NoError(t, Transient(nil))
}
