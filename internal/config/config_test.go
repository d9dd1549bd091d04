package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTOML = `
[llm]
provider = "claude"
max_tokens = 2048

[models]
solver_1 = "claude-sonnet"
judge = "claude-opus"

[temperatures]
solver = 0.9

[retry]
max_attempts = 5

[paths]
problems_file = "custom/problems.json"

[graph]
uri = "bolt://localhost:7687"
user = "memgraph"
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(sampleTOML), 0o644))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "claude", cfg.LLM.Provider)
	assert.Equal(t, 2048, cfg.LLM.MaxTokens)
	assert.Equal(t, "claude-sonnet", cfg.Models.Solver1)
	assert.Equal(t, "claude-opus", cfg.Models.Judge)
	assert.Equal(t, 0.9, cfg.Temperatures.Solver)
	assert.Equal(t, 5, cfg.Retry.MaxAttempts)
	assert.Equal(t, "custom/problems.json", cfg.Paths.ProblemsFile)
	assert.Equal(t, "bolt://localhost:7687", cfg.Graph.URI)

	// Unset fields still fall back to defaults.
	assert.Equal(t, "gpt-4-turbo-preview", cfg.Models.Solver2)
	assert.Equal(t, 0.5, cfg.Temperatures.Reviewer)
	assert.Equal(t, 0.3, cfg.Temperatures.Judge)
	assert.Equal(t, float64(2), cfg.Retry.InitialDelaySeconds)
	assert.NotEmpty(t, cfg.Prompts.Solver)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))

	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, 0.7, cfg.Temperatures.Solver)
	assert.Equal(t, 3, cfg.Retry.MaxAttempts)
	assert.Equal(t, "data/problems.json", cfg.Paths.ProblemsFile)
	assert.Equal(t, "data/results/progress.json", cfg.Paths.CheckpointFile)
	assert.Equal(t, 3, cfg.Concurrency.StageCalls)
	assert.NotEmpty(t, cfg.Prompts.RoleAssessment)
	assert.NotEmpty(t, cfg.Prompts.Judge)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "ollama")
	t.Setenv("LLM_BASE_URL", "http://localhost:11434")
	t.Setenv("LLM_API_KEY", "secret")
	t.Setenv("PROBLEMS_FILE", "env/problems.json")
	t.Setenv("GRAPH_URI", "bolt://remote:7687")

	cfg := Default()
	cfg.ApplyEnv()

	assert.Equal(t, "ollama", cfg.LLM.Provider)
	assert.Equal(t, "http://localhost:11434", cfg.LLM.BaseURL)
	assert.Equal(t, "secret", cfg.LLM.APIKey)
	assert.Equal(t, "env/problems.json", cfg.Paths.ProblemsFile)
	assert.Equal(t, "bolt://remote:7687", cfg.Graph.URI)
}

func TestApplyEnvOpenAIKeyFallback(t *testing.T) {
	t.Setenv("LLM_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "sk-fallback")

	cfg := Default()
	cfg.ApplyEnv()

	assert.Equal(t, "sk-fallback", cfg.LLM.APIKey)
}

func TestOrderedSlots(t *testing.T) {
	m := ModelsConfig{Solver1: "a", Solver2: "b", Solver3: "c", Judge: "d"}

	ordered := m.Ordered()

	require.Len(t, ordered, 4)
	assert.Equal(t, SlotModel{Slot: "solver_1", Model: "a"}, ordered[0])
	assert.Equal(t, SlotModel{Slot: "judge", Model: "d"}, ordered[3])
}
