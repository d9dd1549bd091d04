//go:build integration

package integration

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/tribunal/internal/batch"
	"github.com/agenthands/tribunal/internal/config"
	"github.com/agenthands/tribunal/internal/core/model"
	"github.com/agenthands/tribunal/internal/gateway"
	"github.com/agenthands/tribunal/internal/llm"
	"github.com/agenthands/tribunal/internal/pipeline"
	"github.com/agenthands/tribunal/internal/store"
)

// scriptedClient serves canned stage responses so the full pipeline can run
// against the real file store without a provider.
type scriptedClient struct{}

func (scriptedClient) Complete(_ context.Context, req llm.Request) (string, error) {
	switch {
	case strings.Contains(req.System, "self-assessments"):
		if req.Model == "model-d" {
			return `{"role_preferences": ["Judge"], "confidence_by_role": {"Solver": 0.2, "Judge": 0.9}, "reasoning": "evaluator"}`, nil
		}
		return `{"role_preferences": ["Solver"], "confidence_by_role": {"Solver": 0.8, "Judge": 0.3}, "reasoning": "solver"}`, nil
	case strings.Contains(req.System, "judge"):
		return `{"winner": "solver_1", "winning_answer": "42", "evaluation": {}, "selection_reasoning": "best", "consensus_analysis": "agree", "confidence": 0.9}`, nil
	case strings.Contains(req.System, "peer reviews"):
		return `{"strengths": ["clear"], "weaknesses": [], "overall_assessment": "fine", "answer_correctness": "correct", "confidence": 0.8}`, nil
	case strings.Contains(req.System, "peer feedback"):
		return `{"refinement_reasoning": "kept", "reasoning_steps": ["6*7"], "final_answer": "42", "confidence": 0.95, "changed_from_original": false, "improvement_explanation": "none"}`, nil
	default:
		return `{"reasoning_steps": ["6*7"], "final_answer": "42", "confidence": 0.9, "approach": "arithmetic"}`, nil
	}
}

// failingClient stands in for a provider that is down; anything still calling
// the model fails loudly.
type failingClient struct{}

func (failingClient) Complete(context.Context, llm.Request) (string, error) {
	return "", errors.New("provider unavailable")
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Models = config.ModelsConfig{
		Solver1: "model-a",
		Solver2: "model-b",
		Solver3: "model-c",
		Judge:   "model-d",
	}
	return cfg
}

func TestFullPipelineOverFileStore(t *testing.T) {
	dir := t.TempDir()
	st, err := store.NewFileStore(dir)
	require.NoError(t, err)

	cfg := testConfig()
	gw := gateway.New(scriptedClient{}, gateway.Config{MaxAttempts: 1, InitialDelay: time.Millisecond})
	pipe := pipeline.New(cfg, st, gw)

	problem := model.Problem{ID: "math_001", Category: "math", Text: "What is 6*7?"}
	run := pipe.Run(context.Background(), problem, pipeline.NewSkipSet())

	require.True(t, run.Success, "errors: %v", run.Errors)
	assert.Equal(t, "solver_1", run.Winner)
	assert.Equal(t, "42", run.WinningAnswer)

	// All five stage artifacts land on disk under their canonical names.
	for _, name := range []string{
		"math_001_stage0_roles.json",
		"math_001_stage1_solutions.json",
		"math_001_stage2_reviews.json",
		"math_001_stage3_refined.json",
		"math_001_stage4_judgment.json",
	} {
		assert.FileExists(t, filepath.Join(dir, name))
	}

	// A re-run with every stage skipped replays entirely from disk: the
	// provider can be gone and the outcome is identical.
	offline := pipeline.New(cfg, st, gateway.New(failingClient{}, gateway.Config{MaxAttempts: 1, InitialDelay: time.Millisecond}))
	skip := pipeline.NewSkipSet(model.Stages...)

	replay := offline.Run(context.Background(), problem, skip)

	require.True(t, replay.Success, "errors: %v", replay.Errors)
	assert.Equal(t, run.Winner, replay.Winner)
	assert.Equal(t, run.WinningAnswer, replay.WinningAnswer)
	assert.Empty(t, replay.StagesCompleted)
}

func TestBatchOverFileStore(t *testing.T) {
	dir := t.TempDir()
	st, err := store.NewFileStore(filepath.Join(dir, "raw"))
	require.NoError(t, err)

	cfg := testConfig()
	gw := gateway.New(scriptedClient{}, gateway.Config{MaxAttempts: 1, InitialDelay: time.Millisecond})

	runner := &batch.Runner{
		Pipeline:   pipeline.New(cfg, st, gw),
		Checkpoint: store.NewCheckpointFile(filepath.Join(dir, "results", "progress.json")),
		ResultsDir: filepath.Join(dir, "results"),
		Skip:       pipeline.NewSkipSet(),
	}

	problems := []model.Problem{
		{ID: "math_001", Text: "What is 6*7?"},
		{ID: "math_002", Text: "What is 6*8?"},
	}
	runs, summary, err := runner.RunAll(context.Background(), problems, batch.Options{})

	require.NoError(t, err)
	assert.Len(t, runs, 2)
	assert.Equal(t, 2, summary.Successful)
	assert.FileExists(t, filepath.Join(dir, "results", "math_001_final_result.json"))
	assert.FileExists(t, filepath.Join(dir, "results", "summary.json"))

	cp, ok, err := runner.Checkpoint.Load()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"math_001", "math_002"}, cp.ProcessedProblemIDs)
}

// TestLiveSingleProblem runs one problem against a real provider. Set
// LLM_PROVIDER and the matching API key to enable it.
func TestLiveSingleProblem(t *testing.T) {
	_ = godotenv.Load("../../.env")

	provider := os.Getenv("LLM_PROVIDER")
	if provider == "" {
		t.Skip("Skipping live test: LLM_PROVIDER not set")
	}

	cfg := config.Default()
	cfg.ApplyEnv()

	client, err := llm.NewClient(context.Background(), cfg.LLM)
	require.NoError(t, err)

	st, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)

	gw := gateway.New(client, gateway.Config{MaxAttempts: cfg.Retry.MaxAttempts})
	pipe := pipeline.New(cfg, st, gw)

	run := pipe.Run(context.Background(), model.Problem{
		ID:       "live_001",
		Category: "math",
		Text:     "What is the sum of the first 10 positive integers?",
	}, pipeline.NewSkipSet())

	require.True(t, run.Success, "errors: %v", run.Errors)
	assert.NotEmpty(t, run.Winner)
	assert.NotEmpty(t, run.WinningAnswer)
}
