package review

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/tribunal/internal/core/model"
	"github.com/agenthands/tribunal/internal/gateway"
	"github.com/agenthands/tribunal/internal/llm"
)

type fixedClient struct {
	mu       sync.Mutex
	response string
	requests []llm.Request
}

func (c *fixedClient) Complete(_ context.Context, req llm.Request) (string, error) {
	c.mu.Lock()
	c.requests = append(c.requests, req)
	c.mu.Unlock()
	return c.response, nil
}

func solutionSet() model.SolutionSet {
	return model.SolutionSet{ProblemID: "p001", Solutions: map[string]model.Solution{
		"solver_1": {SolverID: "solver_1", ModelName: "model-a", FinalAnswer: "42"},
		"solver_2": {SolverID: "solver_2", ModelName: "model-b", FinalAnswer: "41"},
		"solver_3": {SolverID: "solver_3", ModelName: "model-c", FinalAnswer: "42"},
	}}
}

func TestReviewerProducesSixReviews(t *testing.T) {
	client := &fixedClient{response: `{"strengths": ["clear"], "weaknesses": ["terse"], "overall_assessment": "fine", "answer_correctness": "correct", "confidence": 0.8}`}
	gw := gateway.New(client, gateway.Config{MaxAttempts: 1, InitialDelay: time.Millisecond})
	r := NewReviewer(gw, 0.5, "Problem: %s\nYour solution: %s\nReview %s:\n%s", 3)

	reviews, err := r.Run(context.Background(), model.Problem{ID: "p001", Text: "?"}, solutionSet())

	require.NoError(t, err)
	require.Len(t, reviews.Reviews, 6)

	// Each solver reviews the other two, never itself.
	counts := map[string]int{}
	for _, rv := range reviews.Reviews {
		assert.NotEqual(t, rv.ReviewerID, rv.TargetSolverID)
		counts[rv.ReviewerID]++
		assert.Equal(t, model.CorrectnessCorrect, rv.AnswerCorrectness)
	}
	for _, id := range model.SolverIDs {
		assert.Equal(t, 2, counts[id])
	}
}

func TestReviewerDefaultsCorrectnessToUncertain(t *testing.T) {
	client := &fixedClient{response: `{"overall_assessment": "hard to say", "confidence": 0.4}`}
	gw := gateway.New(client, gateway.Config{MaxAttempts: 1, InitialDelay: time.Millisecond})
	r := NewReviewer(gw, 0.5, "Problem: %s\nYour solution: %s\nReview %s:\n%s", 3)

	reviews, err := r.Run(context.Background(), model.Problem{ID: "p001", Text: "?"}, solutionSet())

	require.NoError(t, err)
	for _, rv := range reviews.Reviews {
		assert.Equal(t, model.CorrectnessUncertain, rv.AnswerCorrectness)
	}
}

func TestReviewerRequiresAllSolutions(t *testing.T) {
	client := &fixedClient{response: "{}"}
	gw := gateway.New(client, gateway.Config{MaxAttempts: 1, InitialDelay: time.Millisecond})
	r := NewReviewer(gw, 0.5, "%s%s%s%s", 3)

	solutions := solutionSet()
	delete(solutions.Solutions, "solver_3")

	_, err := r.Run(context.Background(), model.Problem{ID: "p001"}, solutions)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "solver_3")
}
