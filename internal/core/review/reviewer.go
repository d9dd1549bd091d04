package review

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/agenthands/tribunal/internal/core/model"
	"github.com/agenthands/tribunal/internal/gateway"
	"github.com/agenthands/tribunal/internal/llm"
)

const reviewerSystem = "You are an expert problem solver providing constructive peer reviews. Be thorough, fair, and specific in your feedback. Respond in JSON format."

// Reviewer runs stage 2: each solver reviews the other two solutions, never
// its own, yielding exactly six reviews. A single failed call fails the
// stage.
type Reviewer struct {
	Gateway     *gateway.Gateway
	Temperature float64
	Prompt      string
	Parallel    int
}

func NewReviewer(gw *gateway.Gateway, temperature float64, prompt string, parallel int) *Reviewer {
	if parallel <= 0 {
		parallel = 3
	}
	return &Reviewer{
		Gateway:     gw,
		Temperature: temperature,
		Prompt:      prompt,
		Parallel:    parallel,
	}
}

type reviewResponse struct {
	Strengths         []string `json:"strengths"`
	Weaknesses        []string `json:"weaknesses"`
	Errors            []string `json:"errors"`
	Suggestions       []string `json:"suggestions"`
	OverallAssessment string   `json:"overall_assessment"`
	AnswerCorrectness string   `json:"answer_correctness"`
	Confidence        float64  `json:"confidence"`
}

func (r *Reviewer) Run(ctx context.Context, problem model.Problem, solutions model.SolutionSet) (model.ReviewSet, error) {
	type pair struct {
		reviewer string
		target   string
	}
	var pairs []pair
	for _, reviewerID := range model.SolverIDs {
		if _, ok := solutions.Solutions[reviewerID]; !ok {
			return model.ReviewSet{}, fmt.Errorf("missing %s in solutions", reviewerID)
		}
		for _, targetID := range model.SolverIDs {
			if targetID != reviewerID {
				pairs = append(pairs, pair{reviewer: reviewerID, target: targetID})
			}
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.Parallel)

	var mu sync.Mutex
	reviews := make([]model.Review, len(pairs))

	for i, p := range pairs {
		i, p := i, p
		reviewerSol := solutions.Solutions[p.reviewer]
		targetSol := solutions.Solutions[p.target]

		g.Go(func() error {
			log.Printf("[%s] %s reviewing %s's solution", problem.ID, p.reviewer, p.target)

			prompt := fmt.Sprintf(r.Prompt, problem.Text, formatSolution(reviewerSol), p.target, formatSolution(targetSol))
			req := llm.Request{
				Model:       reviewerSol.ModelName,
				System:      reviewerSystem,
				Prompt:      prompt,
				Temperature: r.Temperature,
			}
			parsed, err := gateway.InvokeAs[reviewResponse](ctx, r.Gateway, req)
			if err != nil {
				return fmt.Errorf("review of %s by %s: %w", p.target, p.reviewer, err)
			}

			correctness := parsed.AnswerCorrectness
			if correctness == "" {
				correctness = model.CorrectnessUncertain
			}

			mu.Lock()
			reviews[i] = model.Review{
				ReviewerID:        p.reviewer,
				ReviewerModel:     reviewerSol.ModelName,
				TargetSolverID:    p.target,
				TargetModel:       targetSol.ModelName,
				Strengths:         parsed.Strengths,
				Weaknesses:        parsed.Weaknesses,
				Errors:            parsed.Errors,
				Suggestions:       parsed.Suggestions,
				OverallAssessment: parsed.OverallAssessment,
				AnswerCorrectness: correctness,
				Confidence:        parsed.Confidence,
			}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return model.ReviewSet{}, err
	}
	return model.ReviewSet{ProblemID: problem.ID, Reviews: reviews}, nil
}

func formatSolution(s model.Solution) string {
	return fmt.Sprintf("Reasoning Steps:\n%s\nFinal Answer: %s\nApproach: %s",
		strings.Join(s.ReasoningSteps, "\n"), s.FinalAnswer, s.Approach)
}
