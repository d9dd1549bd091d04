package refine

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

const refinerSystem = "You are an expert problem solver who can thoughtfully incorporate peer feedback. Be critical but fair in evaluating critiques. Respond in JSON format."

// Refiner runs stage 3: each solver revises its own solution in light of
// the two reviews written about it.
type Refiner struct {
	Gateway     *gateway.Gateway
	Temperature float64
	Prompt      string
	Parallel    int
}

func NewRefiner(gw *gateway.Gateway, temperature float64, prompt string, parallel int) *Refiner {
	if parallel <= 0 {
		parallel = len(model.SolverIDs)
	}
	return &Refiner{
		Gateway:     gw,
		Temperature: temperature,
		Prompt:      prompt,
		Parallel:    parallel,
	}
}

type refinedResponse struct {
	CritiquesAccepted      []string `json:"critiques_accepted"`
	CritiquesRejected      []string `json:"critiques_rejected"`
	RefinementReasoning    string   `json:"refinement_reasoning"`
	ReasoningSteps         []string `json:"reasoning_steps"`
	FinalAnswer            string   `json:"final_answer"`
	Confidence             float64  `json:"confidence"`
	ChangedFromOriginal    bool     `json:"changed_from_original"`
	ImprovementExplanation string   `json:"improvement_explanation"`
}

func (r *Refiner) Run(ctx context.Context, problem model.Problem, solutions model.SolutionSet, reviews model.ReviewSet) (model.RefinedSet, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.Parallel)

	var mu sync.Mutex
	refined := make(map[string]model.RefinedSolution, len(model.SolverIDs))

	for _, solverID := range model.SolverIDs {
		solverID := solverID
		original, ok := solutions.Solutions[solverID]
		if !ok {
			return model.RefinedSet{}, fmt.Errorf("missing %s in solutions", solverID)
		}
		ownReviews := reviews.For(solverID)
		if len(ownReviews) == 0 {
			return model.RefinedSet{}, fmt.Errorf("no reviews found for %s", solverID)
		}

		g.Go(func() error {
			log.Printf("[%s] Refining solution from %s (%s)", problem.ID, original.ModelName, solverID)

			prompt := fmt.Sprintf(r.Prompt, problem.Text, formatSolution(original), formatReviews(ownReviews))
			req := llm.Request{
				Model:       original.ModelName,
				System:      refinerSystem,
				Prompt:      prompt,
				Temperature: r.Temperature,
			}
			parsed, err := gateway.InvokeAs[refinedResponse](ctx, r.Gateway, req)
			if err != nil {
				return fmt.Errorf("refinement from %s (%s): %w", original.ModelName, solverID, err)
			}

			mu.Lock()
			refined[solverID] = model.RefinedSolution{
				SolverID:               solverID,
				ModelName:              original.ModelName,
				CritiquesAccepted:      parsed.CritiquesAccepted,
				CritiquesRejected:      parsed.CritiquesRejected,
				RefinementReasoning:    parsed.RefinementReasoning,
				ReasoningSteps:         parsed.ReasoningSteps,
				FinalAnswer:            parsed.FinalAnswer,
				Confidence:             parsed.Confidence,
				ChangedFromOriginal:    parsed.ChangedFromOriginal,
				ImprovementExplanation: parsed.ImprovementExplanation,
			}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return model.RefinedSet{}, err
	}
	return model.RefinedSet{ProblemID: problem.ID, Refined: refined}, nil
}

func formatSolution(s model.Solution) string {
	return fmt.Sprintf("Reasoning Steps:\n%s\nFinal Answer: %s\nApproach: %s",
		strings.Join(s.ReasoningSteps, "\n"), s.FinalAnswer, s.Approach)
}

func formatReviews(reviews []model.Review) string {
	var b strings.Builder
	for _, rv := range reviews {
		fmt.Fprintf(&b, "\nReview from %s:\n", rv.ReviewerID)
		fmt.Fprintf(&b, "Strengths: %s\n", strings.Join(rv.Strengths, ", "))
		fmt.Fprintf(&b, "Weaknesses: %s\n", strings.Join(rv.Weaknesses, ", "))
		if len(rv.Errors) > 0 {
			fmt.Fprintf(&b, "Errors: %s\n", strings.Join(rv.Errors, ", "))
		}
		fmt.Fprintf(&b, "Suggestions: %s\n", strings.Join(rv.Suggestions, ", "))
		fmt.Fprintf(&b, "Overall: %s\n", rv.OverallAssessment)
		fmt.Fprintf(&b, "Answer Correctness: %s\n", rv.AnswerCorrectness)
	}
	return b.String()
}
