package judge

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/agenthands/tribunal/internal/core/model"
	"github.com/agenthands/tribunal/internal/gateway"
	"github.com/agenthands/tribunal/internal/llm"
)

const judgeSystem = "You are an expert judge evaluating problem solutions. Be thorough, objective, and decisive. Consider all evidence including peer reviews and refinements. Respond in JSON format."

// Judge runs stage 4: one call by the assigned judge over all originals,
// reviews and refinements, selecting the winner.
type Judge struct {
	Gateway     *gateway.Gateway
	Temperature float64
	Prompt      string
}

func NewJudge(gw *gateway.Gateway, temperature float64, prompt string) *Judge {
	return &Judge{
		Gateway:     gw,
		Temperature: temperature,
		Prompt:      prompt,
	}
}

type judgmentResponse struct {
	Winner             string                            `json:"winner"`
	WinningAnswer      string                            `json:"winning_answer"`
	Evaluation         map[string]model.SolverEvaluation `json:"evaluation"`
	SelectionReasoning string                            `json:"selection_reasoning"`
	ConsensusAnalysis  string                            `json:"consensus_analysis"`
	Confidence         float64                           `json:"confidence"`
}

func (j *Judge) Run(ctx context.Context, problem model.Problem, assignments model.RoleAssignments,
	solutions model.SolutionSet, reviews model.ReviewSet, refined model.RefinedSet) (model.Judgment, error) {

	judgeInfo := assignments.Judge
	if judgeInfo.ModelName == "" {
		return model.Judgment{}, fmt.Errorf("missing judge in role assignments")
	}

	log.Printf("[%s] Judge (%s) evaluating all solutions", problem.ID, judgeInfo.ModelName)

	prompt := fmt.Sprintf(j.Prompt, problem.Text, formatDossier(solutions, reviews, refined))
	req := llm.Request{
		Model:       judgeInfo.ModelName,
		System:      judgeSystem,
		Prompt:      prompt,
		Temperature: j.Temperature,
	}
	parsed, err := gateway.InvokeAs[judgmentResponse](ctx, j.Gateway, req)
	if err != nil {
		return model.Judgment{}, fmt.Errorf("judgment from %s: %w", judgeInfo.ModelName, err)
	}

	if !validWinner(parsed.Winner) {
		return model.Judgment{}, fmt.Errorf("judge selected unknown winner %q", parsed.Winner)
	}

	return model.Judgment{
		ProblemID:          problem.ID,
		JudgeModel:         judgeInfo.ModelName,
		Winner:             parsed.Winner,
		WinningAnswer:      parsed.WinningAnswer,
		Evaluation:         parsed.Evaluation,
		SelectionReasoning: parsed.SelectionReasoning,
		ConsensusAnalysis:  parsed.ConsensusAnalysis,
		Confidence:         parsed.Confidence,
	}, nil
}

func validWinner(winner string) bool {
	for _, id := range model.SolverIDs {
		if winner == id {
			return true
		}
	}
	return false
}

// formatDossier lays out every solver's original solution, refinement and
// incoming reviews for the judge prompt.
func formatDossier(solutions model.SolutionSet, reviews model.ReviewSet, refined model.RefinedSet) string {
	var b strings.Builder

	for _, solverID := range model.SolverIDs {
		original := solutions.Solutions[solverID]
		ref := refined.Refined[solverID]

		fmt.Fprintf(&b, "\n\n=== %s ===\n", strings.ToUpper(solverID))
		fmt.Fprintf(&b, "Original Solution:\n")
		fmt.Fprintf(&b, "Reasoning: %s\n", strings.Join(original.ReasoningSteps, "\n"))
		fmt.Fprintf(&b, "Answer: %s\n", original.FinalAnswer)
		fmt.Fprintf(&b, "Confidence: %.2f\n", original.Confidence)

		fmt.Fprintf(&b, "\nRefined Solution:\n")
		fmt.Fprintf(&b, "Reasoning: %s\n", strings.Join(ref.ReasoningSteps, "\n"))
		fmt.Fprintf(&b, "Answer: %s\n", ref.FinalAnswer)
		fmt.Fprintf(&b, "Confidence: %.2f\n", ref.Confidence)
		fmt.Fprintf(&b, "Changed: %t\n", ref.ChangedFromOriginal)
		fmt.Fprintf(&b, "Improvement: %s\n", ref.ImprovementExplanation)

		fmt.Fprintf(&b, "\nPeer Reviews:\n")
		for _, rv := range reviews.For(solverID) {
			assessment := rv.OverallAssessment
			if len(assessment) > 100 {
				assessment = assessment[:100] + "..."
			}
			fmt.Fprintf(&b, "  %s: %s\n", rv.ReviewerID, assessment)
			fmt.Fprintf(&b, "    Correctness: %s\n", rv.AnswerCorrectness)
		}
	}
	return b.String()
}
