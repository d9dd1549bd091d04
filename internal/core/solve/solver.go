package solve

import (
	"context"
	"fmt"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/agenthands/tribunal/internal/core/model"
	"github.com/agenthands/tribunal/internal/gateway"
	"github.com/agenthands/tribunal/internal/llm"
)

const solverSystem = "You are an expert problem solver. Provide detailed step-by-step reasoning and a clear final answer in JSON format."

// Solver runs stage 1: each of the three assigned solvers produces an
// independent solution. The calls run concurrently; one failed call fails
// the whole stage.
type Solver struct {
	Gateway     *gateway.Gateway
	Temperature float64
	Prompt      string
	Parallel    int
}

func NewSolver(gw *gateway.Gateway, temperature float64, prompt string, parallel int) *Solver {
	if parallel <= 0 {
		parallel = len(model.SolverIDs)
	}
	return &Solver{
		Gateway:     gw,
		Temperature: temperature,
		Prompt:      prompt,
		Parallel:    parallel,
	}
}

type solutionResponse struct {
	ReasoningSteps []string `json:"reasoning_steps"`
	FinalAnswer    string   `json:"final_answer"`
	Confidence     float64  `json:"confidence"`
	Approach       string   `json:"approach"`
}

func (s *Solver) Run(ctx context.Context, problem model.Problem, assignments model.RoleAssignments) (model.SolutionSet, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.Parallel)

	var mu sync.Mutex
	solutions := make(map[string]model.Solution, len(model.SolverIDs))

	for _, solverID := range model.SolverIDs {
		solverID := solverID
		info, ok := assignments.Solver(solverID)
		if !ok {
			return model.SolutionSet{}, fmt.Errorf("missing %s in role assignments", solverID)
		}

		g.Go(func() error {
			log.Printf("[%s] Generating solution from %s (%s)", problem.ID, info.ModelName, solverID)

			req := llm.Request{
				Model:       info.ModelName,
				System:      solverSystem,
				Prompt:      fmt.Sprintf(s.Prompt, problem.Text),
				Temperature: s.Temperature,
			}
			parsed, err := gateway.InvokeAs[solutionResponse](ctx, s.Gateway, req)
			if err != nil {
				return fmt.Errorf("solution from %s (%s): %w", info.ModelName, solverID, err)
			}

			mu.Lock()
			solutions[solverID] = model.Solution{
				SolverID:       solverID,
				ModelID:        info.ModelID,
				ModelName:      info.ModelName,
				ReasoningSteps: parsed.ReasoningSteps,
				FinalAnswer:    parsed.FinalAnswer,
				Confidence:     parsed.Confidence,
				Approach:       parsed.Approach,
			}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return model.SolutionSet{}, err
	}
	return model.SolutionSet{ProblemID: problem.ID, Solutions: solutions}, nil
}
