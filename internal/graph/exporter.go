package graph

import (
	"context"
	"fmt"

	"github.com/agenthands/tribunal/internal/core/model"
	"github.com/agenthands/tribunal/internal/store"
)

// Exporter mirrors completed pipeline runs into the graph database: models,
// problems, and who solved, reviewed and judged what. It reads the stage
// artifacts back from the store so it only depends on persisted state.
type Exporter struct {
	Driver Driver
	Store  store.Store
}

func NewExporter(driver Driver, st store.Store) *Exporter {
	return &Exporter{Driver: driver, Store: st}
}

func (e *Exporter) ExportRun(ctx context.Context, run model.PipelineRun) error {
	var assignment model.RoleAssignment
	if err := e.Store.Load(run.ProblemID, model.StageRoles, &assignment); err != nil {
		return fmt.Errorf("failed to load roles for export: %w", err)
	}
	var solutions model.SolutionSet
	if err := e.Store.Load(run.ProblemID, model.StageSolutions, &solutions); err != nil {
		return fmt.Errorf("failed to load solutions for export: %w", err)
	}
	var reviews model.ReviewSet
	if err := e.Store.Load(run.ProblemID, model.StageReviews, &reviews); err != nil {
		return fmt.Errorf("failed to load reviews for export: %w", err)
	}
	var refined model.RefinedSet
	if err := e.Store.Load(run.ProblemID, model.StageRefined, &refined); err != nil {
		return fmt.Errorf("failed to load refinements for export: %w", err)
	}
	var judgment model.Judgment
	if err := e.Store.Load(run.ProblemID, model.StageJudgment, &judgment); err != nil {
		return fmt.Errorf("failed to load judgment for export: %w", err)
	}

	if _, err := e.Driver.ExecuteQuery(ctx, SaveProblemQuery, map[string]interface{}{
		"id":             run.ProblemID,
		"category":       "",
		"winner":         run.Winner,
		"winning_answer": run.WinningAnswer,
		"success":        run.Success,
		"run_id":         run.RunID,
	}); err != nil {
		return err
	}

	models := map[string]bool{}
	for _, a := range assignment.SelfAssessments {
		models[a.ModelName] = true
	}
	for name := range models {
		if _, err := e.Driver.ExecuteQuery(ctx, SaveModelQuery, map[string]interface{}{"name": name}); err != nil {
			return err
		}
	}

	for _, solverID := range model.SolverIDs {
		sol := solutions.Solutions[solverID]
		ref := refined.Refined[solverID]
		if _, err := e.Driver.ExecuteQuery(ctx, SaveSolvedEdgeQuery, map[string]interface{}{
			"model":          sol.ModelName,
			"problem_id":     run.ProblemID,
			"solver_id":      solverID,
			"answer":         sol.FinalAnswer,
			"refined_answer": ref.FinalAnswer,
			"confidence":     sol.Confidence,
			"changed":        ref.ChangedFromOriginal,
		}); err != nil {
			return err
		}
	}

	for _, rv := range reviews.Reviews {
		if _, err := e.Driver.ExecuteQuery(ctx, SaveReviewedEdgeQuery, map[string]interface{}{
			"reviewer":    rv.ReviewerModel,
			"target":      rv.TargetModel,
			"problem_id":  run.ProblemID,
			"reviewer_id": rv.ReviewerID,
			"target_id":   rv.TargetSolverID,
			"verdict":     rv.AnswerCorrectness,
			"confidence":  rv.Confidence,
		}); err != nil {
			return err
		}
	}

	if _, err := e.Driver.ExecuteQuery(ctx, SaveJudgedEdgeQuery, map[string]interface{}{
		"model":      judgment.JudgeModel,
		"problem_id": run.ProblemID,
		"winner":     judgment.Winner,
		"confidence": judgment.Confidence,
	}); err != nil {
		return err
	}

	return nil
}
