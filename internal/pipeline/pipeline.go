package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/agenthands/tribunal/internal/core/judge"
	"github.com/agenthands/tribunal/internal/core/model"
	"github.com/agenthands/tribunal/internal/core/refine"
	"github.com/agenthands/tribunal/internal/core/review"
	"github.com/agenthands/tribunal/internal/core/roles"
	"github.com/agenthands/tribunal/internal/core/solve"
	"github.com/agenthands/tribunal/internal/store"
)

// ErrMissingDependency means a skipped stage has no persisted result to
// load. It is a configuration error and fatal for the current problem.
var ErrMissingDependency = errors.New("missing dependency")

// Pipeline drives the five stages in order for one problem, persisting each
// stage's result and halting on the first stage-local failure.
type Pipeline struct {
	Store    store.Store
	Assigner *roles.Assigner
	Solver   *solve.Solver
	Reviewer *review.Reviewer
	Refiner  *refine.Refiner
	Judge    *judge.Judge
}

// Run executes the pipeline for one problem. Ordinary stage failures never
// surface as errors; they are captured in the returned PipelineRun.
func (p *Pipeline) Run(ctx context.Context, problem model.Problem, skip SkipSet) model.PipelineRun {
	run := model.PipelineRun{
		RunID:     uuid.New().String(),
		ProblemID: problem.ID,
		StartTime: time.Now().UTC(),
	}

	log.Printf("Processing problem %s", problem.ID)
	p.runStages(ctx, problem, skip, &run)

	run.EndTime = time.Now().UTC()
	run.Success = len(run.Errors) == 0

	log.Printf("Problem %s complete: stages=%v success=%t", problem.ID, run.StagesCompleted, run.Success)
	return run
}

func (p *Pipeline) runStages(ctx context.Context, problem model.Problem, skip SkipSet, run *model.PipelineRun) {
	fail := func(stage model.Stage, err error) {
		log.Printf("[%s] %s failed: %v", problem.ID, stage, err)
		run.Errors = append(run.Errors, model.StageError{Stage: stage, Message: err.Error()})
	}

	assignment, err := resolveStage(p, run, model.StageRoles, skip, func() (model.RoleAssignment, error) {
		return p.Assigner.Run(ctx, problem)
	})
	if err != nil {
		fail(model.StageRoles, err)
		return
	}

	solutions, err := resolveStage(p, run, model.StageSolutions, skip, func() (model.SolutionSet, error) {
		return p.Solver.Run(ctx, problem, assignment.Final)
	})
	if err != nil {
		fail(model.StageSolutions, err)
		return
	}

	reviews, err := resolveStage(p, run, model.StageReviews, skip, func() (model.ReviewSet, error) {
		return p.Reviewer.Run(ctx, problem, solutions)
	})
	if err != nil {
		fail(model.StageReviews, err)
		return
	}

	refined, err := resolveStage(p, run, model.StageRefined, skip, func() (model.RefinedSet, error) {
		return p.Refiner.Run(ctx, problem, solutions, reviews)
	})
	if err != nil {
		fail(model.StageRefined, err)
		return
	}

	judgment, err := resolveStage(p, run, model.StageJudgment, skip, func() (model.Judgment, error) {
		return p.Judge.Run(ctx, problem, assignment.Final, solutions, reviews, refined)
	})
	if err != nil {
		fail(model.StageJudgment, err)
		return
	}

	run.Winner = judgment.Winner
	run.WinningAnswer = judgment.WinningAnswer
}

// resolveStage implements the dependency contract for one stage: a skipped
// stage must already have a persisted result, and an executed stage
// persists its result before the pipeline advances.
func resolveStage[T any](p *Pipeline, run *model.PipelineRun, stage model.Stage, skip SkipSet, exec func() (T, error)) (T, error) {
	var zero T

	if skip.Contains(stage) {
		var out T
		if err := p.Store.Load(run.ProblemID, stage, &out); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return zero, fmt.Errorf("%w: stage %d (%s) was skipped but has no persisted result", ErrMissingDependency, int(stage), stage.Label())
			}
			return zero, err
		}
		log.Printf("[%s] %s skipped, loaded persisted result", run.ProblemID, stage)
		return out, nil
	}

	out, err := exec()
	if err != nil {
		return zero, err
	}
	if err := p.Store.Save(run.ProblemID, stage, out); err != nil {
		return zero, fmt.Errorf("failed to persist %s result: %w", stage.Label(), err)
	}
	run.StagesCompleted = append(run.StagesCompleted, stage)
	return out, nil
}
