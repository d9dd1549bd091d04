package pipeline

import (
	"github.com/agenthands/tribunal/internal/config"
	"github.com/agenthands/tribunal/internal/core/judge"
	"github.com/agenthands/tribunal/internal/core/refine"
	"github.com/agenthands/tribunal/internal/core/review"
	"github.com/agenthands/tribunal/internal/core/roles"
	"github.com/agenthands/tribunal/internal/core/solve"
	"github.com/agenthands/tribunal/internal/gateway"
	"github.com/agenthands/tribunal/internal/store"
)

// New assembles the five stage executors from config around a shared
// gateway and store.
func New(cfg *config.Config, st store.Store, gw *gateway.Gateway) *Pipeline {
	return &Pipeline{
		Store:    st,
		Assigner: roles.NewAssigner(gw, cfg.Models.Ordered(), cfg.Temperatures.Solver, cfg.Prompts.RoleAssessment),
		Solver:   solve.NewSolver(gw, cfg.Temperatures.Solver, cfg.Prompts.Solver, cfg.Concurrency.StageCalls),
		Reviewer: review.NewReviewer(gw, cfg.Temperatures.Reviewer, cfg.Prompts.Reviewer, cfg.Concurrency.StageCalls),
		Refiner:  refine.NewRefiner(gw, cfg.Temperatures.Solver, cfg.Prompts.Refiner, cfg.Concurrency.StageCalls),
		Judge:    judge.NewJudge(gw, cfg.Temperatures.Judge, cfg.Prompts.Judge),
	}
}
