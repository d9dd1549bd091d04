package model

import "fmt"

// Stage indexes the five ordered pipeline steps. A stage may only consume
// outputs of strictly earlier stages.
type Stage int

const (
	StageRoles Stage = iota
	StageSolutions
	StageReviews
	StageRefined
	StageJudgment
)

// Label is the artifact name component used in persisted file names,
// e.g. "math_001_stage1_solutions.json".
func (s Stage) Label() string {
	switch s {
	case StageRoles:
		return "roles"
	case StageSolutions:
		return "solutions"
	case StageReviews:
		return "reviews"
	case StageRefined:
		return "refined"
	case StageJudgment:
		return "judgment"
	}
	return fmt.Sprintf("stage%d", int(s))
}

func (s Stage) String() string {
	switch s {
	case StageRoles:
		return "Role Assignment"
	case StageSolutions:
		return "Solution Generation"
	case StageReviews:
		return "Peer Review"
	case StageRefined:
		return "Solution Refinement"
	case StageJudgment:
		return "Final Judgment"
	}
	return fmt.Sprintf("Stage %d", int(s))
}

// Stages lists all pipeline stages in execution order.
var Stages = []Stage{StageRoles, StageSolutions, StageReviews, StageRefined, StageJudgment}

// SolverIDs are the three solver slot identifiers.
var SolverIDs = []string{"solver_1", "solver_2", "solver_3"}
