package roles

import (
	"fmt"
	"sort"

	"github.com/agenthands/tribunal/internal/core/model"
)

// preferenceBonus is added to a role's confidence score when that role is
// the model's first preference.
const preferenceBonus = 0.1

type scored struct {
	idx   int
	score float64
}

// Assign deterministically maps four self-assessments onto the four role
// slots. The top three solver scores take the solver slots in rank order;
// the top judge score takes the judge slot, falling to the next-highest
// non-solver candidate when the top judge is already a solver. Ties break
// by input order (stable sort), so identical inputs always yield identical
// assignments.
func Assign(assessments []model.SelfAssessment) (model.RoleAssignments, error) {
	if len(assessments) != 4 {
		return model.RoleAssignments{}, fmt.Errorf("role assignment needs exactly 4 self-assessments, got %d", len(assessments))
	}

	solverScores := make([]scored, 0, 4)
	judgeScores := make([]scored, 0, 4)

	for i, a := range assessments {
		solverScore := a.ConfidenceByRole[model.RoleSolver]
		judgeScore := a.ConfidenceByRole[model.RoleJudge]

		switch a.PreferredRole() {
		case model.RoleSolver:
			solverScore += preferenceBonus
		case model.RoleJudge:
			judgeScore += preferenceBonus
		}

		solverScores = append(solverScores, scored{idx: i, score: solverScore})
		judgeScores = append(judgeScores, scored{idx: i, score: judgeScore})
	}

	sort.SliceStable(solverScores, func(i, j int) bool {
		return solverScores[i].score > solverScores[j].score
	})
	sort.SliceStable(judgeScores, func(i, j int) bool {
		return judgeScores[i].score > judgeScores[j].score
	})

	solverIdx := []int{solverScores[0].idx, solverScores[1].idx, solverScores[2].idx}

	judgeIdx := judgeScores[0].idx
	if containsInt(solverIdx, judgeIdx) {
		// Exactly one model is outside the solver set, so a non-solver
		// candidate always exists further down the judge ranking.
		for _, s := range judgeScores[1:] {
			if !containsInt(solverIdx, s.idx) {
				judgeIdx = s.idx
				break
			}
		}
	}

	final := model.RoleAssignments{
		Solver1: assessments[solverIdx[0]],
		Solver2: assessments[solverIdx[1]],
		Solver3: assessments[solverIdx[2]],
		Judge:   assessments[judgeIdx],
	}
	if containsInt(solverIdx, judgeIdx) {
		return model.RoleAssignments{}, fmt.Errorf("judge slot collides with a solver slot (index %d)", judgeIdx)
	}
	return final, nil
}

func containsInt(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
