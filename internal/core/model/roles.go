package model

// Role names a model can assess itself for.
const (
	RoleSolver = "Solver"
	RoleJudge  = "Judge"
)

// SelfAssessment is one model's reported role preference and confidence,
// collected during stage 0.
type SelfAssessment struct {
	ModelID          string             `json:"model_id"`
	ModelName        string             `json:"model_name"`
	RolePreferences  []string           `json:"role_preferences"`
	ConfidenceByRole map[string]float64 `json:"confidence_by_role"`
	Reasoning        string             `json:"reasoning"`
}

// PreferredRole returns the model's first preference, or "" if none reported.
func (a SelfAssessment) PreferredRole() string {
	if len(a.RolePreferences) == 0 {
		return ""
	}
	return a.RolePreferences[0]
}

// RoleAssignments maps the four role slots onto four self-assessments.
// The slots are a bijection: every model appears exactly once, and the judge
// is never one of the solvers.
type RoleAssignments struct {
	Solver1 SelfAssessment `json:"solver_1"`
	Solver2 SelfAssessment `json:"solver_2"`
	Solver3 SelfAssessment `json:"solver_3"`
	Judge   SelfAssessment `json:"judge"`
}

// Solver returns the assessment assigned to the given solver slot.
func (r RoleAssignments) Solver(solverID string) (SelfAssessment, bool) {
	switch solverID {
	case "solver_1":
		return r.Solver1, true
	case "solver_2":
		return r.Solver2, true
	case "solver_3":
		return r.Solver3, true
	}
	return SelfAssessment{}, false
}

// RoleAssignment is the stage 0 artifact: the raw self-assessments plus the
// final slot assignments derived from them.
type RoleAssignment struct {
	ProblemID       string           `json:"problem_id"`
	SelfAssessments []SelfAssessment `json:"self_assessments"`
	Final           RoleAssignments  `json:"final_assignments"`
}
