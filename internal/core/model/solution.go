package model

// Solution is one solver's independent answer to a problem, immutable once
// produced in stage 1.
type Solution struct {
	SolverID       string   `json:"solver_id"`
	ModelID        string   `json:"model_id"`
	ModelName      string   `json:"model_name"`
	ReasoningSteps []string `json:"reasoning_steps"`
	FinalAnswer    string   `json:"final_answer"`
	Confidence     float64  `json:"confidence"`
	Approach       string   `json:"approach"`
}

// SolutionSet is the stage 1 artifact: one solution per solver slot.
type SolutionSet struct {
	ProblemID string              `json:"problem_id"`
	Solutions map[string]Solution `json:"solutions"`
}

// RefinedSolution is a solver's stage 3 revision of its own solution after
// considering the two reviews written about it.
type RefinedSolution struct {
	SolverID               string   `json:"solver_id"`
	ModelName              string   `json:"model_name"`
	CritiquesAccepted      []string `json:"critiques_accepted"`
	CritiquesRejected      []string `json:"critiques_rejected"`
	RefinementReasoning    string   `json:"refinement_reasoning"`
	ReasoningSteps         []string `json:"reasoning_steps"`
	FinalAnswer            string   `json:"final_answer"`
	Confidence             float64  `json:"confidence"`
	ChangedFromOriginal    bool     `json:"changed_from_original"`
	ImprovementExplanation string   `json:"improvement_explanation"`
}

// RefinedSet is the stage 3 artifact.
type RefinedSet struct {
	ProblemID string                     `json:"problem_id"`
	Refined   map[string]RefinedSolution `json:"refined_solutions"`
}
