package model

// SolverEvaluation is the judge's scoring of one solver's original and
// refined solutions.
type SolverEvaluation struct {
	OriginalScore    float64 `json:"original_score"`
	RefinedScore     float64 `json:"refined_score"`
	ReasoningQuality string  `json:"reasoning_quality"`
	LikelyCorrect    bool    `json:"likely_correct"`
}

// Judgment is the stage 4 artifact: the judge's winner selection over all
// solutions, reviews and refinements. Exactly one per problem.
type Judgment struct {
	ProblemID          string                      `json:"problem_id"`
	JudgeModel         string                      `json:"judge_model"`
	Winner             string                      `json:"winner"`
	WinningAnswer      string                      `json:"winning_answer"`
	Evaluation         map[string]SolverEvaluation `json:"evaluation"`
	SelectionReasoning string                      `json:"selection_reasoning"`
	ConsensusAnalysis  string                      `json:"consensus_analysis"`
	Confidence         float64                     `json:"confidence"`
}
