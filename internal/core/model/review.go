package model

// Answer correctness verdicts a reviewer can give.
const (
	CorrectnessCorrect   = "correct"
	CorrectnessIncorrect = "incorrect"
	CorrectnessUncertain = "uncertain"
)

// Review is one solver's critique of another solver's solution. A solver
// never reviews itself, so stage 2 yields exactly six reviews.
type Review struct {
	ReviewerID        string   `json:"reviewer_id"`
	ReviewerModel     string   `json:"reviewer_model"`
	TargetSolverID    string   `json:"target_solver_id"`
	TargetModel       string   `json:"target_model"`
	Strengths         []string `json:"strengths"`
	Weaknesses        []string `json:"weaknesses"`
	Errors            []string `json:"errors"`
	Suggestions       []string `json:"suggestions"`
	OverallAssessment string   `json:"overall_assessment"`
	AnswerCorrectness string   `json:"answer_correctness"`
	Confidence        float64  `json:"confidence"`
}

// ReviewSet is the stage 2 artifact: all six peer reviews for a problem.
type ReviewSet struct {
	ProblemID string   `json:"problem_id"`
	Reviews   []Review `json:"reviews"`
}

// For returns the reviews written about the given solver.
func (rs ReviewSet) For(solverID string) []Review {
	var out []Review
	for _, r := range rs.Reviews {
		if r.TargetSolverID == solverID {
			out = append(out, r)
		}
	}
	return out
}
