package model

import "time"

// StageError records a stage-local failure inside a pipeline run.
type StageError struct {
	Stage   Stage  `json:"stage"`
	Message string `json:"message"`
}

// PipelineRun is the per-problem execution record. The runner appends to
// StagesCompleted and Errors as stages finish or fail, and finalizes the
// timestamps and success flag at the end.
type PipelineRun struct {
	RunID           string       `json:"run_id"`
	ProblemID       string       `json:"problem_id"`
	StagesCompleted []Stage      `json:"stages_completed"`
	Errors          []StageError `json:"errors"`
	StartTime       time.Time    `json:"start_time"`
	EndTime         time.Time    `json:"end_time"`
	Success         bool         `json:"success"`
	Winner          string       `json:"winner,omitempty"`
	WinningAnswer   string       `json:"winning_answer,omitempty"`
}

// Completed reports whether the given stage finished during this run.
func (r PipelineRun) Completed(stage Stage) bool {
	for _, s := range r.StagesCompleted {
		if s == stage {
			return true
		}
	}
	return false
}

// Checkpoint is the resumable batch progress record, rewritten after every
// problem.
type Checkpoint struct {
	ProcessedProblemIDs []string  `json:"processed_problem_ids"`
	LastIndex           int       `json:"last_index"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// FailedProblem pairs a problem id with the stage error messages that sank it.
type FailedProblem struct {
	ProblemID string   `json:"problem_id"`
	Errors    []string `json:"errors"`
}

// Summary is the final batch report.
type Summary struct {
	TotalProblems  int             `json:"total_problems"`
	Processed      int             `json:"processed"`
	Successful     int             `json:"successful"`
	Failed         int             `json:"failed"`
	FailedProblems []FailedProblem `json:"failed_problems,omitempty"`
	Timestamp      time.Time       `json:"timestamp"`
}
