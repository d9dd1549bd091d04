package model

// Problem is one entry from the problem dataset. It is loaded once and never
// mutated by the pipeline.
type Problem struct {
	ID            string                 `json:"id"`
	Category      string                 `json:"category"`
	Text          string                 `json:"problem_text"`
	CorrectAnswer string                 `json:"correct_answer,omitempty"`
	AnswerType    string                 `json:"answer_type,omitempty"`
	Metadata      map[string]interface{} `json:"metadata,omitempty"`
}
