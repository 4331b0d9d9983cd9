package dto

// SummarizeRequest asks the tutor to summarise a text.
type SummarizeRequest struct {
	Text string `json:"text" validate:"required"`
}

// SummarizeResponse carries the summary.
type SummarizeResponse struct {
	Summary string `json:"summary"`
}

// QuestionRequest asks the tutor a question, optionally with study material.
type QuestionRequest struct {
	Question string `json:"question" validate:"required"`
	Context  string `json:"context,omitempty"`
}

// AnswerResponse carries the tutor's answer.
type AnswerResponse struct {
	Answer string `json:"answer"`
}
