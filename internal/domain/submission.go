package domain

import "strings"

// Submission is one answer attempt. It lives for the duration of a single
// request and is never persisted.
type Submission struct {
	QuestionID string
	Answer     string
	Position   Position
	MemberID   string
}

// Position is the submitting device's reported location.
type Position struct {
	Lat float64
	Lng float64
}

// AnswerRequest is the body of POST /api/checkAnswer.
type AnswerRequest struct {
	QuestionID string  `json:"questionId"`
	Answer     string  `json:"answer"`
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
	MemberID   string  `json:"memberId"`
}

// AnswerResponse is returned on an accepted submission. NextHint carries
// either the next target's hint or the completion message.
type AnswerResponse struct {
	NextHint string `json:"nextHint"`
}

// TargetRequest is the body of POST /api/getTarget, polled at short
// intervals by moving clients.
type TargetRequest struct {
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	MemberID string  `json:"memberId"`
}

// TargetResponse lists the questions within range of the caller.
type TargetResponse struct {
	Questions []Target `json:"questions"`
}

// AnswersMatch compares a submitted answer against the stored one:
// surrounding whitespace is ignored and the comparison is case-folded.
// Exact equality beyond that; no partial credit or fuzzy matching.
func AnswersMatch(submitted, stored string) bool {
	return strings.EqualFold(strings.TrimSpace(submitted), strings.TrimSpace(stored))
}
