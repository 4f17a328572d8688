package dto

// SubmitAnswerRequest is the body of POST /submit-answer. The session id is a
// string because session identifiers are store-generated UUIDs; UserAnswer is
// a pointer so that a missing field is distinguishable from an answer of zero.
type SubmitAnswerRequest struct {
	SessionID  string   `json:"sessionId" binding:"required"`
	UserAnswer *float64 `json:"userAnswer" binding:"required"`
}
