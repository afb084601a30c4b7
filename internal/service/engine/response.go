package engine

import "github.com/wellchemy/wellchemy/backend/internal/scoring"

// Short status tags carried in the outbound envelope. Success is false only
// for malformed input or a collaborator failure, never for "survey still in
// progress".
const (
	MsgNextQuestion        = "Next question"
	MsgClarification       = "Clarification"
	MsgAssessmentComplete  = "Assessment complete"
	MsgEligibilityComplete = "Eligibility assessment complete"
	MsgError               = "Error"
	MsgNoActiveSession     = "No active session."
)

// Response is the envelope returned for every inbound message. The caller
// always receives one of these, never a raw error.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    *Data  `json:"data,omitempty"`
}

// Data carries the human-readable text plus optional structured fields.
type Data struct {
	Response  string               `json:"response,omitempty"`
	SessionID string               `json:"sessionId,omitempty"`
	Scores    *scoring.ScoreResult `json:"scores,omitempty"`
	RecordID  int64                `json:"recordId,omitempty"`
	Error     string               `json:"error,omitempty"`
}
