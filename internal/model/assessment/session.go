package assessment

import "time"

// Answer unifies raw-text and normalized-score answers so scoring has one
// contract regardless of which question flow produced the value.
type Answer struct {
	Raw   string  `json:"raw"`
	Score float64 `json:"score"`
}

// SessionState is the mutable progress record for one in-flight assessment.
// Position always indexes the active stage's question list, except at the
// transition instant where it equals the list length.
type SessionState struct {
	SessionID    string            `json:"sessionId"`
	DefinitionID string            `json:"definitionId"`
	Stage        Stage             `json:"stage"`
	Position     int               `json:"position"`
	Answers      map[string]Answer `json:"answers"`
	BranchID     string            `json:"branchId,omitempty"`
	BranchAdded  bool              `json:"branchAdded"`
	CreatedAt    time.Time         `json:"createdAt"`
}

// NewSessionState starts a fresh traversal at the top of the initial stage.
func NewSessionState(sessionID, definitionID string) SessionState {
	return SessionState{
		SessionID:    sessionID,
		DefinitionID: definitionID,
		Stage:        StageInitial,
		Position:     0,
		Answers:      make(map[string]Answer),
		CreatedAt:    time.Now().UTC(),
	}
}
