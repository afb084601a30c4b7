package assessment

import "time"

// AnswerRecord is the persisted outcome of a completed session. It is
// created exactly once per finalization and never mutated afterwards.
type AnswerRecord struct {
	OwnerID string            `json:"ownerId"`
	Kind    string            `json:"kind"`
	Answers map[string]Answer `json:"answers"`
	Scores  map[string]any    `json:"scores,omitempty"`
	TakenAt time.Time         `json:"takenAt"`
}
