package assessment

// VerbHint nudges the phrasing collaborator toward "eat" or "drink" wording.
type VerbHint string

const (
	VerbEat   VerbHint = "eat"
	VerbDrink VerbHint = "drink"
)

// Question is a single catalog entry, immutable after Seed().
type Question struct {
	Key      string   `json:"key"`
	Label    string   `json:"label,omitempty"`
	Prompt   string   `json:"prompt"`
	Examples string   `json:"examples,omitempty"`
	Resource string   `json:"resource,omitempty"`
	Verb     VerbHint `json:"verb,omitempty"`
}

// DisplayLabel is the human-readable name used in summaries.
func (q Question) DisplayLabel() string {
	if q.Label != "" {
		return q.Label
	}
	return q.Key
}

// Stage names a phase of catalog traversal.
type Stage string

const (
	StageInitial  Stage = "initial"
	StageBranch   Stage = "branch"
	StageUnbranch Stage = "unbranch"
	StageDone     Stage = "done"
)

// BranchTable maps a normalized trigger answer (e.g. an insurance provider
// name) to the extra questions spliced in after the initial stage.
type BranchTable map[string][]Question

// Catalog is the ordered, possibly branching question list for one
// assessment. Catalogs are shared across sessions and never mutated; branch
// resolution happens per session against the table.
type Catalog struct {
	Initial    []Question
	TriggerKey string
	Branches   BranchTable
	Unbranch   []Question
}

// StageQuestions returns the question list for the given stage. The branch
// stage resolves through the table; an unknown branch id yields nil.
func (c Catalog) StageQuestions(stage Stage, branchID string) []Question {
	switch stage {
	case StageInitial:
		return c.Initial
	case StageBranch:
		return c.Branches[branchID]
	case StageUnbranch:
		return c.Unbranch
	default:
		return nil
	}
}

// ResolveBranch looks up the branch for a trigger answer. Values are matched
// after trimming and lower-casing by the caller; a miss means "no branch".
func (c Catalog) ResolveBranch(trigger string) (string, bool) {
	if len(c.Branches) == 0 {
		return "", false
	}
	if _, ok := c.Branches[trigger]; ok {
		return trigger, true
	}
	return "", false
}

// NextStage returns the stage that follows the given one once its question
// list is exhausted. hasBranch reports whether a branch was spliced in.
func (c Catalog) NextStage(stage Stage, hasBranch bool) Stage {
	switch stage {
	case StageInitial:
		if hasBranch {
			return StageBranch
		}
		return StageUnbranch
	case StageBranch:
		return StageUnbranch
	case StageUnbranch:
		return StageDone
	default:
		return StageDone
	}
}
