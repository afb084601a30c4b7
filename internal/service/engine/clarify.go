package engine

import (
	"fmt"
	"strings"

	"github.com/wellchemy/wellchemy/backend/internal/model/assessment"
)

// clarificationKeywords is the fixed intent table: a message containing any
// of these asks about the current question instead of answering it.
var clarificationKeywords = []string{
	"example", "like what", "what is", "explain", "what's that", "huh", "help",
}

func isClarification(message string) bool {
	if message == "" {
		return false
	}
	lowered := strings.ToLower(message)
	for _, keyword := range clarificationKeywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}

// clarify re-explains the current question without consuming the message as
// an answer. State is untouched, so repeating it is idempotent.
func (e *Engine) clarify(def assessment.Definition, state assessment.SessionState) Response {
	questions := def.Catalog.StageQuestions(state.Stage, state.BranchID)
	if state.Position >= len(questions) {
		return Response{Success: false, Message: MsgNoActiveSession}
	}
	question := questions[state.Position]

	var text string
	switch {
	case question.Resource != "":
		text = "Sure! Here's a helpful resource: " + question.Resource
	case question.Examples != "":
		text = fmt.Sprintf("Sure! Think %s. %s", question.Examples, question.Prompt)
	default:
		text = question.Prompt
	}

	return Response{
		Success: true,
		Message: MsgClarification,
		Data:    &Data{Response: text, SessionID: state.SessionID},
	}
}
