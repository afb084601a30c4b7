package engine

import (
	"fmt"
	"strings"

	"github.com/wellchemy/wellchemy/backend/internal/model/assessment"
	"github.com/wellchemy/wellchemy/backend/internal/scoring"
)

// summary builds the closing human-readable text for a finalized session.
func (e *Engine) summary(def assessment.Definition, state assessment.SessionState, result *scoring.ScoreResult) string {
	if def.Scored && result != nil {
		return dietSummary(*result)
	}
	return intakeSummary(def, state)
}

func dietSummary(result scoring.ScoreResult) string {
	var b strings.Builder
	b.WriteString("Thanks for completing the diet assessment!\n")
	b.WriteString("Here's your estimated diet quality summary:\n\n")
	fmt.Fprintf(&b, "Whole & Plant Food Frequency Score: %.1f%%\n", result.SubScores[scoring.SubWholePlantFood])
	fmt.Fprintf(&b, "Water & Herbal Beverages Score: %.1f%%\n", result.SubScores[scoring.SubWaterHerbal])
	fmt.Fprintf(&b, "Diet Risk Level: %s\n\n", riskLabel(result.RiskTier))
	b.WriteString("Keep up the great work! If you'd like tips on improving your diet, just let me know.")
	return b.String()
}

func riskLabel(tier scoring.RiskTier) string {
	switch tier {
	case scoring.TierLow:
		return "Low Risk"
	case scoring.TierModerate:
		return "Moderate Risk"
	default:
		return "High Risk"
	}
}

func intakeSummary(def assessment.Definition, state assessment.SessionState) string {
	var lines []string
	for _, question := range traversedQuestions(def.Catalog, state) {
		if answer, ok := state.Answers[question.Key]; ok {
			lines = append(lines, question.DisplayLabel()+": "+answer.Raw)
		}
	}

	return "Thanks! We've recorded your information and will contact your provider for verification.\n" +
		"Here's what you told us:\n\n" +
		strings.Join(lines, "\n\n") +
		"\n\nWe'll let you know as soon as you're approved (this could take a few days). " +
		"In the meantime, feel free to ask me anything about your diet, wellness, or health."
}

// traversedQuestions lists the questions this session actually walked, in
// catalog order, including any spliced branch.
func traversedQuestions(catalog assessment.Catalog, state assessment.SessionState) []assessment.Question {
	questions := append([]assessment.Question(nil), catalog.Initial...)
	if state.BranchID != "" {
		questions = append(questions, catalog.Branches[state.BranchID]...)
	}
	return append(questions, catalog.Unbranch...)
}
