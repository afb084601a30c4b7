package frequency

import (
	"math"
	"strconv"
	"strings"
)

// Weekly-equivalent frequency buckets. Every answer lands on one of these
// (or the configured default for unparseable input).
const (
	Never    = 0.0
	Rare     = 0.5  // less than once a week
	Low      = 2.0  // 1-3 times a week
	Mid      = 5.0  // 4-6 times a week
	High     = 10.5 // 1-2 times a day
	Max      = 21.0 // more than 3 times a day
)

// Rule maps a phrase to its bucket. Table order is significant: the first
// rule whose phrase is a substring of the input wins, which is the tie-break
// for overlapping phrases.
type Rule struct {
	Phrase string
	Score  float64
}

// DefaultRules covers the canonical bucket labels plus the legacy word set
// ("daily", "often", ...) folded in at their weekly-equivalent buckets.
// Day-scale phrases come first so they are not shadowed by week-scale ones.
func DefaultRules() []Rule {
	return []Rule{
		{"more than 3x/day", Max},
		{"1-2x/day", High},
		{"every day", High},
		{"daily", High},
		{"most days", Mid},
		{"4-6x/week", Mid},
		{"often", Mid},
		{"1-3x/week", Low},
		{"sometimes", Low},
		{"occasionally", Low},
		{"less than 1x/week", Rare},
		{"rarely", Rare},
		{"never", Never},
	}
}

// Normalizer maps free-text frequency language to a numeric score. It never
// fails: input that matches neither the phrase table nor a plain number
// yields the configured default.
type Normalizer struct {
	rules    []Rule
	fallback float64
}

// New returns a Normalizer with the default rule table. Strict mode defaults
// unparseable input to 0; lenient mode assumes an occasional "sometimes".
func New(strict bool) *Normalizer {
	fallback := Low
	if strict {
		fallback = Never
	}
	return NewWithRules(DefaultRules(), fallback)
}

// NewWithRules builds a Normalizer from an externally supplied rule table.
func NewWithRules(rules []Rule, fallback float64) *Normalizer {
	return &Normalizer{rules: append([]Rule(nil), rules...), fallback: fallback}
}

// Normalize resolves raw input in strict precedence order: phrase table
// first, numeric fallback second, configured default last.
func (n *Normalizer) Normalize(raw string) float64 {
	input := strings.ToLower(strings.TrimSpace(raw))
	if input == "" {
		return n.fallback
	}

	for _, rule := range n.rules {
		if strings.Contains(input, rule.Phrase) {
			return rule.Score
		}
	}

	// ParseFloat accepts "nan", which would fall through every bucket
	// comparison and land on Max; treat it as unparseable instead.
	if value, err := strconv.ParseFloat(input, 64); err == nil && !math.IsNaN(value) {
		return bucketize(value)
	}

	return n.fallback
}

// bucketize maps a plain times-per-week number onto the six buckets.
func bucketize(v float64) float64 {
	switch {
	case v <= 0:
		return Never
	case v < 1:
		return Rare
	case v < 4:
		return Low
	case v < 7:
		return Mid
	case v < 15:
		return High
	default:
		return Max
	}
}
