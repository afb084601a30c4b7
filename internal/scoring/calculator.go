package scoring

import (
	"math"

	"github.com/wellchemy/wellchemy/backend/internal/model/assessment"
)

// RiskTier is the coarse diet-quality classification.
type RiskTier string

const (
	TierLow      RiskTier = "low"
	TierModerate RiskTier = "moderate"
	TierHigh     RiskTier = "high"
)

// Named ratio sub-scores.
const (
	SubWholePlantFood = "wholePlantFood"
	SubWaterHerbal    = "waterHerbalBeverage"
)

const (
	maxPerCategory = 21.0
	referenceScale = 40.0

	highThreshold     = 15.0
	moderateThreshold = 23.0
)

// ScoreResult is derived from a completed answer map and never stored on
// its own.
type ScoreResult struct {
	PerCategory map[string]float64  `json:"categories"`
	SubScores   map[string]float64  `json:"subScores"`
	RiskTier    RiskTier            `json:"riskTier"`
}

// Payload flattens the result for persistence alongside the answer record.
func (r ScoreResult) Payload() map[string]any {
	return map[string]any{
		"categories":               r.PerCategory,
		"WholePlantFoodScore":      r.SubScores[SubWholePlantFood],
		"WaterHerbalBeverageScore": r.SubScores[SubWaterHerbal],
		"riskTier":                 string(r.RiskTier),
	}
}

// Score turns a completed answer map into category subtotals, ratio
// sub-scores and a risk tier. All divisions guard the zero-denominator case
// by yielding 0.
func Score(answers map[string]float64, sets assessment.CategorySets) ScoreResult {
	wholePlant := toSet(sets.WholePlantFoods)
	waterHerbal := toSet(sets.WaterHerbal)
	beverages := toSet(sets.Beverages)

	var plantTotal, foodTotal, waterTotal, beverageTotal, total float64
	for category, score := range answers {
		total += score
		if beverages[category] {
			beverageTotal += score
			if waterHerbal[category] {
				waterTotal += score
			}
			continue
		}
		foodTotal += score
		if wholePlant[category] {
			plantTotal += score
		}
	}

	subScores := map[string]float64{
		SubWholePlantFood: ratio(plantTotal, foodTotal),
		SubWaterHerbal:    ratio(waterTotal, beverageTotal),
	}

	perCategory := make(map[string]float64, len(answers))
	for category, score := range answers {
		perCategory[category] = score
	}

	return ScoreResult{
		PerCategory: perCategory,
		SubScores:   subScores,
		RiskTier:    tier(total, float64(len(answers))*maxPerCategory),
	}
}

// ratio expresses part/whole as a percentage rounded to one decimal.
func ratio(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return round1(part / whole * 100)
}

// tier rescales the total onto a fixed 40-point reference scale before
// applying the thresholds.
func tier(total, maxPossible float64) RiskTier {
	normalized := 0.0
	if maxPossible > 0 {
		normalized = total / maxPossible * referenceScale
	}
	switch {
	case normalized < highThreshold:
		return TierHigh
	case normalized < moderateThreshold:
		return TierModerate
	default:
		return TierLow
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func toSet(keys []string) map[string]bool {
	set := make(map[string]bool, len(keys))
	for _, key := range keys {
		set[key] = true
	}
	return set
}
