// Package scoring computes the readiness score and its confidence-adjusted
// final value.
package scoring

import (
	"strings"

	"github.com/amishk599/jdprep/internal/model"
)

const (
	baseScore        = 35
	perCategory      = 5
	maxCategoryBonus = 30
	companyBonus     = 10
	roleBonus        = 10
	lengthBonus      = 15
	lengthThreshold  = 800
	confidenceStep   = 2
	maxScore         = 100
)

// Score returns the readiness score in [35, 100] for an extraction.
// The Other category never counts, so the fallback tags add nothing.
func Score(skills model.ExtractedSkills, company, role, text string) int {
	score := baseScore

	categories := 0
	for _, c := range model.Categories {
		if c == model.CategoryOther {
			continue
		}
		if skills.Has(c) {
			categories++
		}
	}
	score += min(categories*perCategory, maxCategoryBonus)

	if strings.TrimSpace(company) != "" {
		score += companyBonus
	}
	if strings.TrimSpace(role) != "" {
		score += roleBonus
	}
	// Character count of the raw text, not bytes.
	if len([]rune(text)) > lengthThreshold {
		score += lengthBonus
	}

	return min(score, maxScore)
}

// RecomputeFinalScore applies the confidence map to base: +2 per "know",
// -2 per "practice", clamped to [0, 100]. Only the map's current state
// matters, so repeated or reordered toggles give the same result.
func RecomputeFinalScore(base int, confidence map[string]model.Confidence) int {
	score := base
	for _, c := range confidence {
		switch c {
		case model.ConfidenceKnow:
			score += confidenceStep
		case model.ConfidencePractice:
			score -= confidenceStep
		}
	}
	return max(0, min(score, maxScore))
}
