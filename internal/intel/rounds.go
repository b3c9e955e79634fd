package intel

import (
	"strings"

	"github.com/amishk599/jdprep/internal/model"
	"github.com/amishk599/jdprep/internal/skills"
)

// Round types, in the order every mapping uses.
const (
	TypeScreening  = "Screening"
	TypeTechnical  = "Technical"
	TypeDesign     = "Design"
	TypeBehavioral = "Behavioral"
)

const fallbackTopSkill = "Coding"

// MapRounds returns the four expected interview rounds. Screening, technical
// and design rounds differ between enterprises and startups; the behavioral
// round is shared.
func MapRounds(extracted model.ExtractedSkills, ci model.CompanyIntel) []model.RoundMappingEntry {
	if ci.IsEnterprise() {
		return []model.RoundMappingEntry{
			{
				RoundTitle:  "Online Assessment",
				Type:        TypeScreening,
				Description: "60-90 min coding test on HackerRank/CodeSignal",
				FocusAreas:  []string{"DSA", "Aptitude", "Time-boxed problem solving"},
				Rationale:   "Filters candidates based on raw DSA / Aptitude skills.",
			},
			{
				RoundTitle:  "Technical Round 1 (DSA)",
				Type:        TypeTechnical,
				Description: "Live coding: Trees, Graphs, DP, or Array manipulation",
				FocusAreas:  []string{"Trees", "Graphs", "Dynamic Programming", "Edge cases"},
				Rationale:   "Tests algorithmic thinking and edge-case handling.",
			},
			{
				RoundTitle:  "System Design / Low Level Design",
				Type:        TypeDesign,
				Description: "Design a parking lot, rate limiter, or twitter feed",
				FocusAreas:  []string{"Low Level Design", "Scalability", "Trade-offs"},
				Rationale:   "Tests ability to structure scalable systems (LLD for freshers).",
			},
			behavioralRound(),
		}
	}

	top := TopSkill(extracted.Flatten())
	return []model.RoundMappingEntry{
		{
			RoundTitle:  "Screening / Take-home",
			Type:        TypeScreening,
			Description: "Resume screen followed by a practical coding task via email",
			FocusAreas:  []string{"Practical coding", "Feature building", "Code quality"},
			Rationale:   "Validates ability to build actual features, not just invert binary trees.",
		},
		{
			RoundTitle:  "Machine Coding (" + strings.ToUpper(top) + ")",
			Type:        TypeTechnical,
			Description: "Build a small feature using " + top + " in 1 hour",
			FocusAreas:  []string{top, "Coding speed", "Clean code"},
			Rationale:   "Tests coding speed, cleanliness, and framework knowledge.",
		},
		{
			RoundTitle:  "Architecture & Discussion",
			Type:        TypeDesign,
			Description: "Discuss past projects and potential system improvements",
			FocusAreas:  []string{"Project depth", "Ownership", "System improvements"},
			Rationale:   "Tests depth of understanding and ownership.",
		},
		behavioralRound(),
	}
}

func behavioralRound() model.RoundMappingEntry {
	return model.RoundMappingEntry{
		RoundTitle:  "Managerial / Culture Fit",
		Type:        TypeBehavioral,
		Description: "Discussion with Engineering Manager",
		FocusAreas:  []string{"Company values", "Growth mindset", "Communication"},
		Rationale:   "Ensures you share the company values and have a growth mindset.",
	}
}

// TopSkill is the first detected non-fallback skill, or "Coding".
func TopSkill(flat []string) string {
	if top := skills.TopSkills(flat, 1); len(top) > 0 {
		return top[0]
	}
	return fallbackTopSkill
}
