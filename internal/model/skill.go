package model

import "strings"

// SkillCategory is one of the fixed taxonomy buckets. The string value is the
// machine key used in persisted records.
type SkillCategory string

const (
	CategoryCoreCS    SkillCategory = "coreCS"
	CategoryLanguages SkillCategory = "languages"
	CategoryWeb       SkillCategory = "web"
	CategoryData      SkillCategory = "data"
	CategoryCloud     SkillCategory = "cloud"
	CategoryTesting   SkillCategory = "testing"
	CategoryOther     SkillCategory = "other"
)

// Categories lists every category in display and plan-priority order.
var Categories = []SkillCategory{
	CategoryCoreCS,
	CategoryLanguages,
	CategoryWeb,
	CategoryData,
	CategoryCloud,
	CategoryTesting,
	CategoryOther,
}

var categoryLabels = map[SkillCategory]string{
	CategoryCoreCS:    "Core CS",
	CategoryLanguages: "Languages",
	CategoryWeb:       "Web Development",
	CategoryData:      "Data & Databases",
	CategoryCloud:     "Cloud & DevOps",
	CategoryTesting:   "Testing",
	CategoryOther:     "Other Skills",
}

// Label returns the human-readable name shown in reports.
func (c SkillCategory) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// ParseCategory resolves a machine key or a display label (case-insensitive)
// to a category. Older records keyed skills by label.
func ParseCategory(s string) (SkillCategory, bool) {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if strings.EqualFold(s, string(c)) || strings.EqualFold(s, c.Label()) {
			return c, true
		}
	}
	return "", false
}

// ExtractedSkills maps every category to its matched keywords in taxonomy
// order. Empty categories are present with an empty slice.
type ExtractedSkills map[SkillCategory][]string

// NewExtractedSkills returns an ExtractedSkills with every category present.
func NewExtractedSkills() ExtractedSkills {
	es := make(ExtractedSkills, len(Categories))
	for _, c := range Categories {
		es[c] = []string{}
	}
	return es
}

// Flatten concatenates all categories in taxonomy order.
func (es ExtractedSkills) Flatten() []string {
	flat := []string{}
	for _, c := range Categories {
		flat = append(flat, es[c]...)
	}
	return flat
}

// Has reports whether category c has at least one match.
func (es ExtractedSkills) Has(c SkillCategory) bool {
	return len(es[c]) > 0
}

// AnyContains reports whether any keyword matched in category c contains sub.
func (es ExtractedSkills) AnyContains(c SkillCategory, sub string) bool {
	for _, s := range es[c] {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
