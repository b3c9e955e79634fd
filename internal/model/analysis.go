package model

import "time"

// Confidence is the user's self-assessment of a detected skill.
type Confidence string

const (
	ConfidenceKnow     Confidence = "know"
	ConfidencePractice Confidence = "practice"
)

// Valid reports whether c is one of the two recognised tags.
func (c Confidence) Valid() bool {
	return c == ConfidenceKnow || c == ConfidencePractice
}

// Next returns the tag a toggle moves to. Unset and practice both go to know.
func (c Confidence) Next() Confidence {
	if c == ConfidenceKnow {
		return ConfidencePractice
	}
	return ConfidenceKnow
}

// Company size values produced by the intel classifier.
const (
	SizeStartup    = "Startup"
	SizeEnterprise = "Enterprise"
)

// AnalysisResult is the full preparation report for one job description.
// Only SkillConfidence, FinalScore and UpdatedAt change after creation.
type AnalysisResult struct {
	ID              string                `json:"id" yaml:"id"`
	CreatedAt       time.Time             `json:"createdAt" yaml:"createdAt"`
	UpdatedAt       time.Time             `json:"updatedAt" yaml:"updatedAt"`
	Company         string                `json:"company" yaml:"company"`
	Role            string                `json:"role" yaml:"role"`
	JDText          string                `json:"jdText" yaml:"jdText"`
	ExtractedSkills ExtractedSkills       `json:"extractedSkills" yaml:"extractedSkills"`
	FlatSkills      []string              `json:"flatSkills" yaml:"flatSkills"`
	BaseScore       int                   `json:"baseScore" yaml:"baseScore"`
	FinalScore      int                   `json:"finalScore" yaml:"finalScore"`
	SkillConfidence map[string]Confidence `json:"skillConfidence" yaml:"skillConfidence"`
	Plan            []StudyPlanEntry      `json:"plan7Days" yaml:"plan7Days"`
	Checklist       []ChecklistEntry      `json:"checklist" yaml:"checklist"`
	Questions       []string              `json:"questions" yaml:"questions"`
	CompanyIntel    CompanyIntel          `json:"companyIntel" yaml:"companyIntel"`
	RoundMapping    []RoundMappingEntry   `json:"roundMapping" yaml:"roundMapping"`
}

// ConfidenceOf returns the displayed status of skill; unset skills show as
// practice.
func (r *AnalysisResult) ConfidenceOf(skill string) Confidence {
	if c, ok := r.SkillConfidence[skill]; ok {
		return c
	}
	return ConfidencePractice
}

// StudyPlanEntry is one block of the 7-day plan.
type StudyPlanEntry struct {
	Day   string   `json:"day" yaml:"day"`
	Focus string   `json:"focus" yaml:"focus"`
	Tasks []string `json:"tasks" yaml:"tasks"`
}

// ChecklistEntry is the preparation checklist for one interview round.
type ChecklistEntry struct {
	RoundTitle string   `json:"roundTitle" yaml:"roundTitle"`
	Items      []string `json:"items" yaml:"items"`
}

// CompanyIntel is the heuristic employer classification.
type CompanyIntel struct {
	Size     string `json:"size" yaml:"size"`
	Industry string `json:"industry" yaml:"industry"`
	Focus    string `json:"focus" yaml:"focus"`
}

// IsEnterprise reports whether the company was classified as an enterprise.
func (ci CompanyIntel) IsEnterprise() bool {
	return ci.Size == SizeEnterprise
}

// RoundMappingEntry describes one expected interview round.
type RoundMappingEntry struct {
	RoundTitle  string   `json:"roundTitle" yaml:"roundTitle"`
	Type        string   `json:"type" yaml:"type"`
	Description string   `json:"description" yaml:"description"`
	FocusAreas  []string `json:"focusAreas" yaml:"focusAreas"`
	Rationale   string   `json:"rationale" yaml:"rationale"`
}
