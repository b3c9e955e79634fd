package model

import "time"

// HistoryStore persists analysis results. Implementations keep records
// newest-first and never fail a read because of a corrupt entry.
type HistoryStore interface {
	Save(result AnalysisResult) error
	LoadAll() ([]AnalysisResult, error)
	Update(id string, patch RecordPatch) (*AnalysisResult, error)
	Clear() error
	GetByID(id string) (*AnalysisResult, error)
}

// RecordPatch holds the fields that may change after creation. Nil fields are
// left untouched.
type RecordPatch struct {
	SkillConfidence map[string]Confidence
	FinalScore      *int
	UpdatedAt       *time.Time
}

// Apply merges the patch into r.
func (p RecordPatch) Apply(r *AnalysisResult) {
	if p.SkillConfidence != nil {
		r.SkillConfidence = p.SkillConfidence
	}
	if p.FinalScore != nil {
		r.FinalScore = *p.FinalScore
	}
	if p.UpdatedAt != nil {
		r.UpdatedAt = *p.UpdatedAt
	}
}
