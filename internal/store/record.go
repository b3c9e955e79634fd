package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/amishk599/jdprep/internal/intel"
	"github.com/amishk599/jdprep/internal/model"
	"github.com/amishk599/jdprep/internal/scoring"
)

const defaultBaseScore = 35

// storedRecord accepts every shape the history has been written in. Older
// entries carry readinessScore instead of baseScore, a "plan" with "items",
// a checklist object keyed by round title, and skills keyed by display label.
type storedRecord struct {
	ID              string                      `json:"id"`
	CreatedAt       string                      `json:"createdAt"`
	UpdatedAt       string                      `json:"updatedAt"`
	Company         string                      `json:"company"`
	Role            string                      `json:"role"`
	JDText          string                      `json:"jdText"`
	ExtractedSkills map[string][]string         `json:"extractedSkills"`
	FlatSkills      []string                    `json:"flatSkills"`
	BaseScore       *int                        `json:"baseScore"`
	ReadinessScore  *int                        `json:"readinessScore"`
	FinalScore      *int                        `json:"finalScore"`
	SkillConfidence map[string]model.Confidence `json:"skillConfidence"`
	Plan7Days       []storedPlanEntry           `json:"plan7Days"`
	Plan            []storedPlanEntry           `json:"plan"`
	Checklist       json.RawMessage             `json:"checklist"`
	Questions       []string                    `json:"questions"`
	CompanyIntel    *model.CompanyIntel         `json:"companyIntel"`
	RoundMapping    []storedRound               `json:"roundMapping"`
}

type storedPlanEntry struct {
	Day   string   `json:"day"`
	Focus string   `json:"focus"`
	Tasks []string `json:"tasks"`
	Items []string `json:"items"`
}

type storedRound struct {
	RoundTitle  string   `json:"roundTitle"`
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Desc        string   `json:"desc"`
	FocusAreas  []string `json:"focusAreas"`
	Rationale   string   `json:"rationale"`
	Purpose     string   `json:"purpose"`
}

// decodeRecord parses one validated history entry and fills in anything an
// older writer left out.
func decodeRecord(raw []byte) (model.AnalysisResult, error) {
	var sr storedRecord
	if err := json.Unmarshal(raw, &sr); err != nil {
		return model.AnalysisResult{}, fmt.Errorf("decoding record: %w", err)
	}

	// An unparseable createdAt keeps the entry with a zero time; dropping it
	// here would erase it from the database on the next write.
	createdAt, _ := parseTimestamp(sr.CreatedAt)
	updatedAt := createdAt
	if t, ok := parseTimestamp(sr.UpdatedAt); ok {
		updatedAt = t
	}

	checklist, err := decodeChecklist(sr.Checklist)
	if err != nil {
		return model.AnalysisResult{}, err
	}

	r := model.AnalysisResult{
		ID:              sr.ID,
		CreatedAt:       createdAt,
		UpdatedAt:       updatedAt,
		Company:         sr.Company,
		Role:            sr.Role,
		JDText:          sr.JDText,
		ExtractedSkills: normalizeSkills(sr.ExtractedSkills),
		FlatSkills:      sr.FlatSkills,
		SkillConfidence: map[string]model.Confidence{},
		Plan:            normalizePlan(sr.Plan7Days, sr.Plan),
		Checklist:       checklist,
		Questions:       sr.Questions,
		RoundMapping:    normalizeRounds(sr.RoundMapping),
	}

	if r.FlatSkills == nil {
		r.FlatSkills = r.ExtractedSkills.Flatten()
	}
	if r.Questions == nil {
		r.Questions = []string{}
	}
	for skill, c := range sr.SkillConfidence {
		if c.Valid() {
			r.SkillConfidence[skill] = c
		}
	}

	switch {
	case sr.BaseScore != nil:
		r.BaseScore = *sr.BaseScore
	case sr.ReadinessScore != nil:
		r.BaseScore = *sr.ReadinessScore
	default:
		r.BaseScore = defaultBaseScore
	}
	if sr.FinalScore != nil {
		r.FinalScore = *sr.FinalScore
	} else {
		r.FinalScore = scoring.RecomputeFinalScore(r.BaseScore, r.SkillConfidence)
	}

	// Records written before company intel existed get it derived now.
	if sr.CompanyIntel != nil && sr.CompanyIntel.Size != "" {
		r.CompanyIntel = *sr.CompanyIntel
	} else {
		r.CompanyIntel = intel.Classify(r.Company)
	}
	if len(r.RoundMapping) == 0 {
		r.RoundMapping = intel.MapRounds(r.ExtractedSkills, r.CompanyIntel)
	}

	return r, nil
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	time.DateTime,
	time.DateOnly,
}

func parseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// normalizeSkills merges unknown category keys into Other in key order.
func normalizeSkills(in map[string][]string) model.ExtractedSkills {
	out := model.NewExtractedSkills()
	for _, key := range slices.Sorted(maps.Keys(in)) {
		c, ok := model.ParseCategory(key)
		if !ok {
			c = model.CategoryOther
		}
		out[c] = append(out[c], in[key]...)
	}
	return out
}

func normalizePlan(current, legacy []storedPlanEntry) []model.StudyPlanEntry {
	src := current
	if len(src) == 0 {
		src = legacy
	}
	plan := make([]model.StudyPlanEntry, 0, len(src))
	for _, e := range src {
		tasks := e.Tasks
		if len(tasks) == 0 {
			tasks = e.Items
		}
		if tasks == nil {
			tasks = []string{}
		}
		plan = append(plan, model.StudyPlanEntry{Day: e.Day, Focus: e.Focus, Tasks: tasks})
	}
	return plan
}

// decodeChecklist accepts the current array form or the legacy object keyed
// by round title. Object key order is preserved.
func decodeChecklist(raw json.RawMessage) ([]model.ChecklistEntry, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return []model.ChecklistEntry{}, nil
	}

	if raw[0] == '[' {
		var list []model.ChecklistEntry
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, fmt.Errorf("decoding checklist: %w", err)
		}
		return list, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("decoding legacy checklist: %w", err)
	}
	list := []model.ChecklistEntry{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decoding legacy checklist: %w", err)
		}
		title, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("decoding legacy checklist: unexpected token %v", tok)
		}
		var items []string
		if err := dec.Decode(&items); err != nil {
			return nil, fmt.Errorf("decoding legacy checklist round %q: %w", title, err)
		}
		list = append(list, model.ChecklistEntry{RoundTitle: title, Items: items})
	}
	return list, nil
}

func normalizeRounds(in []storedRound) []model.RoundMappingEntry {
	out := make([]model.RoundMappingEntry, 0, len(in))
	for _, r := range in {
		e := model.RoundMappingEntry{
			RoundTitle:  firstNonEmpty(r.RoundTitle, r.Name),
			Type:        r.Type,
			Description: firstNonEmpty(r.Description, r.Desc),
			FocusAreas:  r.FocusAreas,
			Rationale:   firstNonEmpty(r.Rationale, r.Purpose),
		}
		if e.FocusAreas == nil {
			e.FocusAreas = []string{}
		}
		out = append(out, e)
	}
	return out
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
