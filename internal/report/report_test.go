package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/amishk599/jdprep/internal/model"
)

func newTestResult() *model.AnalysisResult {
	at := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	skills := model.NewExtractedSkills()
	skills[model.CategoryLanguages] = []string{"java"}
	skills[model.CategoryWeb] = []string{"react"}
	skills[model.CategoryData] = []string{"sql", "mysql"}
	return &model.AnalysisResult{
		ID:              "1773480600000",
		CreatedAt:       at,
		UpdatedAt:       at,
		Company:         "Acme",
		Role:            "",
		JDText:          "Java, React, SQL and MySQL",
		ExtractedSkills: skills,
		FlatSkills:      []string{"java", "react", "sql", "mysql"},
		BaseScore:       60,
		FinalScore:      62,
		SkillConfidence: map[string]model.Confidence{"react": model.ConfidenceKnow},
		Plan: []model.StudyPlanEntry{
			{Day: "Day 1-2", Focus: "Basics", Tasks: []string{"Revise OOP", "Aptitude"}},
			{Day: "Day 3-4", Focus: "DSA", Tasks: []string{"Arrays"}},
		},
		Checklist: []model.ChecklistEntry{
			{RoundTitle: "Round 1: Aptitude", Items: []string{"Quant"}},
		},
		Questions:    []string{"What is JVM?", "How does Virtual DOM work?"},
		CompanyIntel: model.CompanyIntel{Size: model.SizeStartup, Industry: "Technology", Focus: "Shipping fast"},
		RoundMapping: []model.RoundMappingEntry{
			{RoundTitle: "Take-home", Type: "Screening", Description: "Build it", FocusAreas: []string{"Code quality"}, Rationale: "Real work"},
		},
	}
}

func TestExportText(t *testing.T) {
	want := `Placement Readiness Report
Company: Acme
Role: N/A
Score: 62/100

Skills:
- java (practice)
- react (know)
- sql (practice)
- mysql (practice)

7-Day Plan:
Day 1-2: Basics
  - Revise OOP
  - Aptitude
Day 3-4: DSA
  - Arrays

Interview Questions:
1. What is JVM?
2. How does Virtual DOM work?`

	got := ExportText(newTestResult())
	if got != want {
		t.Errorf("ExportText mismatch\n got:\n%s\nwant:\n%s", got, want)
	}
}

func TestWeakSkills(t *testing.T) {
	tests := []struct {
		name       string
		confidence map[string]model.Confidence
		want       []string
	}{
		{"unset counts as practice", map[string]model.Confidence{}, []string{"java", "react", "sql"}},
		{"know skipped", map[string]model.Confidence{"react": model.ConfidenceKnow}, []string{"java", "sql", "mysql"}},
		{"all known", map[string]model.Confidence{
			"java": model.ConfidenceKnow, "react": model.ConfidenceKnow,
			"sql": model.ConfidenceKnow, "mysql": model.ConfidenceKnow,
		}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestResult()
			r.SkillConfidence = tt.confidence
			if got := WeakSkills(r); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("WeakSkills() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExportFilename(t *testing.T) {
	tests := []struct {
		company string
		want    string
	}{
		{"Acme", "readiness-report-Acme.txt"},
		{"", "readiness-report-job.txt"},
		{"  ", "readiness-report-job.txt"},
		{"AT/T", "readiness-report-AT-T.txt"},
	}
	for _, tt := range tests {
		r := newTestResult()
		r.Company = tt.company
		if got := ExportFilename(r); got != tt.want {
			t.Errorf("ExportFilename(%q) = %q, want %q", tt.company, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"", FormatText},
		{"TEXT", FormatText},
		{"md", FormatMarkdown},
		{"markdown", FormatMarkdown},
		{"json", FormatJSON},
		{"yml", FormatYAML},
		{" yaml ", FormatYAML},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}

	if _, err := ParseFormat("html"); !errors.Is(err, model.ErrInvalidInput) {
		t.Errorf("ParseFormat(html) error = %v, want ErrInvalidInput", err)
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, newTestResult(), FormatJSON, Options{}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	for _, key := range []string{"id", "createdAt", "jdText", "baseScore", "finalScore", "skillConfidence", "plan7Days", "companyIntel", "roundMapping"} {
		if _, ok := doc[key]; !ok {
			t.Errorf("JSON output missing key %q", key)
		}
	}
	if doc["finalScore"] != float64(62) {
		t.Errorf("finalScore = %v", doc["finalScore"])
	}
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, newTestResult(), FormatYAML, Options{}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not YAML: %v", err)
	}
	if doc["finalScore"] != 62 || doc["company"] != "Acme" {
		t.Errorf("finalScore/company = %v/%v", doc["finalScore"], doc["company"])
	}
}

func TestMarkdown(t *testing.T) {
	md := Markdown(newTestResult())
	for _, want := range []string{
		"# Placement Readiness: Acme",
		"- **Score:** 62/100 (base 60)",
		"**Web Development:** [x] react",
		"**Data & Databases:** [ ] sql, [ ] mysql",
		"> **Action next:** practice java, sql, mysql",
		"### Day 1-2: Basics",
		"- [ ] Quant",
		"1. **Take-home** (Screening): Build it",
		"2. How does Virtual DOM work?",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("Markdown missing %q", want)
		}
	}
	if strings.Contains(md, "Core CS") {
		t.Error("Markdown lists an empty category")
	}
}

func TestRenderPlain(t *testing.T) {
	out := Render(newTestResult(), Options{Width: 100})
	for _, want := range []string{
		"Placement Readiness Report",
		"Acme",
		"62/100 (base 60)",
		"Web Development",
		"✓ react",
		"○ sql",
		"Action next: you marked java, sql, mysql as needing practice.",
		"Day 3-4: DSA",
		"☐ Quant",
		"1. Take-home",
		"Why: Real work",
		" 2. How does Virtual DOM work?",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Render missing %q\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("Render without color emitted escape sequences")
	}
}

func TestWordWrap(t *testing.T) {
	got := wordWrap("one two three four", 9)
	if got != "one two\nthree\nfour" {
		t.Errorf("wordWrap = %q", got)
	}
	if wordWrap("   ", 10) != "" {
		t.Error("wordWrap of blank text should be empty")
	}
}
