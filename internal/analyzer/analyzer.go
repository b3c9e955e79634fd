// Package analyzer turns a job description into a complete preparation report.
package analyzer

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/amishk599/jdprep/internal/intel"
	"github.com/amishk599/jdprep/internal/model"
	"github.com/amishk599/jdprep/internal/prep"
	"github.com/amishk599/jdprep/internal/scoring"
	"github.com/amishk599/jdprep/internal/skills"
)

// Analyzer composes extraction, scoring, content generation and company
// intel into one AnalysisResult. It holds no mutable state and is safe for
// concurrent use.
type Analyzer struct {
	taxonomy *skills.Taxonomy
	now      func() time.Time
	logger   *slog.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithClock overrides the time source used for ids and timestamps.
func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) { a.now = now }
}

// WithTaxonomy overrides the built-in skill taxonomy.
func WithTaxonomy(t *skills.Taxonomy) Option {
	return func(a *Analyzer) { a.taxonomy = t }
}

// NewAnalyzer creates an Analyzer. A nil logger discards output.
func NewAnalyzer(logger *slog.Logger, opts ...Option) *Analyzer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	a := &Analyzer{
		taxonomy: skills.Default,
		now:      time.Now,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze builds the report for jdText. Blank text is rejected with
// model.ErrEmptyInput and text that is not valid UTF-8 with
// model.ErrInvalidInput. company and role may be empty.
func (a *Analyzer) Analyze(jdText, company, role string) (*model.AnalysisResult, error) {
	if !utf8.ValidString(jdText) {
		return nil, fmt.Errorf("job description: %w", model.ErrInvalidInput)
	}
	if strings.TrimSpace(jdText) == "" {
		return nil, model.ErrEmptyInput
	}

	extracted := a.taxonomy.Extract(jdText)
	flat := extracted.Flatten()
	score := scoring.Score(extracted, company, role, jdText)
	ci := intel.Classify(company)

	now := a.now().UTC()
	result := &model.AnalysisResult{
		ID:              strconv.FormatInt(now.UnixMilli(), 10),
		CreatedAt:       now,
		UpdatedAt:       now,
		Company:         company,
		Role:            role,
		JDText:          jdText,
		ExtractedSkills: extracted,
		FlatSkills:      flat,
		BaseScore:       score,
		FinalScore:      score,
		SkillConfidence: map[string]model.Confidence{},
		Plan:            prep.GeneratePlan(flat, extracted),
		Checklist:       prep.GenerateChecklist(flat),
		Questions:       prep.GenerateQuestions(extracted),
		CompanyIntel:    ci,
		RoundMapping:    intel.MapRounds(extracted, ci),
	}

	a.logger.Debug("analyzed job description",
		"id", result.ID,
		"company", company,
		"skills", len(flat),
		"score", score,
		"size", ci.Size,
	)
	return result, nil
}
