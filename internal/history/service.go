// Package history manages saved analyses and the per-skill confidence that
// adjusts their final score.
package history

import (
	"fmt"
	"io"
	"log/slog"
	"maps"
	"strings"
	"sync"
	"time"

	"github.com/amishk599/jdprep/internal/model"
	"github.com/amishk599/jdprep/internal/scoring"
)

// Service wraps a HistoryStore. Confidence changes to the same record are
// serialized so concurrent toggles never overwrite each other's map.
type Service struct {
	store  model.HistoryStore
	now    func() time.Time
	logger *slog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source used for updatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a Service over store. A nil logger discards output.
func NewService(store model.HistoryStore, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Service{
		store:  store,
		now:    time.Now,
		logger: logger,
		locks:  make(map[string]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save stores a new analysis at the front of the history.
func (s *Service) Save(result *model.AnalysisResult) error {
	if err := s.store.Save(*result); err != nil {
		return err
	}
	s.logger.Debug("analysis saved", "id", result.ID, "company", result.Company, "score", result.FinalScore)
	return nil
}

// List returns every saved analysis, newest first.
func (s *Service) List() ([]model.AnalysisResult, error) {
	return s.store.LoadAll()
}

// Get returns one analysis or an error wrapping model.ErrNotFound.
func (s *Service) Get(id string) (*model.AnalysisResult, error) {
	return s.store.GetByID(id)
}

// Clear deletes the whole history.
func (s *Service) Clear() error {
	if err := s.store.Clear(); err != nil {
		return err
	}
	s.logger.Info("history cleared")
	return nil
}

// SetConfidence records conf for skill on the analysis id and recomputes its
// final score.
func (s *Service) SetConfidence(id, skill string, conf model.Confidence) (*model.AnalysisResult, error) {
	if !conf.Valid() {
		return nil, fmt.Errorf("confidence %q: %w", conf, model.ErrInvalidInput)
	}
	return s.modify(id, skill, func(model.Confidence) model.Confidence { return conf })
}

// Toggle flips skill between know and practice. A skill with no recorded
// confidence becomes know.
func (s *Service) Toggle(id, skill string) (*model.AnalysisResult, error) {
	return s.modify(id, skill, model.Confidence.Next)
}

func (s *Service) modify(id, skill string, next func(model.Confidence) model.Confidence) (*model.AnalysisResult, error) {
	skill = NormalizeSkill(skill)
	if skill == "" {
		return nil, fmt.Errorf("skill name: %w", model.ErrInvalidInput)
	}

	lock := s.lockFor(id)
	lock.Lock()
	defer lock.Unlock()

	current, err := s.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !hasSkill(current, skill) {
		return nil, fmt.Errorf("skill %q was not detected in analysis %s: %w", skill, id, model.ErrInvalidInput)
	}

	confidence := make(map[string]model.Confidence, len(current.SkillConfidence)+1)
	maps.Copy(confidence, current.SkillConfidence)
	confidence[skill] = next(current.SkillConfidence[skill])

	final := scoring.RecomputeFinalScore(current.BaseScore, confidence)
	updatedAt := s.now().UTC()

	updated, err := s.store.Update(id, model.RecordPatch{
		SkillConfidence: confidence,
		FinalScore:      &final,
		UpdatedAt:       &updatedAt,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("confidence updated",
		"id", id,
		"skill", skill,
		"confidence", confidence[skill],
		"final_score", final,
	)
	return updated, nil
}

// NormalizeSkill returns the form skill names are stored under: trimmed and
// lower-cased, matching the taxonomy keywords.
func NormalizeSkill(skill string) string {
	return strings.ToLower(strings.TrimSpace(skill))
}

// hasSkill reports whether skill was detected in r or already carries a
// confidence.
func hasSkill(r *model.AnalysisResult, skill string) bool {
	if _, ok := r.SkillConfidence[skill]; ok {
		return true
	}
	for _, s := range r.FlatSkills {
		if NormalizeSkill(s) == skill {
			return true
		}
	}
	return false
}

func (s *Service) lockFor(id string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[id] = lock
	}
	return lock
}
