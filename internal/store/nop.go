package store

import (
	"fmt"

	"github.com/amishk599/jdprep/internal/model"
)

// NopStore is a no-op store used in dry-run mode. It never keeps a record,
// so the history always reads back empty.
type NopStore struct{}

func NewNopStore() *NopStore { return &NopStore{} }

func (s *NopStore) Save(result model.AnalysisResult) error   { return nil }
func (s *NopStore) LoadAll() ([]model.AnalysisResult, error) { return []model.AnalysisResult{}, nil }
func (s *NopStore) Clear() error                             { return nil }

func (s *NopStore) GetByID(id string) (*model.AnalysisResult, error) {
	return nil, fmt.Errorf("looking up analysis %s: %w", id, model.ErrNotFound)
}

func (s *NopStore) Update(id string, patch model.RecordPatch) (*model.AnalysisResult, error) {
	return nil, fmt.Errorf("updating analysis %s: %w", id, model.ErrNotFound)
}
