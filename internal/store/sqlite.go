package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/amishk599/jdprep/internal/model"

	_ "modernc.org/sqlite"
)

// DefaultHistoryKey is the key the whole history is stored under.
const DefaultHistoryKey = "placement_readiness_history"

// Ensure SQLiteStore implements model.HistoryStore.
var _ model.HistoryStore = (*SQLiteStore)(nil)

// SQLiteStore keeps the analysis history as one JSON array under a single key
// of a SQLite key/value table. Read-modify-write cycles are serialized, so
// concurrent callers in one process never lose each other's writes.
type SQLiteStore struct {
	db        *sql.DB
	key       string
	limit     int
	validator *RecordValidator
	logger    *slog.Logger
	mu        sync.Mutex
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and ensures the
// kv table exists. limit caps the number of kept records (0 keeps all).
func NewSQLiteStore(dbPath, key string, limit int, logger *slog.Logger) (*SQLiteStore, error) {
	if key == "" {
		key = DefaultHistoryKey
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	validator, err := NewRecordValidator()
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)

	// Verify the connection is alive.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}

	createTable := `CREATE TABLE IF NOT EXISTS kv (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`
	if _, err := db.Exec(createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating kv table: %w", err)
	}

	return &SQLiteStore{
		db:        db,
		key:       key,
		limit:     limit,
		validator: validator,
		logger:    logger,
	}, nil
}

type querier interface {
	QueryRow(query string, args ...any) *sql.Row
}

// Save prepends result to the history, trimming the oldest entries past the
// configured limit.
func (s *SQLiteStore) Save(result model.AnalysisResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("saving analysis %s: %w", result.ID, err)
	}
	defer tx.Rollback()

	history, err := s.load(tx)
	if err != nil {
		return fmt.Errorf("saving analysis %s: %w", result.ID, err)
	}

	history = append([]model.AnalysisResult{result}, history...)
	if s.limit > 0 && len(history) > s.limit {
		s.logger.Debug("trimming history", "kept", s.limit, "dropped", len(history)-s.limit)
		history = history[:s.limit]
	}

	if err := s.write(tx, history); err != nil {
		return fmt.Errorf("saving analysis %s: %w", result.ID, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("saving analysis %s: committing: %w", result.ID, err)
	}
	return nil
}

// LoadAll returns the history newest-first. Corrupt entries are skipped and an
// unreadable history is treated as empty; only database errors are returned.
func (s *SQLiteStore) LoadAll() ([]model.AnalysisResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history, err := s.load(s.db)
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}
	return history, nil
}

// Update merges patch into the record with the given id and returns the
// updated record. Unknown ids yield model.ErrNotFound.
func (s *SQLiteStore) Update(id string, patch model.RecordPatch) (*model.AnalysisResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("updating analysis %s: %w", id, err)
	}
	defer tx.Rollback()

	history, err := s.load(tx)
	if err != nil {
		return nil, fmt.Errorf("updating analysis %s: %w", id, err)
	}

	idx := indexOf(history, id)
	if idx < 0 {
		return nil, fmt.Errorf("updating analysis %s: %w", id, model.ErrNotFound)
	}
	patch.Apply(&history[idx])

	if err := s.write(tx, history); err != nil {
		return nil, fmt.Errorf("updating analysis %s: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("updating analysis %s: committing: %w", id, err)
	}

	updated := history[idx]
	return &updated, nil
}

// Clear removes the whole history.
func (s *SQLiteStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM kv WHERE key = ?", s.key); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	return nil
}

// GetByID returns the record with the given id or model.ErrNotFound.
func (s *SQLiteStore) GetByID(id string) (*model.AnalysisResult, error) {
	history, err := s.LoadAll()
	if err != nil {
		return nil, err
	}
	idx := indexOf(history, id)
	if idx < 0 {
		return nil, fmt.Errorf("looking up analysis %s: %w", id, model.ErrNotFound)
	}
	found := history[idx]
	return &found, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) load(q querier) ([]model.AnalysisResult, error) {
	var value string
	err := q.QueryRow("SELECT value FROM kv WHERE key = ?", s.key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return []model.AnalysisResult{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.key, err)
	}
	return s.decodeHistory(value), nil
}

// decodeHistory never fails: a history that is not a JSON array is dropped
// as a whole, and entries that fail validation are dropped one by one.
func (s *SQLiteStore) decodeHistory(value string) []model.AnalysisResult {
	var entries []json.RawMessage
	if err := json.Unmarshal([]byte(value), &entries); err != nil {
		s.logger.Error("history unreadable, starting empty", "key", s.key, "error", err)
		return []model.AnalysisResult{}
	}

	history := make([]model.AnalysisResult, 0, len(entries))
	for i, raw := range entries {
		if err := s.validator.Validate(raw); err != nil {
			s.logger.Warn("skipping corrupt history entry", "index", i, "error", err)
			continue
		}
		r, err := decodeRecord(raw)
		if err != nil {
			s.logger.Warn("skipping corrupt history entry", "index", i, "error", err)
			continue
		}
		history = append(history, r)
	}
	return history
}

func (s *SQLiteStore) write(tx *sql.Tx, history []model.AnalysisResult) error {
	data, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}
	_, err = tx.Exec(`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		s.key, string(data))
	if err != nil {
		return fmt.Errorf("writing %s: %w", s.key, err)
	}
	return nil
}

func indexOf(history []model.AnalysisResult, id string) int {
	for i := range history {
		if history[i].ID == id {
			return i
		}
	}
	return -1
}
