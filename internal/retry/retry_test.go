package retry

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/amishk599/jdprep/internal/model"
	"github.com/amishk599/jdprep/internal/store"
)

var errBusy = errors.New("database is locked")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockStore fails the first failures calls to every method with err.
type mockStore struct {
	store.NopStore
	calls    int
	failures int
	err      error
}

func (m *mockStore) LoadAll() ([]model.AnalysisResult, error) {
	m.calls++
	if m.calls <= m.failures {
		return nil, m.err
	}
	return []model.AnalysisResult{{ID: "1"}}, nil
}

func (m *mockStore) Save(model.AnalysisResult) error {
	m.calls++
	if m.calls <= m.failures {
		return m.err
	}
	return nil
}

func newTestRetryStore(inner model.HistoryStore, maxRetries int) *RetryStore {
	rs := NewRetryStore(inner, maxRetries, time.Millisecond, discardLogger())
	rs.retryable = func(err error) bool { return errors.Is(err, errBusy) }
	return rs
}

func TestRetry_SucceedsOnFirstAttempt(t *testing.T) {
	mock := &mockStore{}
	rs := newTestRetryStore(mock, 2)

	got, err := rs.LoadAll()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("unexpected records: %v", got)
	}
	if mock.calls != 1 {
		t.Fatalf("expected 1 call, got %d", mock.calls)
	}
}

func TestRetry_RetriesBusy_SucceedsOnSecondAttempt(t *testing.T) {
	mock := &mockStore{failures: 1, err: fmt.Errorf("saving analysis 1: %w", errBusy)}
	rs := newTestRetryStore(mock, 2)

	if err := rs.Save(model.AnalysisResult{ID: "1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.calls != 2 {
		t.Fatalf("expected 2 calls, got %d", mock.calls)
	}
}

func TestRetry_GivesUpAfterMaxRetries(t *testing.T) {
	mock := &mockStore{failures: 10, err: errBusy}
	rs := newTestRetryStore(mock, 2)

	_, err := rs.LoadAll()
	if !errors.Is(err, errBusy) {
		t.Fatalf("error = %v, want wrapped busy error", err)
	}
	if !strings.Contains(err.Error(), "giving up after 2 retries") {
		t.Errorf("error = %q, want give-up message", err)
	}
	if mock.calls != 3 {
		t.Fatalf("expected 3 calls (1 + 2 retries), got %d", mock.calls)
	}
}

func TestRetry_PermanentErrorNotRetried(t *testing.T) {
	mock := &mockStore{failures: 1, err: errors.New("disk I/O error")}
	rs := newTestRetryStore(mock, 2)

	_, err := rs.LoadAll()
	if err == nil || err.Error() != "disk I/O error" {
		t.Fatalf("error = %v, want the original error unwrapped", err)
	}
	if mock.calls != 1 {
		t.Fatalf("expected 1 call, got %d", mock.calls)
	}
}

func TestRetry_NotFoundPassesThrough(t *testing.T) {
	rs := NewRetryStore(store.NewNopStore(), 2, time.Millisecond, discardLogger())

	if _, err := rs.GetByID("missing"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
	if _, err := rs.Update("missing", model.RecordPatch{}); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"not found", fmt.Errorf("get 1: %w", model.ErrNotFound), false},
		{"invalid input", model.ErrInvalidInput, false},
		{"plain error", errors.New("boom"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isRetryable(tt.err); got != tt.want {
				t.Errorf("isRetryable(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestNewBackOff_Exponential(t *testing.T) {
	rs := NewRetryStore(store.NewNopStore(), 3, 100*time.Millisecond, discardLogger())
	bo := rs.newBackOff()
	bo.Reset()

	for _, base := range []time.Duration{100 * time.Millisecond, 200 * time.Millisecond, 400 * time.Millisecond} {
		d := bo.NextBackOff()
		lo := time.Duration(float64(base) * 0.7)
		hi := time.Duration(float64(base) * 1.3)
		if d < lo || d > hi {
			t.Errorf("delay = %v, want within [%v, %v]", d, lo, hi)
		}
	}
}

// lockDatabase creates the kv table at path and holds its write lock until
// the test ends.
func lockDatabase(t *testing.T, path string) {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("opening db: %v", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("CREATE TABLE IF NOT EXISTS kv (key TEXT PRIMARY KEY, value TEXT NOT NULL, updated_at DATETIME)"); err != nil {
		t.Fatalf("creating table: %v", err)
	}
	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if _, err := tx.Exec("INSERT INTO kv (key, value) VALUES ('lock', '[]')"); err != nil {
		t.Fatalf("taking write lock: %v", err)
	}
	t.Cleanup(func() {
		tx.Rollback()
		db.Close()
	})
}

func TestIsRetryable_SQLiteBusy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "busy.db")
	lockDatabase(t, path)

	other, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("opening second connection: %v", err)
	}
	defer other.Close()

	_, err = other.Exec("INSERT INTO kv (key, value) VALUES ('other', '[]')")
	if err == nil {
		t.Fatal("expected the write to fail while the lock is held")
	}
	if !isRetryable(fmt.Errorf("saving analysis 1: %w", err)) {
		t.Fatalf("isRetryable(%v) = false, want true", err)
	}
}

func TestRetry_GivesUpOnLockedSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "busy.db")
	lockDatabase(t, path)

	s, err := store.NewSQLiteStore(path, "", 0, discardLogger())
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	defer s.Close()

	rs := NewRetryStore(s, 2, time.Millisecond, discardLogger())
	err = rs.Save(model.AnalysisResult{ID: "1"})
	if err == nil {
		t.Fatal("expected save to fail while the lock is held")
	}
	if !strings.Contains(err.Error(), "giving up after 2 retries") {
		t.Errorf("error = %q, want give-up message", err)
	}
}
