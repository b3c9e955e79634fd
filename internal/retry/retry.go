package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v5"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/amishk599/jdprep/internal/model"
)

// Ensure RetryStore implements model.HistoryStore.
var _ model.HistoryStore = (*RetryStore)(nil)

// RetryStore is a decorator that retries a HistoryStore call while the
// database is busy, which happens when a second jdprep process holds the
// write lock (for example `browse` running next to `confidence set`).
type RetryStore struct {
	inner      model.HistoryStore
	maxRetries int
	baseDelay  time.Duration
	logger     *slog.Logger
	retryable  func(error) bool
}

// NewRetryStore wraps a HistoryStore with retry logic.
// maxRetries is the number of additional attempts after the first failure.
// baseDelay is the delay before the first retry, doubled on each subsequent retry.
func NewRetryStore(inner model.HistoryStore, maxRetries int, baseDelay time.Duration, logger *slog.Logger) *RetryStore {
	return &RetryStore{
		inner:      inner,
		maxRetries: max(maxRetries, 0),
		baseDelay:  baseDelay,
		logger:     logger,
		retryable:  isRetryable,
	}
}

func (s *RetryStore) Save(result model.AnalysisResult) error {
	_, err := do(s, "save", func() (struct{}, error) {
		return struct{}{}, s.inner.Save(result)
	})
	return err
}

func (s *RetryStore) LoadAll() ([]model.AnalysisResult, error) {
	return do(s, "load", s.inner.LoadAll)
}

func (s *RetryStore) Update(id string, patch model.RecordPatch) (*model.AnalysisResult, error) {
	return do(s, "update", func() (*model.AnalysisResult, error) {
		return s.inner.Update(id, patch)
	})
}

func (s *RetryStore) Clear() error {
	_, err := do(s, "clear", func() (struct{}, error) {
		return struct{}{}, s.inner.Clear()
	})
	return err
}

func (s *RetryStore) GetByID(id string) (*model.AnalysisResult, error) {
	return do(s, "get", func() (*model.AnalysisResult, error) {
		return s.inner.GetByID(id)
	})
}

// newBackOff doubles the delay from baseDelay with ±30% jitter.
func (s *RetryStore) newBackOff() *backoff.ExponentialBackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = s.baseDelay
	bo.Multiplier = 2
	bo.RandomizationFactor = 0.3
	bo.MaxInterval = 5 * time.Second
	return bo
}

func do[T any](s *RetryStore, op string, fn func() (T, error)) (T, error) {
	attempt := 0
	operation := func() (T, error) {
		v, err := fn()
		if err != nil && !s.retryable(err) {
			return v, backoff.Permanent(err)
		}
		return v, err
	}
	notify := func(err error, delay time.Duration) {
		attempt++
		s.logger.Warn("retrying after busy database",
			"op", op,
			"attempt", attempt,
			"max_retries", s.maxRetries,
			"delay", delay,
			"error", err,
		)
	}

	v, err := backoff.Retry(context.Background(), operation,
		backoff.WithBackOff(s.newBackOff()),
		backoff.WithMaxTries(uint(s.maxRetries+1)),
		backoff.WithNotify(notify),
	)
	if err != nil && s.maxRetries > 0 && s.retryable(err) {
		var zero T
		return zero, fmt.Errorf("%s: giving up after %d retries: %w", op, s.maxRetries, err)
	}
	return v, err
}

// isRetryable returns true if err is SQLite lock contention. Lookup misses,
// bad input and every other database error are permanent.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, model.ErrNotFound) || errors.Is(err, model.ErrInvalidInput) {
		return false
	}

	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() & 0xff {
		case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
			return true
		}
	}
	return false
}
