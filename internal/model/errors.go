package model

import "errors"

var (
	// ErrInvalidInput is returned when a value is not usable text or not a
	// recognised tag.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyInput is returned when the job description is blank.
	ErrEmptyInput = errors.New("empty job description")

	// ErrNotFound is returned by lookups and updates against an unknown id.
	ErrNotFound = errors.New("analysis not found")
)
