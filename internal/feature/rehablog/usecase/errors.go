// Package usecase implements the business logic for the rehablog feature.
package usecase

import "errors"

var (
	// ErrLogNotFound is returned when a log cannot be found by ID.
	ErrLogNotFound = errors.New("log not found")
)
