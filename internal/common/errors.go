// Package common defines shared constants and sentinel errors used across
// the storefront components. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Validation errors (malformed request body or params).
	ErrorInvalidInput = errors.New("invalid input")

	// Duplicate email on registration.
	ErrorConflict = errors.New("already exists")
)
