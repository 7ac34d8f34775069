// internal/domain/errors.go
package domain

import "errors"

var (
	// General errors
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")

	// Query surface errors
	ErrUserNotFound     = errors.New("user not found")
	ErrUnexpectedResult = errors.New("unexpected query result")

	// Store errors
	ErrImmutableField = errors.New("field cannot be updated")
	ErrMissingID      = errors.New("record has no id")

	// Auth errors
	ErrUnauthorized   = errors.New("unauthorized")
	ErrInvalidToken   = errors.New("invalid token")
	ErrInvalidAPIKey  = errors.New("invalid api key")
	ErrInvalidKeyHash = errors.New("invalid api key hash")
)
