// Package common defines shared constants and sentinel errors used across
// the coursehub server layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// ErrorNotOwned is returned when a course mutation matches no row for the
	// acting admin. It deliberately covers "absent" and "owned by someone else".
	ErrorNotOwned = errors.New("not owned")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Password hashing errors.
	ErrInvalidHashFormat = errors.New("invalid hash format")
	ErrPasswordTooLong   = errors.New("password too long")
)
