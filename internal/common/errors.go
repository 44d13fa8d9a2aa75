// Package common defines shared constants and sentinel errors used across
// server and client layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")

	// Service-level errors.
	ErrValidation   = errors.New("validation error")
	ErrUnauthorized = errors.New("invalid credentials")
	ErrInternal     = errors.New("internal error")

	// Upstream (inference server) errors.
	ErrUpstream = errors.New("upstream error")

	// Token errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
