// Package common defines shared constants and sentinel errors used across
// the server, the HTTP client and the CLI. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal           = errors.New("internal error")
	ErrorInvalidCredentials = errors.New("invalid credentials")

	// Token errors. Each failure reason has its own value so the HTTP layer
	// can tell an expired token from a forged or truncated one.
	ErrTokenMissing          = errors.New("token missing")
	ErrInvalidToken          = errors.New("invalid token")
	ErrTokenSignatureInvalid = errors.New("token signature is invalid")
	ErrTokenExpired          = errors.New("token expired")
)
