// Package common defines shared constants and sentinel errors used across
// GophStore layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal   = errors.New("internal error")
	ErrorValidation = errors.New("validation error")

	// ErrorNotFoundOrForbidden deliberately merges "does not exist" and
	// "belongs to someone else" so callers cannot probe for existence.
	ErrorNotFoundOrForbidden = errors.New("not found or no permission")

	// Auth errors. ErrorInvalidCredentials is the single message for both
	// unknown email and wrong password (non-enumerable).
	ErrorInvalidCredentials = errors.New("invalid email or password")
	ErrorEmailTaken         = errors.New("email already registered")

	// Token lifecycle errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
