package service

import "errors"

// Service-level error taxonomy. Handlers map these to HTTP statuses; any
// other error is treated as a server failure and never leaks its detail to
// the client.
var (
	ErrValidation         = errors.New("invalid input")
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingPassword    = errors.New("account has no password set")
	ErrUnauthorized       = errors.New("authentication required")
	ErrForbidden          = errors.New("not the owner of this resource")
	ErrNotFound           = errors.New("resource not found")
)
