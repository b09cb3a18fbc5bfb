package models

import "errors"

// Domain errors. Repositories and services return these; the HTTP layer
// maps them to status codes.
var (
	// ErrUsernameTaken indicates a registration attempt with an existing username.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrUserNotFound indicates a lookup for a user that does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials indicates a failed login (unknown user or wrong password).
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrTaskNotFound indicates the task does not exist or is outside the caller's scope.
	ErrTaskNotFound = errors.New("task not found")
)
