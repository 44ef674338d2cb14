package author

import "errors"

// Repository-level errors
var (
	ErrAuthorNotFound     = errors.New("author not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Service-level errors
var (
	// ErrMissingCredentials: login called without email or password.
	ErrMissingCredentials = errors.New("email and password fields are required")

	// ErrInvalidCredentials is returned for both an unknown email and a
	// wrong password, so callers cannot probe which accounts exist.
	ErrInvalidCredentials = errors.New("incorrect email and/or password")

	// ErrNotAuthorized: acting principal is neither owner nor admin.
	ErrNotAuthorized = errors.New("you are not authorized to perform this operation")
)
