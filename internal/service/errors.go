package service

import "errors"

// Error taxonomy shared by every service operation. Handlers translate these
// to HTTP statuses; anything else is treated as a store failure for the
// current request only.
var (
	// ErrNotFound means the referenced photo, profile or notification does
	// not exist (or is not visible to the caller).
	ErrNotFound = errors.New("not found")

	// ErrInvalidOperation means the request is structurally nonsensical,
	// such as following oneself.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrConflict means a duplicate create lost a race. It is normally
	// absorbed inside the service rather than surfaced.
	ErrConflict = errors.New("conflict")

	// ErrUnauthorized means the caller's profile ID is missing. Mutating
	// operations never fall back to an anonymous identity.
	ErrUnauthorized = errors.New("unauthorized")
)
