// Package apperr defines the sentinel errors shared across services and
// the HTTP layer. Callers should use errors.Is to match these values.
package apperr

import "errors"

var (
	// ErrNotFound covers both genuinely absent rows and rows owned by
	// another account; the two must be indistinguishable to the caller.
	ErrNotFound = errors.New("not found")

	// ErrPermissionDenied is returned when an authenticated account
	// attempts a write against another account's data.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrUnauthenticated is returned when a credential is present but
	// does not verify. It is never downgraded to anonymous access.
	ErrUnauthenticated = errors.New("authentication failed")

	// ErrValidation marks malformed input.
	ErrValidation = errors.New("validation error")

	// ErrUnavailable marks a failure of the external calendar/contacts
	// provider or a credential refresh against it.
	ErrUnavailable = errors.New("upstream service unavailable")
)

// FieldErrors carries field-level validation detail. It wraps
// ErrValidation so errors.Is(err, ErrValidation) still matches.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	return ErrValidation.Error()
}

func (f FieldErrors) Unwrap() error {
	return ErrValidation
}
