// Package errs holds the error kinds shared by every domain package.
// Concrete errors wrap one of these so callers can classify with errors.Is.
package errs

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyExists  = errors.New("already exists")
	ErrNotFound       = errors.New("not found")
	ErrValidation     = errors.New("validation failed")
	ErrForbidden      = errors.New("forbidden")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrInfrastructure = errors.New("infrastructure failure")
)

// Validation builds a ErrValidation error with a readable reason.
func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Infra marks err as a storage/transport failure unless it is already
// classified as one of the domain kinds.
func Infra(err error) error {
	if err == nil || IsDomain(err) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrInfrastructure, err)
}

// IsDomain reports whether err carries a domain kind (everything except infrastructure).
func IsDomain(err error) bool {
	return errors.Is(err, ErrAlreadyExists) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrForbidden) ||
		errors.Is(err, ErrUnauthorized)
}
