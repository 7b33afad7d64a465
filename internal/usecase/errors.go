package usecase

import (
	"errors"
	"fmt"

	"travel-agency/internal/data/repository"
	"travel-agency/pkg/utils"
)

// Error categories. Handlers map them to HTTP statuses with errors.Is.
var (
	ErrValidation         = errors.New("validation failed")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")
	ErrUnavailable        = errors.New("service unavailable")
	ErrUpstream           = errors.New("upstream failure")

	ErrNotFound          = repository.ErrNotFound
	ErrAlreadyExists     = repository.ErrDuplicate
	ErrInsufficientSpots = repository.ErrInsufficientSpots
	ErrInvalidState      = repository.ErrInvalidState
)

// serviceError is an error whose message is safe to return to the client.
type serviceError struct {
	kind error
	msg  string
}

func (e *serviceError) Error() string { return e.msg }
func (e *serviceError) Unwrap() error { return e.kind }

func newError(kind error, format string, args ...any) error {
	return &serviceError{kind: kind, msg: fmt.Sprintf(format, args...)}
}

func validationError(errs map[string]string) error {
	return newError(ErrValidation, "validation failed: %s", utils.FormatValidationErrors(errs))
}
