package service

import (
	"errors"

	"trazabilidad/internal/repository"
)

// ErrValidation marks input the caller must fix (bad enum, date order,
// reference to a row that does not exist).
var ErrValidation = errors.New("datos inválidos")

// Error carries a client-safe message for a sentinel error. Handlers use Msg
// as the response detail and errors.Is on the chain to pick the status.
type Error struct {
	Msg   string
	Field string // set for validation errors
	Err   error
}

func (e *Error) Error() string { return e.Msg }
func (e *Error) Unwrap() error { return e.Err }

func invalid(field, msg string) error {
	return &Error{Msg: msg, Field: field, Err: ErrValidation}
}

// describe attaches a message to the repository sentinel in err, if any.
// Empty messages leave that case untouched.
func describe(err error, notFoundMsg, uniqueMsg, referenceMsg string) error {
	var msg string
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		msg = notFoundMsg
	case errors.Is(err, repository.ErrUniqueViolation):
		msg = uniqueMsg
	case errors.Is(err, repository.ErrReferenceViolation):
		msg = referenceMsg
	}
	if msg == "" {
		return err
	}
	return &Error{Msg: msg, Err: err}
}
