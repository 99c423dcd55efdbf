package apperrors

import "errors"

// Sentinel errors for the failure kinds the API distinguishes. Handlers map
// each kind to exactly one HTTP status in the respond layer.
var (
	ErrValidation     = errors.New("validation failed")
	ErrDuplicateEmail = errors.New("email already in use")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrNotFound       = errors.New("not found")
)

type validationError struct {
	msg string
}

func (e *validationError) Error() string { return e.msg }

func (e *validationError) Is(target error) bool { return target == ErrValidation }

// Validation returns an error carrying a client-facing detail message that
// matches ErrValidation under errors.Is.
func Validation(msg string) error {
	return &validationError{msg: msg}
}
