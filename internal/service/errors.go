package service

import "errors"

// Failure kinds. Handlers match these with errors.Is and map them to HTTP
// status codes; everything else is reported as an internal error.
var (
	ErrValidation   = errors.New("validation")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrOTPExpired   = errors.New("otp expired")
)

// Error carries a user-facing message together with its failure kind.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.Kind }

func fail(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}
