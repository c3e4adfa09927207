package services

import "errors"

var (
	// ErrNotFound means the requested record does not exist or is not
	// visible to the caller.
	ErrNotFound = errors.New("not found")

	// ErrForbidden means the caller's role or ownership does not permit
	// the operation.
	ErrForbidden = errors.New("forbidden")
)

// ValidationError is a rejected request with a user-facing message.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validation(message string) error {
	return &ValidationError{Message: message}
}

// IsValidation reports whether err is a request validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
