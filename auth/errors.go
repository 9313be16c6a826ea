package auth

import "fmt"

// Error indicates an authentication failure: password hashing or
// verification problems, or token issuance/verification problems.
// The wrapped cause preserves the underlying primitive's error, so
// callers can still branch with errors.Is (e.g. on the golang-jwt
// sentinel errors) without a separate error taxonomy.
type Error struct {
	Cause   error
	Message string
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap exposes the underlying cause to errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

func newError(message string, cause error) *Error {
	return &Error{Message: message, Cause: cause}
}
