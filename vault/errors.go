package vault

import "fmt"

// EncryptionError indicates a secret encryption or decryption failure:
// bad key material, malformed stored values, or plaintext that failed
// validation after decryption. The wrapped cause, when present, carries
// the underlying primitive's failure reason.
type EncryptionError struct {
	Cause   error
	Message string
}

func (e *EncryptionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap exposes the underlying cause to errors.Is and errors.As.
func (e *EncryptionError) Unwrap() error {
	return e.Cause
}

func newEncryptionError(message string, cause error) *EncryptionError {
	return &EncryptionError{Message: message, Cause: cause}
}
