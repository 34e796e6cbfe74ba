package secrets

import "fmt"

// AccessError indicates the secret store was unreachable or denied access.
type AccessError struct {
	SecretID string
	Cause    error
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("secret %s: access failed: %v", e.SecretID, e.Cause)
}

func (e *AccessError) Unwrap() error {
	return e.Cause
}

// FormatError indicates the secret payload is not the expected JSON shape.
type FormatError struct {
	SecretID string
	Cause    error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("secret %s: payload is not valid JSON: %v", e.SecretID, e.Cause)
}

func (e *FormatError) Unwrap() error {
	return e.Cause
}

// FieldMissingError indicates the named field is absent or empty in the
// secret payload.
type FieldMissingError struct {
	SecretID string
	Field    string
}

func (e *FieldMissingError) Error() string {
	return fmt.Sprintf("secret %s: field %q is missing or empty", e.SecretID, e.Field)
}
