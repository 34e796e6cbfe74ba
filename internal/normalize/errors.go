package normalize

import "fmt"

// FormatError indicates a raw payload whose structure does not match the
// schema its data type requires.
type FormatError struct {
	DataType string
	Cause    error
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	return fmt.Sprintf("malformed %s payload: %v", e.DataType, e.Cause)
}

// Unwrap implements error unwrapping for errors.Is and errors.As.
func (e *FormatError) Unwrap() error {
	return e.Cause
}
