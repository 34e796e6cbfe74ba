package storage

import "errors"

// Sentinel errors for the object-store taxonomy. Adapters wrap these with
// bucket/key context so callers can classify with errors.Is.
var (
	// ErrNotFound indicates the requested object does not exist.
	ErrNotFound = errors.New("object not found")
	// ErrAccessDenied indicates the store rejected the caller's credentials.
	ErrAccessDenied = errors.New("access denied")
	// ErrQuotaExceeded indicates the store refused a write due to quota.
	ErrQuotaExceeded = errors.New("quota exceeded")
)
