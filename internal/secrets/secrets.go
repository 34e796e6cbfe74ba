// Package secrets resolves API credentials from a secret store at process
// start. Secrets are read once per invocation and never cached or written.
package secrets

import (
	"context"
	"encoding/json"
	"fmt"
)

// DefaultAPIKeyField is the JSON field holding the API key when the caller
// does not name one.
const DefaultAPIKeyField = "api_key"

// Store is the secret-store capability. Implementations return the secret
// payload as text; binary payloads are decoded as UTF-8 by the adapter.
type Store interface {
	SecretValue(ctx context.Context, secretID string) (string, error)
}

// APIKey fetches the secret payload for secretID, parses it as JSON and
// extracts field (DefaultAPIKeyField when empty).
//
// It fails with *AccessError when the store is unreachable or denies access,
// *FormatError when the payload is not valid JSON, and *FieldMissingError
// when the named field is absent or empty.
func APIKey(ctx context.Context, store Store, secretID, field string) (string, error) {
	if field == "" {
		field = DefaultAPIKeyField
	}

	payload, err := store.SecretValue(ctx, secretID)
	if err != nil {
		return "", &AccessError{SecretID: secretID, Cause: err}
	}

	var values map[string]any
	if err := json.Unmarshal([]byte(payload), &values); err != nil {
		return "", &FormatError{SecretID: secretID, Cause: err}
	}

	value, ok := values[field]
	if !ok || value == nil {
		return "", &FieldMissingError{SecretID: secretID, Field: field}
	}
	key, ok := value.(string)
	if !ok {
		return "", &FormatError{SecretID: secretID, Cause: fmt.Errorf("field %q is not a string", field)}
	}
	if key == "" {
		return "", &FieldMissingError{SecretID: secretID, Field: field}
	}
	return key, nil
}
