package secrets

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// SecretsManagerAPI is the subset of the Secrets Manager client the store uses.
type SecretsManagerAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// ManagerStore adapts an AWS Secrets Manager client to the Store interface.
type ManagerStore struct {
	client SecretsManagerAPI
	logger *slog.Logger
}

// NewManagerStore creates a Store backed by the given Secrets Manager client.
func NewManagerStore(client SecretsManagerAPI, logger *slog.Logger) *ManagerStore {
	return &ManagerStore{client: client, logger: logger}
}

// SecretValue fetches the secret payload for secretID. String secrets are
// returned as-is; binary secrets are decoded as UTF-8 text.
func (s *ManagerStore) SecretValue(ctx context.Context, secretID string) (string, error) {
	out, err := s.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretID),
	})
	if err != nil {
		return "", fmt.Errorf("get secret %s: %w", secretID, err)
	}

	if out.SecretString != nil {
		return *out.SecretString, nil
	}

	s.logger.Warn("secret payload is binary, decoding as UTF-8 text", "secret_id", secretID)
	return string(out.SecretBinary), nil
}
