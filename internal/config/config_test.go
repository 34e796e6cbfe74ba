package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "https://api.example.com/v1", cfg.APIBaseURL)
	require.Equal(t, "cb-global-raw-financial-data", cfg.RawBucket)
	require.Equal(t, "financial_data", cfg.RawPrefix)
	require.Equal(t, "cb-global-processed-financial-data", cfg.ProcessedBucket)
	require.Equal(t, "processed_data", cfg.ProcessedPrefix)
	require.Equal(t, []string{"AAPL", "MSFT", "GOOGL"}, cfg.Symbols)
	require.Equal(t, []string{"SPX", "NDX"}, cfg.MarketIndices)
	require.Equal(t, 4.0, cfg.APIRequestsPerSecond)

	// No default for the secret id; the puller enforces its presence
	require.Empty(t, cfg.APIKeySecretID)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("FINANCIAL_API_BASE_URL", "http://localhost:9999/v1")
	t.Setenv("FINANCIAL_API_KEY_SECRET_ID", "prod/financial-api")
	t.Setenv("RAW_DATA_S3_BUCKET", "test-raw")
	t.Setenv("S3_RAW_DATA_PREFIX", "raw")
	t.Setenv("PROCESSED_DATA_S3_BUCKET", "test-processed")
	t.Setenv("S3_PROCESSED_DATA_PREFIX", "processed")
	t.Setenv("AWS_REGION", "eu-west-1")
	t.Setenv("API_REQUESTS_PER_SECOND", "0.5")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "http://localhost:9999/v1", cfg.APIBaseURL)
	require.Equal(t, "prod/financial-api", cfg.APIKeySecretID)
	require.Equal(t, "test-raw", cfg.RawBucket)
	require.Equal(t, "raw", cfg.RawPrefix)
	require.Equal(t, "test-processed", cfg.ProcessedBucket)
	require.Equal(t, "processed", cfg.ProcessedPrefix)
	require.Equal(t, "eu-west-1", cfg.Region)
	require.Equal(t, 0.5, cfg.APIRequestsPerSecond)
}
