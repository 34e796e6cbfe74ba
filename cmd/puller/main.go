// Command puller runs one daily ingestion pass: it resolves the data-source
// API key from the secret store, fetches financials for each configured
// symbol and history for each configured market index, and writes the raw
// payloads to the raw storage area.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"

	"financeingest/internal/config"
	"financeingest/internal/ingest"
	"financeingest/internal/ratelimit"
	"financeingest/internal/secrets"
	"financeingest/internal/storage"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	if cfg.APIKeySecretID == "" {
		logger.Error("missing required configuration: FINANCIAL_API_KEY_SECRET_ID")
		os.Exit(1)
	}

	// Cancel the run on interrupt so a partial key list still gets logged
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("received interrupt signal, shutting down")
		cancel()
	}()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		logger.Error("failed to load AWS configuration", "error", err)
		os.Exit(1)
	}

	// The API key is read once per run and handed to the ingestor; nothing
	// caches it beyond this invocation.
	secretStore := secrets.NewManagerStore(secretsmanager.NewFromConfig(awsCfg), logger)
	apiKey, err := secrets.APIKey(ctx, secretStore, cfg.APIKeySecretID, secrets.DefaultAPIKeyField)
	if err != nil {
		logger.Error("failed to resolve API key", "secret_id", cfg.APIKeySecretID, "error", err)
		os.Exit(1)
	}

	store := storage.NewS3Store(s3.NewFromConfig(awsCfg))
	limiter := ratelimit.New(cfg.APIRequestsPerSecond, 1)
	ingestor := ingest.New(cfg.APIBaseURL, apiKey, store, cfg.RawBucket, cfg.RawPrefix, limiter, logger)

	keys := ingestor.RunDailyIngestion(ctx, cfg.Symbols, cfg.MarketIndices)
	logger.Info("ingestion run finished", "ingested", len(keys), "keys", keys)
}
