package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds all configuration for the ingestion and processing pipelines.
type Config struct {
	// Data-source API
	APIBaseURL     string `mapstructure:"financial_api_base_url"`
	APIKeySecretID string `mapstructure:"financial_api_key_secret_id"`

	// Storage areas
	RawBucket       string `mapstructure:"raw_data_bucket"`
	RawPrefix       string `mapstructure:"raw_data_prefix"`
	ProcessedBucket string `mapstructure:"processed_data_bucket"`
	ProcessedPrefix string `mapstructure:"processed_data_prefix"`

	Region string `mapstructure:"aws_region"`

	// Items to ingest
	Symbols       []string `mapstructure:"stock_symbols"`
	MarketIndices []string `mapstructure:"market_indices"`

	// Outbound rate limit for the data-source API; <= 0 means unlimited
	APIRequestsPerSecond float64 `mapstructure:"api_requests_per_second"`
}

// Load reads configuration from environment variables and an optional config
// file. Environment variables take precedence over config file values.
//
// Expected environment variables:
//   - FINANCIAL_API_BASE_URL (optional, defaults to production)
//   - FINANCIAL_API_KEY_SECRET_ID (required by the puller)
//   - RAW_DATA_S3_BUCKET
//   - S3_RAW_DATA_PREFIX
//   - PROCESSED_DATA_S3_BUCKET
//   - S3_PROCESSED_DATA_PREFIX
//   - AWS_REGION
//   - API_REQUESTS_PER_SECOND (optional)
func Load() (*Config, error) {
	v := viper.New()

	v.AutomaticEnv()

	// Defaults matching the production deployment
	v.SetDefault("financial_api_base_url", "https://api.example.com/v1")
	v.SetDefault("raw_data_bucket", "cb-global-raw-financial-data")
	v.SetDefault("raw_data_prefix", "financial_data")
	v.SetDefault("processed_data_bucket", "cb-global-processed-financial-data")
	v.SetDefault("processed_data_prefix", "processed_data")
	v.SetDefault("aws_region", "us-east-1")
	v.SetDefault("stock_symbols", []string{"AAPL", "MSFT", "GOOGL"})
	v.SetDefault("market_indices", []string{"SPX", "NDX"})
	v.SetDefault("api_requests_per_second", 4.0)

	// Optionally read from config file if it exists
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.financeingest")

	// Read config file (ignore if not found)
	_ = v.ReadInConfig()

	v.BindEnv("financial_api_base_url", "FINANCIAL_API_BASE_URL")
	v.BindEnv("financial_api_key_secret_id", "FINANCIAL_API_KEY_SECRET_ID")
	v.BindEnv("raw_data_bucket", "RAW_DATA_S3_BUCKET")
	v.BindEnv("raw_data_prefix", "S3_RAW_DATA_PREFIX")
	v.BindEnv("processed_data_bucket", "PROCESSED_DATA_S3_BUCKET")
	v.BindEnv("processed_data_prefix", "S3_PROCESSED_DATA_PREFIX")
	v.BindEnv("aws_region", "AWS_REGION")
	v.BindEnv("api_requests_per_second", "API_REQUESTS_PER_SECOND")

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return config, nil
}
