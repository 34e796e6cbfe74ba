// Package ingest pulls financial data from the external data-source API and
// stores the unmodified payloads in the raw storage area. Normalization is
// not done here; raw objects are picked up later by the event-driven
// processor.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"resty.dev/v3"

	"financeingest/internal/normalize"
	"financeingest/internal/objectkey"
	"financeingest/internal/ratelimit"
	"financeingest/internal/storage"
)

const (
	// apiTimeout bounds each data-source API call. Fail fast, no retries;
	// recovery is the next scheduled run.
	apiTimeout = 30 * time.Second

	dateLayout = "2006-01-02"
)

// Ingestor fetches data from the external API and writes raw objects.
type Ingestor struct {
	api     *resty.Client
	store   storage.ObjectStore
	bucket  string
	prefix  string
	limiter *ratelimit.Limiter
	logger  *slog.Logger
	now     func() time.Time
}

// New creates an Ingestor writing raw objects to bucket under prefix.
func New(baseURL, apiKey string, store storage.ObjectStore, bucket, prefix string, limiter *ratelimit.Limiter, logger *slog.Logger) *Ingestor {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetAuthToken(apiKey).
		SetTimeout(apiTimeout)

	return &Ingestor{
		api:     client,
		store:   store,
		bucket:  bucket,
		prefix:  prefix,
		limiter: limiter,
		logger:  logger,
		now:     time.Now,
	}
}

// IngestCompanyFinancials fetches financial statements for symbol and writes
// them unmodified to the raw storage area. Returns the written key.
func (i *Ingestor) IngestCompanyFinancials(ctx context.Context, symbol, period string) (string, error) {
	i.logger.Info("ingesting company financials", "symbol", symbol, "period", period)

	body, err := i.fetch(ctx, fmt.Sprintf("financials/%s", symbol), map[string]string{
		"symbol": symbol,
		"period": period,
	})
	if err != nil {
		return "", err
	}

	return i.upload(ctx, body, normalize.DataTypeCompanyFinancials)
}

// IngestMarketData fetches historical data for a market index between
// fromDate and toDate and writes it unmodified to the raw storage area.
// Returns the written key.
func (i *Ingestor) IngestMarketData(ctx context.Context, marketIndex, fromDate, toDate string) (string, error) {
	i.logger.Info("ingesting market data", "index", marketIndex, "from", fromDate, "to", toDate)

	body, err := i.fetch(ctx, fmt.Sprintf("market/%s/historical", marketIndex), map[string]string{
		"index": marketIndex,
		"from":  fromDate,
		"to":    toDate,
	})
	if err != nil {
		return "", err
	}

	return i.upload(ctx, body, normalize.DataTypeMarketData)
}

// RunDailyIngestion ingests quarterly financials for each symbol and
// yesterday-to-today market data for each index, sequentially. Per-item
// failures are logged and skipped; only the successfully written keys are
// returned.
func (i *Ingestor) RunDailyIngestion(ctx context.Context, symbols, marketIndices []string) []string {
	today := i.now().UTC().Format(dateLayout)
	yesterday := i.now().UTC().AddDate(0, 0, -1).Format(dateLayout)
	i.logger.Info("starting daily ingestion", "date", today)

	var keys []string

	for _, symbol := range symbols {
		key, err := i.IngestCompanyFinancials(ctx, symbol, "quarterly")
		if err != nil {
			i.logger.Error("failed to ingest financials", "symbol", symbol, "error", err)
			continue
		}
		keys = append(keys, key)
	}

	for _, marketIndex := range marketIndices {
		key, err := i.IngestMarketData(ctx, marketIndex, yesterday, today)
		if err != nil {
			i.logger.Error("failed to ingest market data", "index", marketIndex, "error", err)
			continue
		}
		keys = append(keys, key)
	}

	i.logger.Info("daily ingestion completed", "ingested", len(keys))
	return keys
}

// fetch performs one API call and returns the raw response body.
func (i *Ingestor) fetch(ctx context.Context, endpoint string, params map[string]string) ([]byte, error) {
	if err := i.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	resp, err := i.api.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(endpoint)

	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", endpoint, classifyTransport(err))
	}

	if !resp.IsSuccess() {
		return nil, fmt.Errorf("fetch %s: %w", endpoint, classifyStatus(resp.StatusCode()))
	}

	body := resp.Bytes()
	if !json.Valid(body) {
		return nil, fmt.Errorf("fetch %s: %w", endpoint, &APIError{
			Type:    ErrorTypeFormat,
			Message: "response body is not valid JSON",
		})
	}

	return body, nil
}

// upload writes a raw payload under the dated key scheme and returns the key.
func (i *Ingestor) upload(ctx context.Context, body []byte, dataType string) (string, error) {
	now := i.now().UTC()
	date := now.Format(dateLayout)
	key := objectkey.Raw(i.prefix, dataType, date, objectkey.FileName(dataType, date, now))

	if err := i.store.Put(ctx, i.bucket, key, body, "application/json"); err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}

	i.logger.Info("uploaded raw data", "bucket", i.bucket, "key", key, "bytes", len(body))
	return key, nil
}
