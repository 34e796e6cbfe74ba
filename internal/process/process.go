// Package process reacts to raw-object-created events: it loads the raw
// object, infers its data type from the key, normalizes the payload and
// writes the result to the processed storage area at the derived key.
package process

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"financeingest/internal/normalize"
	"financeingest/internal/objectkey"
	"financeingest/internal/storage"
)

// Notification names one newly created raw object.
type Notification struct {
	Bucket string
	Key    string
}

// Event carries a batch of object-created notifications.
type Event struct {
	Records []Notification
}

// Response is the batch-level acknowledgment returned to the event trigger.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

// Processor handles object-created events for the raw storage area.
type Processor struct {
	store           storage.ObjectStore
	normalizer      *normalize.Normalizer
	rawPrefix       string
	processedBucket string
	processedPrefix string
	logger          *slog.Logger
}

// New creates a Processor writing normalized objects to processedBucket
// under processedPrefix. rawPrefix is the expected top-level prefix of raw
// keys, used to infer the data type.
func New(store storage.ObjectStore, normalizer *normalize.Normalizer, rawPrefix, processedBucket, processedPrefix string, logger *slog.Logger) *Processor {
	return &Processor{
		store:           store,
		normalizer:      normalizer,
		rawPrefix:       rawPrefix,
		processedBucket: processedBucket,
		processedPrefix: processedPrefix,
		logger:          logger,
	}
}

// Handle processes every notification in the event, in delivery order. The
// first failure aborts the whole invocation so the trigger's retry mechanism
// sees the batch as failed; a success response is returned only when every
// notification processed cleanly. This is deliberately stricter than the
// puller's per-item tolerance.
func (p *Processor) Handle(ctx context.Context, event Event) (Response, error) {
	for _, record := range event.Records {
		if err := p.processObject(ctx, record.Bucket, record.Key); err != nil {
			p.logger.Error("failed to process object",
				"bucket", record.Bucket, "key", record.Key, "error", err)
			return Response{}, fmt.Errorf("process %s/%s: %w", record.Bucket, record.Key, err)
		}
	}

	return Response{
		StatusCode: 200,
		Body:       "data processing complete",
	}, nil
}

// processObject runs the load, normalize, store sequence for one raw object.
func (p *Processor) processObject(ctx context.Context, bucket, key string) error {
	p.logger.Info("processing raw object", "bucket", bucket, "key", key)

	raw, err := p.loadRaw(ctx, bucket, key)
	if err != nil {
		return err
	}

	dataType := objectkey.DataType(key, p.rawPrefix)
	if dataType == "unknown" {
		p.logger.Warn("could not determine data type from key", "key", key)
	}

	processed, err := p.normalizer.Apply(raw, dataType)
	if err != nil {
		return err
	}

	processedKey := objectkey.Processed(key, p.processedPrefix)
	if err := p.store.Put(ctx, p.processedBucket, processedKey, processed, "application/json"); err != nil {
		return err
	}

	p.logger.Info("stored processed data",
		"bucket", p.processedBucket, "key", processedKey)
	return nil
}

// loadRaw fetches a raw object and verifies it is valid JSON.
func (p *Processor) loadRaw(ctx context.Context, bucket, key string) ([]byte, error) {
	raw, err := p.store.Get(ctx, bucket, key)
	if err != nil {
		return nil, err
	}
	if !json.Valid(raw) {
		return nil, &normalize.FormatError{
			DataType: objectkey.DataType(key, p.rawPrefix),
			Cause:    fmt.Errorf("object %s is not valid JSON", key),
		}
	}
	return raw, nil
}
