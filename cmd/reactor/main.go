// Command reactor is the Lambda entrypoint for raw-object-created events.
// It adapts S3 event notifications to the processor, which normalizes each
// raw object into the processed storage area. A failure anywhere in the
// batch fails the invocation so the trigger's retry mechanism kicks in.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"financeingest/internal/config"
	"financeingest/internal/normalize"
	"financeingest/internal/process"
	"financeingest/internal/storage"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(cfg.Region))
	if err != nil {
		logger.Error("failed to load AWS configuration", "error", err)
		os.Exit(1)
	}

	store := storage.NewS3Store(s3.NewFromConfig(awsCfg))
	processor := process.New(store, normalize.New(logger), cfg.RawPrefix, cfg.ProcessedBucket, cfg.ProcessedPrefix, logger)

	lambda.Start(func(ctx context.Context, event events.S3Event) (process.Response, error) {
		batch := process.Event{}
		for _, record := range event.Records {
			batch.Records = append(batch.Records, process.Notification{
				Bucket: record.S3.Bucket.Name,
				Key:    record.S3.Object.Key,
			})
		}
		return processor.Handle(ctx, batch)
	})
}
