package storage

import "context"

// ObjectStore is the object-storage capability the pipelines depend on.
// Implementations are expected to be safe for sequential reuse; the
// pipelines never call them concurrently.
type ObjectStore interface {
	// Get returns the full body of the object at bucket/key.
	Get(ctx context.Context, bucket, key string) ([]byte, error)

	// Put writes body to bucket/key with the given content type,
	// overwriting any existing object.
	Put(ctx context.Context, bucket, key string, body []byte, contentType string) error
}
