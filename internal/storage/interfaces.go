package storage

import "context"

// ObjectWriter is the destination for raw NDJSON objects. Both ingestion
// pipelines share one implementation.
type ObjectWriter interface {
	// EnsureBucket creates the destination bucket when it does not exist.
	// Safe to call repeatedly; never fails because the bucket is present.
	EnsureBucket(ctx context.Context) error

	// PutLine serializes record as a single JSON line and performs one
	// durable put at key. It does not retry; retry policy belongs to the
	// caller.
	PutLine(ctx context.Context, key string, record interface{}) error

	// Bucket returns the destination bucket name.
	Bucket() string
}
