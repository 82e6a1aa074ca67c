package service

import "context"

// EventIngester defines the interface for the synchronous ingest pipeline.
type EventIngester interface {
	// Ingest normalizes one untrusted payload and writes it durably.
	// On success it returns the bucket and key of the stored object.
	Ingest(ctx context.Context, payload map[string]interface{}) (bucket, key string, err error)
}
