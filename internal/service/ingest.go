package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/rawlake/ingest-service/internal/normalizer"
	"github.com/rawlake/ingest-service/internal/storage"
)

// IngestService runs normalize → key → durable put for one payload.
type IngestService struct {
	normalizer *normalizer.Normalizer
	writer     storage.ObjectWriter
	log        *zap.Logger
}

// NewIngestService creates a new ingest service
func NewIngestService(n *normalizer.Normalizer, writer storage.ObjectWriter, log *zap.Logger) *IngestService {
	return &IngestService{
		normalizer: n,
		writer:     writer,
		log:        log,
	}
}

// Ingest processes a single event payload. A validation failure performs no
// write; a retried request with the same event ID and day overwrites the
// previous object.
func (s *IngestService) Ingest(ctx context.Context, payload map[string]interface{}) (string, string, error) {
	event, err := s.normalizer.Normalize(payload)
	if err != nil {
		return "", "", err
	}

	key := storage.EventKey(event.TS, event.EventID)

	if err := s.writer.PutLine(ctx, key, event); err != nil {
		s.log.Error("Failed to persist event",
			zap.String("event_id", event.EventID),
			zap.String("key", key),
			zap.Error(err))
		return "", "", err
	}

	s.log.Info("Event persisted",
		zap.String("event_id", event.EventID),
		zap.String("type", event.Type),
		zap.String("key", key))

	return s.writer.Bucket(), key, nil
}
