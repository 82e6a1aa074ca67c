package poller

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rawlake/ingest-service/internal/domain"
	"github.com/rawlake/ingest-service/internal/storage"
)

// BlockPoller ingests recent blocks, deduplicated by height for the process
// lifetime.
type BlockPoller struct {
	source       BlockSource
	writer       storage.ObjectWriter
	seen         *SeenSet[int64]
	interval     time.Duration
	retryBackoff time.Duration
	now          func() time.Time
	newID        func() string
	log          *zap.Logger
}

// NewBlockPoller creates a block poller. The seen-set is injected so
// callers own the dedup state.
func NewBlockPoller(source BlockSource, writer storage.ObjectWriter, seen *SeenSet[int64], interval time.Duration, log *zap.Logger) *BlockPoller {
	return &BlockPoller{
		source:       source,
		writer:       writer,
		seen:         seen,
		interval:     interval,
		retryBackoff: time.Second,
		now:          time.Now,
		newID:        func() string { return uuid.New().String() },
		log:          log,
	}
}

// Run polls immediately, then on the configured interval until ctx is done.
func (p *BlockPoller) Run(ctx context.Context) {
	runLoop(ctx, p.interval, p.PollOnce)
}

// PollOnce fetches one batch and persists every unseen block, in upstream
// order. Items without a valid non-negative height are dropped entirely:
// no write, no seen-set mutation.
func (p *BlockPoller) PollOnce(ctx context.Context) {
	blocks, err := p.source.Blocks(ctx)
	if err != nil {
		p.log.Warn("Blocks fetch failed", zap.Error(err))
		pollTotal.WithLabelValues("blocks", "error").Inc()
		return
	}

	fetchedAt := domain.FormatISO(p.now())
	day := storage.Day(p.now())

	for _, b := range blocks {
		height, id, ok := extractBlock(b)
		if !ok {
			continue
		}
		if p.seen.Contains(height) {
			continue
		}
		if id == "" {
			id = p.newID()
		}

		key := storage.BlockKey(day, height, id)
		record := domain.RawFeedRecord{
			Source:    domain.FeedSource,
			Kind:      domain.KindBlock,
			FetchedAt: fetchedAt,
			Data:      b,
		}

		if err := putWithRetry(ctx, p.writer, p.retryBackoff, key, record); err != nil {
			p.log.Error("Failed to store block",
				zap.Int64("height", height),
				zap.String("key", key),
				zap.Error(err))
			storeFailures.WithLabelValues("blocks").Inc()
		} else {
			p.log.Info("Block saved",
				zap.Int64("height", height),
				zap.String("key", key))
			itemsStored.WithLabelValues("blocks").Inc()
		}

		// Seen once a write was attempted, successful or not.
		p.seen.Add(height)
	}

	pollTotal.WithLabelValues("blocks", "ok").Inc()
}
