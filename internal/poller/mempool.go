package poller

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rawlake/ingest-service/internal/domain"
	"github.com/rawlake/ingest-service/internal/storage"
)

// MempoolPoller ingests recently observed mempool transactions, deduplicated
// by txid for the process lifetime.
type MempoolPoller struct {
	source       TransactionSource
	writer       storage.ObjectWriter
	seen         *SeenSet[string]
	interval     time.Duration
	retryBackoff time.Duration
	now          func() time.Time
	newID        func() string
	log          *zap.Logger
}

// NewMempoolPoller creates a mempool poller. The seen-set is injected so
// callers own the dedup state.
func NewMempoolPoller(source TransactionSource, writer storage.ObjectWriter, seen *SeenSet[string], interval time.Duration, log *zap.Logger) *MempoolPoller {
	return &MempoolPoller{
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
func (p *MempoolPoller) Run(ctx context.Context) {
	runLoop(ctx, p.interval, p.PollOnce)
}

// PollOnce fetches one batch and persists every unseen transaction, in
// upstream order. A fetch failure ends the iteration without touching the
// seen-set or storage.
func (p *MempoolPoller) PollOnce(ctx context.Context) {
	txs, err := p.source.RecentTransactions(ctx)
	if err != nil {
		p.log.Warn("Mempool fetch failed", zap.Error(err))
		pollTotal.WithLabelValues("mempool", "error").Inc()
		return
	}

	fetchedAt := domain.FormatISO(p.now())
	day := storage.Day(p.now())

	for _, tx := range txs {
		txid := extractTxID(tx)
		if txid == "" {
			// No natural identifier: store under a synthetic one
			// rather than drop. Such items can never be
			// deduplicated across iterations.
			txid = p.newID()
		}
		if p.seen.Contains(txid) {
			continue
		}

		key := storage.MempoolKey(day, txid)
		record := domain.RawFeedRecord{
			Source:    domain.FeedSource,
			Kind:      domain.KindMempoolRecent,
			FetchedAt: fetchedAt,
			Data:      tx,
		}

		if err := putWithRetry(ctx, p.writer, p.retryBackoff, key, record); err != nil {
			p.log.Error("Failed to store mempool transaction",
				zap.String("key", key),
				zap.Error(err))
			storeFailures.WithLabelValues("mempool").Inc()
		} else {
			p.log.Info("Mempool transaction saved", zap.String("key", key))
			itemsStored.WithLabelValues("mempool").Inc()
		}

		// Seen once a write was attempted, successful or not.
		p.seen.Add(txid)
	}

	pollTotal.WithLabelValues("mempool", "ok").Inc()
}
