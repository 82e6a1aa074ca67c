package poller

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rawlake/ingest-service/internal/storage"
)

// TransactionSource is the upstream half of the mempool loop.
type TransactionSource interface {
	RecentTransactions(ctx context.Context) ([]json.RawMessage, error)
}

// BlockSource is the upstream half of the block loop.
type BlockSource interface {
	Blocks(ctx context.Context) ([]json.RawMessage, error)
}

// putAttempts bounds the write retries for one feed item.
const putAttempts = 3

// runLoop executes fn immediately, then on every interval tick until ctx is
// done. The next tick is consumed only after fn returns, so a loop never
// overlaps itself.
func runLoop(ctx context.Context, interval time.Duration, fn func(context.Context)) {
	fn(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn(ctx)
		}
	}
}

// putWithRetry writes one object with bounded linear backoff. The writer
// itself never retries; the deterministic key makes repeats overwrite.
func putWithRetry(ctx context.Context, writer storage.ObjectWriter, backoff time.Duration, key string, record interface{}) error {
	var lastErr error
	for attempt := 0; attempt < putAttempts; attempt++ {
		if lastErr = writer.PutLine(ctx, key, record); lastErr == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt+1) * backoff):
		}
	}
	return lastErr
}

// extractTxID pulls the natural identifier out of a raw mempool item.
// Returns "" when the item carries no usable txid.
func extractTxID(item json.RawMessage) string {
	var probe struct {
		TxID string `json:"txid"`
	}
	if err := json.Unmarshal(item, &probe); err != nil {
		return ""
	}
	return probe.TxID
}

// extractBlock pulls height and hash out of a raw block item. Items without
// a valid non-negative integer height are unusable: block identity must be
// numeric and ordered.
func extractBlock(item json.RawMessage) (height int64, id string, ok bool) {
	var probe struct {
		Height *int64 `json:"height"`
		ID     string `json:"id"`
	}
	if err := json.Unmarshal(item, &probe); err != nil {
		return 0, "", false
	}
	if probe.Height == nil || *probe.Height < 0 {
		return 0, "", false
	}
	return *probe.Height, probe.ID, true
}
