package domain

import "encoding/json"

// FeedSource identifies the upstream provider of the chain feeds.
const FeedSource = "mempool.space"

// Feed record kinds.
const (
	KindMempoolRecent = "mempool_recent"
	KindBlock         = "block"
)

// RawFeedRecord is the passthrough envelope for externally polled chain
// data. Data is the upstream payload, byte for byte as fetched.
type RawFeedRecord struct {
	Source    string          `json:"source"`
	Kind      string          `json:"kind"`
	FetchedAt string          `json:"fetched_at"`
	Data      json.RawMessage `json:"data"`
}
