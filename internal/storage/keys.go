package storage

import (
	"strconv"
	"time"
)

// Storage keys are deterministic: the same (day, identifier) pair always
// yields the same key, so a retried write overwrites instead of
// duplicating. The date segment lets downstream consumers prune by day.

const ndjsonExt = ".jsonl"

// Day renders t as the YYYY-MM-DD partition value.
func Day(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// EventKey places a web event under its day partition.
func EventKey(tsISO, eventID string) string {
	return "web2/date=" + tsISO[:10] + "/event_" + eventID + ndjsonExt
}

// MempoolKey places a mempool transaction under its fetch-day partition.
func MempoolKey(day, txid string) string {
	return "chain/mempool/date=" + day + "/tx_" + txid + ndjsonExt
}

// BlockKey places a block under its fetch-day partition, identified by
// height and block hash.
func BlockKey(day string, height int64, id string) string {
	return "chain/blocks/date=" + day + "/block_" + strconv.FormatInt(height, 10) + "_" + id + ndjsonExt
}
