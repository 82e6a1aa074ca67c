package poller

import "github.com/prometheus/client_golang/prometheus"

var (
	pollTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "ingest_poll_total", Help: "Poll iterations"},
		[]string{"feed", "status"},
	)
	itemsStored = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "ingest_items_stored_total", Help: "Feed items written to the raw bucket"},
		[]string{"feed"},
	)
	storeFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "ingest_store_failures_total", Help: "Feed item writes that failed after retries"},
		[]string{"feed"},
	)
)

func init() {
	prometheus.MustRegister(pollTotal, itemsStored, storeFailures)
}
