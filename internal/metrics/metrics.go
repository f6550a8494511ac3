// Package metrics holds the Prometheus collectors shared by the store,
// the search index and the reference session.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// itemMutations counts committed writes.
	// Labels: op (create, update, delete, share, unshare)
	itemMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "grove",
		Name:      "item_mutations_total",
		Help:      "Total committed item mutations",
	}, []string{"op"})

	// searchQueries counts queries by the strategy that served them.
	// Labels: strategy (trigram, substring, empty)
	searchQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "grove",
		Name:      "search_queries_total",
		Help:      "Total search queries by strategy",
	}, []string{"strategy"})

	// searchFailures counts queries the index rejected and that were
	// answered with an empty result.
	searchFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "grove",
		Name:      "search_failures_total",
		Help:      "Total search queries recovered into an empty result",
	})

	// referenceResolutions counts #N lookups.
	// Labels: outcome (hit, unset, out_of_range, expired)
	referenceResolutions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "grove",
		Name:      "reference_resolutions_total",
		Help:      "Total reference session lookups by outcome",
	}, []string{"outcome"})

	rebuildDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "grove",
		Name:      "index_rebuild_duration_seconds",
		Help:      "Time taken by full search index rebuilds",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10},
	})
)

// Search strategies
const (
	StrategyTrigram   = "trigram"
	StrategySubstring = "substring"
	StrategyEmpty     = "empty"
)

// Reference lookup outcomes
const (
	OutcomeHit        = "hit"
	OutcomeUnset      = "unset"
	OutcomeOutOfRange = "out_of_range"
	OutcomeExpired    = "expired"
)

func RecordMutation(op string) {
	itemMutations.WithLabelValues(op).Inc()
}

func RecordSearch(strategy string) {
	searchQueries.WithLabelValues(strategy).Inc()
}

func RecordSearchFailure() {
	searchFailures.Inc()
}

func RecordResolution(outcome string) {
	referenceResolutions.WithLabelValues(outcome).Inc()
}

func RecordRebuild(d time.Duration) {
	rebuildDuration.Observe(d.Seconds())
}
