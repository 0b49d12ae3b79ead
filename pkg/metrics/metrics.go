// Package metrics provides Prometheus instrumentation for revlog.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the revlog collectors. A nil *Metrics is valid and records
// nothing, so the core can be wired with or without instrumentation.
type Metrics struct {
	revisionsAppended *prometheus.CounterVec
	appendDuration    prometheus.Histogram
	materializations  *prometheus.CounterVec
	commentsAdded     prometheus.Counter
}

// New registers revlog collectors with the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		revisionsAppended: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "revlog_revisions_appended_total",
			Help: "Revisions appended to entry logs, by result.",
		}, []string{"result"}),
		appendDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "revlog_append_duration_seconds",
			Help:    "Wall time of revision appends including persistence.",
			Buckets: prometheus.DefBuckets,
		}),
		materializations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "revlog_snapshot_materializations_total",
			Help: "Snapshot materializations, by cache outcome.",
		}, []string{"cache"}),
		commentsAdded: factory.NewCounter(prometheus.CounterOpts{
			Name: "revlog_comments_added_total",
			Help: "Comments appended to entry comment logs.",
		}),
	}
}

// ObserveAppend records one append attempt.
func (m *Metrics) ObserveAppend(duration time.Duration, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.revisionsAppended.WithLabelValues(result).Inc()
	if err == nil {
		m.appendDuration.Observe(duration.Seconds())
	}
}

// ObserveMaterialize records one snapshot materialization.
func (m *Metrics) ObserveMaterialize(cacheHit bool) {
	if m == nil {
		return
	}
	outcome := "miss"
	if cacheHit {
		outcome = "hit"
	}
	m.materializations.WithLabelValues(outcome).Inc()
}

// ObserveComment records one comment append.
func (m *Metrics) ObserveComment() {
	if m == nil {
		return
	}
	m.commentsAdded.Inc()
}
