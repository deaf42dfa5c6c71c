// Package metrics provides Prometheus metrics for the relation service.
package metrics

import (
	"time"

	"content-relations/core/reconcile"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// EntitiesReconciled tracks reconciled entities by kind and outcome
	EntitiesReconciled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "content_relations",
			Subsystem: "reconcile",
			Name:      "entities_total",
			Help:      "Total number of reconciled entities by kind and status",
		},
		[]string{"kind", "status"},
	)

	// RelationsInserted tracks relations added by reconciliation
	RelationsInserted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "content_relations",
			Subsystem: "reconcile",
			Name:      "relations_inserted_total",
			Help:      "Total number of relations inserted by kind",
		},
		[]string{"kind"},
	)

	// RelationsDeleted tracks stale relations removed one by one
	RelationsDeleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "content_relations",
			Subsystem: "reconcile",
			Name:      "relations_deleted_total",
			Help:      "Total number of stale relations deleted by kind",
		},
		[]string{"kind"},
	)

	// RelationsCleared tracks entities whose automatic relations were removed in bulk
	RelationsCleared = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "content_relations",
			Subsystem: "reconcile",
			Name:      "cleared_total",
			Help:      "Total number of entities without references whose relations were cleared",
		},
		[]string{"kind"},
	)

	// ReferencesSkipped tracks references that produced no relation
	ReferencesSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "content_relations",
			Subsystem: "reconcile",
			Name:      "references_skipped_total",
			Help:      "Total number of skipped references by reason",
		},
		[]string{"reason"},
	)

	// NotificationDuration tracks the time spent reconciling one notification
	NotificationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "content_relations",
			Subsystem: "reconcile",
			Name:      "notification_duration_seconds",
			Help:      "Duration of notification handling in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"kind", "event"},
	)
)

// Status label values.
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// RecordResults adds the outcome of successful reconciliations.
func RecordResults(results []reconcile.Result) {
	for _, r := range results {
		EntitiesReconciled.WithLabelValues(r.Kind, StatusSuccess).Inc()
		RelationsInserted.WithLabelValues(r.Kind).Add(float64(r.Inserted))
		RelationsDeleted.WithLabelValues(r.Kind).Add(float64(r.Deleted))
		if r.Cleared {
			RelationsCleared.WithLabelValues(r.Kind).Inc()
		}
		for reason, n := range r.Skipped {
			ReferencesSkipped.WithLabelValues(string(reason)).Add(float64(n))
		}
	}
}

// RecordFailure counts entities whose reconciliation was rolled back.
func RecordFailure(kind string, entities int) {
	EntitiesReconciled.WithLabelValues(kind, StatusFailed).Add(float64(entities))
}

// ObserveNotification records how long a notification took.
func ObserveNotification(kind, event string, started time.Time) {
	NotificationDuration.WithLabelValues(kind, event).Observe(time.Since(started).Seconds())
}
