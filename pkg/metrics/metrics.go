package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SnapshotsDelivered = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "saturnalia_snapshots_delivered_total",
		Help: "Materialized snapshots delivered per collection stream.",
	}, []string{"collection"})

	SubscriptionErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "saturnalia_subscription_errors_total",
		Help: "Errors reported by live collection streams.",
	}, []string{"collection"})

	Mutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "saturnalia_mutations_total",
		Help: "Remote mutations by operation and outcome.",
	}, []string{"operation", "outcome"})

	Checkouts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "saturnalia_checkouts_total",
		Help: "Checkout attempts by outcome.",
	}, []string{"outcome"})

	OrdersProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "saturnalia_orders_processed_total",
		Help: "Pending orders advanced to processing by the background job.",
	})
)

func RecordMutation(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	Mutations.WithLabelValues(operation, outcome).Inc()
}
