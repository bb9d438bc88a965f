// Package metrics defines the Prometheus collectors shared across the app.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Reaction metrics
var (
	// ReactionsTotal tracks reaction toggles by kind and outcome branch.
	// action is "added", "removed", or "suppressed" (debounced duplicate).
	ReactionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blog_reactions_total",
			Help: "Total reaction toggles by kind and action",
		},
		[]string{"kind", "action"},
	)

	// ReactionDuration tracks the full toggle pipeline latency in seconds.
	ReactionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "blog_reaction_duration_seconds",
			Help:    "Reaction toggle duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"kind"},
	)
)

// Store metrics
var (
	// MongoOpsTotal tracks MongoDB operations by operation and status.
	MongoOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mongo_operations_total",
			Help: "Total MongoDB operations by operation and status",
		},
		[]string{"operation", "status"},
	)

	// RedisOpsTotal tracks Redis operations by operation and status.
	RedisOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redis_operations_total",
			Help: "Total Redis operations by operation and status",
		},
		[]string{"operation", "status"},
	)
)

// Auth metrics
var (
	// LoginAttemptsTotal tracks login attempts by result.
	LoginAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "login_attempts_total",
			Help: "Total login attempts by result (success/failure)",
		},
		[]string{"result"},
	)
)
