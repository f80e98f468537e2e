// Package metrics defines and registers all custom Prometheus metrics for the
// Vyom storefront. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation (promauto) and served from GET /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "vyom"

// ── Record store metrics ──────────────────────────────────────────────────────

// RecordStoreOperationsTotal counts record store operations.
// Labels:
//   - collection: "users", "products", "orders", "current_session", ...
//   - op: "read", "write", "reset"
//   - result: "ok", "corrupt", "invalid", "error"
var RecordStoreOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "record_store_operations_total",
		Help:      "Total number of record store operations, by collection, operation and result.",
	},
	[]string{"collection", "op", "result"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionsTotal counts session transitions.
// Labels:
//   - event: "login", "register", "logout", "restore"
//   - result: "ok" or the failure kind (e.g. "invalid_credentials", "email_exists")
var SessionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_total",
		Help:      "Total number of session events, by event and result.",
	},
	[]string{"event", "result"},
)

// ── Order metrics ─────────────────────────────────────────────────────────────

// OrdersPlacedTotal counts successful checkouts.
var OrdersPlacedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_placed_total",
		Help:      "Total number of orders placed at checkout.",
	},
)

// OrderValueTotal sums order totals in whole currency units.
var OrderValueTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_value_total",
		Help:      "Sum of order totals placed at checkout.",
	},
)

// ── Try-on metrics ────────────────────────────────────────────────────────────

// TryOnRequestsTotal counts try-on generations.
// Label:
//   - result: "ok", "failed", "duplicate", "no_photo"
var TryOnRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tryon_requests_total",
		Help:      "Total number of try-on generation requests, by result.",
	},
	[]string{"result"},
)

// TryOnDuration measures the external image generation call.
var TryOnDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "tryon_duration_seconds",
		Help:      "Duration of calls to the external try-on image service.",
		Buckets:   []float64{.5, 1, 2.5, 5, 10, 20, 30, 60, 120},
	},
)
