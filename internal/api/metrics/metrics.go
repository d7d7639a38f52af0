// Package metrics defines and registers the custom Prometheus metrics of the
// quoting portal API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on import via
// promauto; the HTTP request metrics come from echoprometheus in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "quoting_portal"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts register and login attempts.
// Labels:
//   - action: "register" or "login"
//   - result: "success", "invalid_credentials", "email_exists", "invalid_input" or "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of registration and login attempts, by outcome.",
	},
	[]string{"action", "result"},
)

// ── Catalog metrics ───────────────────────────────────────────────────────────

// ProductMutationsTotal counts successful catalog changes.
// Label:
//   - operation: "create", "update" or "delete"
var ProductMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "product_mutations_total",
		Help:      "Total number of catalog changes made by administrators.",
	},
	[]string{"operation"},
)

// ── Quote metrics ─────────────────────────────────────────────────────────────

// QuoteRequestsSubmittedTotal counts accepted quote submissions.
// Label:
//   - result: "created" or "replayed" (Idempotency-Key hit)
var QuoteRequestsSubmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "quote_requests_submitted_total",
		Help:      "Total number of quote requests submitted by clients.",
	},
	[]string{"result"},
)

// QuoteStatusChangesTotal counts status overwrites by the new status.
var QuoteStatusChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "quote_status_changes_total",
		Help:      "Total number of quote request status updates, by new status.",
	},
	[]string{"status"},
)
