// Package metrics defines and registers all custom Prometheus metrics for the
// staffdesk web UI. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default registry at import time via promauto; the
// echoprometheus handler on /metrics exposes them alongside the HTTP
// middleware series.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "staffdesk"

// ── Backend client metrics ────────────────────────────────────────────────────

// BackendRequestsTotal counts round trips to the backend REST API.
// Labels:
//   - method: HTTP method (GET, POST, PATCH, DELETE)
//   - resource: "employees" or "time-reports"
//   - code: numeric HTTP status, or "transport_error" when the backend was unreachable
var BackendRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_requests_total",
		Help:      "Total number of requests issued to the backend API.",
	},
	[]string{"method", "resource", "code"},
)

// BackendRequestDuration measures backend round-trip latency.
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of backend API round trips.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "resource"},
)

// ── UI action metrics ─────────────────────────────────────────────────────────

// ActionsTotal counts user-initiated actions by outcome.
// Labels:
//   - action: "add_employee", "remove_employee", "submit_report",
//     "toggle_approval", "delete_report", "toggle_role"
//   - outcome: "success", "error", or "rejected" (client-side validation)
var ActionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "actions_total",
		Help:      "Total number of user actions, by action and outcome.",
	},
	[]string{"action", "outcome"},
)

// Action and outcome label values.
const (
	ActionAddEmployee    = "add_employee"
	ActionRemoveEmployee = "remove_employee"
	ActionSubmitReport   = "submit_report"
	ActionToggleApproval = "toggle_approval"
	ActionDeleteReport   = "delete_report"
	ActionToggleRole     = "toggle_role"

	OutcomeSuccess  = "success"
	OutcomeError    = "error"
	OutcomeRejected = "rejected"
)
