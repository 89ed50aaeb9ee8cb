// Package metrics defines and registers the custom Prometheus metrics of the
// task board. It is the single source of truth for metric names, labels and
// help strings.
//
// Metrics are registered with the default registry on package init through
// promauto; HTTP request metrics come from echoprometheus in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "taskboard"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "invalid_credentials", "missing_field", "throttled" or "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// GuardDecisionsTotal counts access guard outcomes per page.
// Labels:
//   - page: the route pattern (e.g. "/projects")
//   - outcome: "allowed", "anonymous", "forbidden" or "error"
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of access guard decisions, by page and outcome.",
	},
	[]string{"page", "outcome"},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuditEventsPersistedTotal counts audit events written to the store.
// Label:
//   - kind: the audit kind (e.g. "login_failed")
var AuditEventsPersistedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_persisted_total",
		Help:      "Total number of audit events persisted, by kind.",
	},
	[]string{"kind"},
)

// AuditEventsDroppedTotal counts audit events discarded because their worker
// queue was full or the dispatcher was stopped.
var AuditEventsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_dropped_total",
		Help:      "Total number of audit events dropped before persistence.",
	},
)

// AuditWriteErrorsTotal counts failed audit inserts.
var AuditWriteErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_write_errors_total",
		Help:      "Total number of audit events the store rejected.",
	},
)

// AuditQueueDepth tracks the number of events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ── Board metrics ─────────────────────────────────────────────────────────────

// RecordsCreatedTotal counts created board records.
// Label:
//   - entity: "user", "project" or "task"
var RecordsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "records_created_total",
		Help:      "Total number of users, projects and tasks created.",
	},
	[]string{"entity"},
)
