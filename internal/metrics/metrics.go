// Package metrics defines and registers all custom Prometheus metrics.
// It is the single source of truth for metric names, labels, and help
// strings, and carries no dependency on any other layer so both core
// services and infrastructure can increment counters.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "backoffice"

// LeadsReceivedTotal counts public contact-form submissions.
// Label:
//   - result: "created", "duplicate", or "invalid"
var LeadsReceivedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "leads_received_total",
		Help:      "Total number of contact-form submissions, by outcome.",
	},
	[]string{"result"},
)

// LoginAttemptsTotal counts advisor login attempts.
// Label:
//   - result: "success" or "failure"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of advisor login attempts, by result.",
	},
	[]string{"result"},
)

// RelationshipMutationsTotal counts relationship pair writes.
// Label:
//   - op: "add" or "remove"
var RelationshipMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "relationship_mutations_total",
		Help:      "Total number of relationship pair additions and removals.",
	},
	[]string{"op"},
)

// PIIDecryptFailuresTotal counts travel document decryption failures
// surfaced to the CRM as a placeholder value.
var PIIDecryptFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "pii_decrypt_failures_total",
		Help:      "Total number of travel document numbers that failed to decrypt.",
	},
)

// NotifyQueueDepth tracks pending notifications in each dispatcher worker
// channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var NotifyQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notify_queue_depth",
		Help:      "Current number of lead notifications pending per worker.",
	},
	[]string{"worker_id"},
)

// NotifySendTotal counts notification delivery attempts.
// Label:
//   - result: "ok" or "error"
var NotifySendTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notify_send_total",
		Help:      "Total number of lead notification deliveries, by result.",
	},
	[]string{"result"},
)
