// Package metrics defines the custom Prometheus metrics exposed on /metrics.
// It is the single source of truth for metric names, labels, and help strings.
// Registration happens via promauto at package initialization.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tally"

// RegistrationsTotal counts completed account registrations.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts registered.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// AccountsDeletedTotal counts account deletions.
var AccountsDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "accounts_deleted_total",
		Help:      "Total number of accounts deleted.",
	},
)

// CalculationOpsTotal counts successful calculation operations.
// Labels:
//   - operation: "create", "list", "get", "update", or "delete"
//   - type: the calculation type, or "" for operations without one
var CalculationOpsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "calculation_ops_total",
		Help:      "Total number of successful calculation operations.",
	},
	[]string{"operation", "type"},
)

// ArithmeticOpsTotal counts the stateless arithmetic endpoints' successful
// computations.
// Label:
//   - type: "Add", "Sub", "Multiply", or "Divide"
var ArithmeticOpsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "arithmetic_ops_total",
		Help:      "Total number of standalone arithmetic computations.",
	},
	[]string{"type"},
)

// CalculationRejectionsTotal counts calculations rejected before persistence.
// Label:
//   - reason: "division_by_zero" or "invalid_type"
var CalculationRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "calculation_rejections_total",
		Help:      "Total number of calculations rejected by validation.",
	},
	[]string{"reason"},
)
