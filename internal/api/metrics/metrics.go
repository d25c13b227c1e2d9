// Package metrics defines and registers all custom Prometheus metrics for
// the school portal. It is the single source of truth for metric names,
// labels, and help strings; the promauto vars register themselves with the
// default registry at init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// LoginsTotal counts login attempts by outcome.
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

// LoginDuration measures the end-to-end duration of a login attempt,
// dominated by the bcrypt comparison.
var LoginDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "login_duration_seconds",
		Help:      "Duration of login attempts from request to response.",
		Buckets:   prometheus.DefBuckets,
	},
)

// GateDecisionsTotal counts route authorization gate outcomes.
// Label:
//   - decision: "allow", "redirect_login" or "redirect_default"
var GateDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_decisions_total",
		Help:      "Total number of route authorization gate decisions.",
	},
	[]string{"decision"},
)

// TokenFailuresTotal counts rejected session tokens.
// Label:
//   - reason: "expired" or "invalid"
var TokenFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_failures_total",
		Help:      "Total number of session tokens rejected during verification.",
	},
	[]string{"reason"},
)

// UsersProvisionedTotal counts accounts created through the API.
// Label:
//   - role: the role assigned to the new account
var UsersProvisionedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_provisioned_total",
		Help:      "Total number of user accounts provisioned, by role.",
	},
	[]string{"role"},
)
