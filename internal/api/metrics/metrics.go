// Package metrics defines and registers all custom Prometheus metrics for the
// hot-properties API. It is the single source of truth for metric names,
// labels, and help strings. Metrics register themselves with the default
// registry at init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "hotproperties"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TokenVerificationsTotal counts cookie token verifications performed by the
// authentication middleware.
// Label:
//   - result: "ok", "malformed", "signature_invalid", "expired", "unknown_subject"
var TokenVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_verifications_total",
		Help:      "Total number of session token verifications, by result.",
	},
	[]string{"result"},
)

// AuthzDecisionsTotal counts route authorization decisions.
// Label:
//   - decision: "permit", "unauthenticated", "forbidden"
var AuthzDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authz_decisions_total",
		Help:      "Total number of route authorization decisions, by outcome.",
	},
	[]string{"decision"},
)

// RateLimitedTotal counts requests rejected by the rate gate before any
// authentication work.
var RateLimitedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of requests rejected by the rate gate.",
	},
)
