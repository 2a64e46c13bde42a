// Package metrics exposes Prometheus collectors for auth outcomes.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Session middleware terminal states.
const (
	OutcomeAccess    = "access"
	OutcomeRefresh   = "refresh"
	OutcomeAnonymous = "anonymous"
	OutcomeError     = "error"
)

var (
	// SessionOutcomes counts session middleware terminals per request.
	SessionOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gatehouse",
		Subsystem: "session",
		Name:      "outcomes_total",
		Help:      "Session middleware terminal states (access, refresh, anonymous, error).",
	}, []string{"outcome"})

	// LoginAttempts counts login results.
	LoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gatehouse",
		Subsystem: "auth",
		Name:      "login_attempts_total",
		Help:      "Login attempts by result (success, invalid_credentials, error).",
	}, []string{"result"})

	// Registrations counts registration results.
	Registrations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gatehouse",
		Subsystem: "auth",
		Name:      "registrations_total",
		Help:      "Registration attempts by result (success, conflict, error).",
	}, []string{"result"})
)

// Handler returns the /metrics endpoint handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
