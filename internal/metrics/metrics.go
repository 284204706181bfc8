// Package metrics exposes prometheus counters for authentication outcomes.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Operations.
const (
	OpSignup = "signup"
	OpLogin  = "login"
	OpVerify = "verify"
)

// Outcomes.
const (
	OutcomeSuccess          = "success"
	OutcomeUserExists       = "user_exists"
	OutcomeUserNotFound     = "user_not_found"
	OutcomeEmailNotFound    = "email_not_found"
	OutcomeInvalidPassword  = "invalid_password"
	OutcomeTokenExpired     = "token_expired"
	OutcomeTokenInvalid     = "token_invalid"
	OutcomeStoreUnavailable = "store_unavailable"
	OutcomeError            = "error"
)

// Metrics holds the auth counters. A nil *Metrics records nothing.
type Metrics struct {
	Attempts *prometheus.CounterVec
}

// New creates the auth counters and registers them with reg.
// Panics if registration fails (following prometheus convention).
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Attempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "ipo_auth",
				Name:      "attempts_total",
				Help:      "Total number of authentication operations by operation and outcome",
			},
			[]string{"operation", "outcome"},
		),
	}

	reg.MustRegister(m.Attempts)

	return m
}

// Record increments the counter for operation and outcome.
func (m *Metrics) Record(operation, outcome string) {
	if m == nil {
		return
	}
	m.Attempts.WithLabelValues(operation, outcome).Inc()
}
