// Package metrics holds the Prometheus metrics of the clinic service. They
// are registered with the default registry at init time via promauto and
// served on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "vetclinic"

// Operations recorded by AuthOutcomesTotal.
const (
	OpLogin          = "login"
	OpRegister       = "register"
	OpChangePassword = "change_password"
)

// Outcomes recorded by AuthOutcomesTotal.
const (
	OutcomeSuccess       = "success"
	OutcomeNoMatch       = "no_match"
	OutcomeUsernameTaken = "username_taken"
	OutcomeEmailTaken    = "email_taken"
	OutcomeNotFound      = "not_found"
	OutcomeWrongPassword = "wrong_password"
	OutcomeInvalid       = "invalid"
	OutcomeError         = "error"
)

// AuthOutcomesTotal counts account operations by result.
// Labels:
//   - operation: login, register or change_password
//   - outcome: one of the Outcome* constants
var AuthOutcomesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_outcomes_total",
		Help:      "Total number of account operations, by operation and outcome.",
	},
	[]string{"operation", "outcome"},
)

// PasswordHashDuration measures bcrypt hashing time.
var PasswordHashDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "password_hash_duration_seconds",
		Help:      "Time spent hashing a password.",
		Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2},
	},
)

// ValidationFailuresTotal counts rejected field values by validator.
// Label:
//   - rule: rut, phone or date
var ValidationFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "validation_failures_total",
		Help:      "Total number of field values rejected by a validator.",
	},
	[]string{"rule"},
)

func RecordAuthOutcome(operation, outcome string) {
	AuthOutcomesTotal.WithLabelValues(operation, outcome).Inc()
}

func ObservePasswordHash(d time.Duration) {
	PasswordHashDuration.Observe(d.Seconds())
}

func RecordValidationFailure(rule string) {
	ValidationFailuresTotal.WithLabelValues(rule).Inc()
}
