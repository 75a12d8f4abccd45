// Package metrics exposes Prometheus instrumentation for the checkout engine.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Submission outcomes.
const (
	OutcomeInitiated        = "initiated"
	OutcomeValidationFailed = "validation_failed"
	OutcomeGatewayFailed    = "gateway_failed"
	OutcomeRejected         = "rejected"
	OutcomeDuplicate        = "duplicate"
)

// Metrics tracks checkout sessions, submissions and payment-gateway latency.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	SessionsStarted    prometheus.Counter
	Submissions        *prometheus.CounterVec
	ValidationFailures prometheus.Counter
	PriceFallbacks     prometheus.Counter
	AutofillApplied    *prometheus.CounterVec
	GatewayDuration    *prometheus.HistogramVec
}

// New registers all checkout metrics with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SessionsStarted: factory.NewCounter(prometheus.CounterOpts{
			Name: "checkout_sessions_started_total",
			Help: "Total number of checkout sessions started",
		}),
		Submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "checkout_submissions_total",
			Help: "Total number of checkout submissions by outcome",
		}, []string{"outcome"}),
		ValidationFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "checkout_validation_failures_total",
			Help: "Total number of whole-form validations that did not pass",
		}),
		PriceFallbacks: factory.NewCounter(prometheus.CounterOpts{
			Name: "checkout_price_parse_fallback_total",
			Help: "Total number of price strings that fell back to zero BDT",
		}),
		AutofillApplied: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "checkout_autofill_total",
			Help: "Total number of profile autofill attempts by result",
		}, []string{"result"}),
		GatewayDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "checkout_gateway_request_duration_seconds",
			Help:    "Duration of payment-initiation calls",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"gateway", "result"}),
	}
}

// IncSessionStarted records a new checkout session.
func (m *Metrics) IncSessionStarted() {
	if m == nil {
		return
	}
	m.SessionsStarted.Inc()
}

// IncSubmission records a submission outcome.
func (m *Metrics) IncSubmission(outcome string) {
	if m == nil {
		return
	}
	m.Submissions.WithLabelValues(outcome).Inc()
}

// IncValidationFailure records a failed whole-form validation.
func (m *Metrics) IncValidationFailure() {
	if m == nil {
		return
	}
	m.ValidationFailures.Inc()
}

// IncPriceFallback records a price that could not be parsed.
func (m *Metrics) IncPriceFallback() {
	if m == nil {
		return
	}
	m.PriceFallbacks.Inc()
}

// IncAutofill records an autofill attempt; result is "applied", "unavailable" or "error".
func (m *Metrics) IncAutofill(result string) {
	if m == nil {
		return
	}
	m.AutofillApplied.WithLabelValues(result).Inc()
}

// ObserveGateway records the duration of a payment-initiation call.
// Call with time.Now() at the start of the call.
func (m *Metrics) ObserveGateway(gateway string, start time.Time, err error) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "error"
	}
	m.GatewayDuration.WithLabelValues(gateway, result).Observe(time.Since(start).Seconds())
}
