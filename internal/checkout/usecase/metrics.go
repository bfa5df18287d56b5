package usecase

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels
const (
	outcomeSuccess   = "success"
	outcomeFailure   = "failure"
	outcomeDuplicate = "duplicate"
	outcomeRejected  = "rejected"
	outcomeInFlight  = "in_flight"
)

// Metrics counts checkout steps by outcome
type Metrics struct {
	steps         *prometheus.CounterVec
	sessionAmount prometheus.Histogram
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		steps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "nutribakery",
				Name:      "checkout_steps_total",
				Help:      "Checkout workflow steps by step and outcome",
			},
			[]string{"step", "outcome"},
		),
		sessionAmount: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "nutribakery",
			Name:      "checkout_session_amount_settlement",
			Help:      "Converted totals of created online checkout sessions",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500},
		}),
	}
	reg.MustRegister(m.steps, m.sessionAmount)
	return m
}

func (m *Metrics) observe(step, outcome string) {
	if m == nil {
		return
	}
	m.steps.WithLabelValues(step, outcome).Inc()
}

func (m *Metrics) observeAmount(v float64) {
	if m == nil {
		return
	}
	m.sessionAmount.Observe(v)
}
