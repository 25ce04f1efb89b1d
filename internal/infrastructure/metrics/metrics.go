package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the workflow counters exported on /metrics.
type Metrics struct {
	CustomersRegistered prometheus.Counter
	LoansApplied        *prometheus.CounterVec
	LoanDecisions       *prometheus.CounterVec
}

// New registers the collectors on reg. Pass prometheus.DefaultRegisterer in
// main and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		CustomersRegistered: f.NewCounter(prometheus.CounterOpts{
			Name: "loans_customers_registered_total",
			Help: "Total number of customer registrations",
		}),
		LoansApplied: f.NewCounterVec(prometheus.CounterOpts{
			Name: "loans_applied_total",
			Help: "Loan applications submitted, by loan type",
		}, []string{"loan_type"}),
		LoanDecisions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "loans_decisions_total",
			Help: "Admin decisions recorded, by resulting status",
		}, []string{"status"}),
	}
}

func (m *Metrics) CustomerRegistered() {
	if m == nil {
		return
	}
	m.CustomersRegistered.Inc()
}

func (m *Metrics) LoanApplied(loanType string) {
	if m == nil {
		return
	}
	m.LoansApplied.WithLabelValues(loanType).Inc()
}

func (m *Metrics) LoanDecided(status string) {
	if m == nil {
		return
	}
	m.LoanDecisions.WithLabelValues(status).Inc()
}
