package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

// SavingsMetrics records ledger and badge activity.
type SavingsMetrics struct {
	deposits        prometheus.Counter
	amount          prometheus.Histogram
	badges          *prometheus.CounterVec
	receiptFailures prometheus.Counter
}

// NewSavingsMetrics registers the savings metrics on the provided registerer.
// A nil registerer yields a recorder that drops everything.
func NewSavingsMetrics(reg prometheus.Registerer) *SavingsMetrics {
	if reg == nil {
		return &SavingsMetrics{}
	}
	deposits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "deposits_recorded_total",
		Help: "Deposits appended to the ledger.",
	})
	amount := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "deposit_amount",
		Help:    "Amount of recorded deposits.",
		Buckets: []float64{5, 10, 20, 50, 100, 200, 500},
	})
	badges := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "badges_unlocked_total",
		Help: "Badges granted to users.",
	}, []string{"badge"})
	receiptFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "receipt_failures_total",
		Help: "Deposits whose receipt could not be rendered.",
	})
	reg.MustRegister(deposits, amount, badges, receiptFailures)
	return &SavingsMetrics{
		deposits:        deposits,
		amount:          amount,
		badges:          badges,
		receiptFailures: receiptFailures,
	}
}

// ObserveDeposit counts a deposit and records its amount.
func (m *SavingsMetrics) ObserveDeposit(amount decimal.Decimal) {
	if m == nil || m.deposits == nil {
		return
	}
	m.deposits.Inc()
	f, _ := amount.Float64()
	m.amount.Observe(f)
}

// IncBadge counts one granted badge.
func (m *SavingsMetrics) IncBadge(badgeID string) {
	if m == nil || m.badges == nil {
		return
	}
	m.badges.WithLabelValues(normalizeLabel(badgeID)).Inc()
}

// IncReceiptFailure counts a receipt that failed to render.
func (m *SavingsMetrics) IncReceiptFailure() {
	if m == nil || m.receiptFailures == nil {
		return
	}
	m.receiptFailures.Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
