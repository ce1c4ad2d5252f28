// Package progress turns a deposit history into totals, percent to goal
// and the motivational copy shown on the dashboard.
package progress

import (
	"time"

	"ahorros.backend/internal/domain/entities"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
)

const (
	MessageInactive  = "Hace un tiempo que no vemos crecer tu ahorro. ¡Ánimo!"
	MessageComplete  = "¡Meta alcanzada! Felicitaciones."
	MessageHalfway   = "¡Sigue así, cada aporte te acerca más al campamento."
	MessageQuarter   = "¡Vas muy bien! Ya superaste el 25% de tu meta."
	MessageFirstStep = "¡Excelente! Ya diste el primer paso en tu plan de ahorro."
)

const displayPlaces = 2

var (
	hundred = decimal.NewFromInt(100)
	half    = decimal.NewFromInt(50)
	quarter = decimal.NewFromInt(25)
)

// Aggregator computes progress summaries. It holds no state besides its settings.
type Aggregator struct {
	defaultGoal decimal.Decimal
	inactivity  time.Duration
	now         func() time.Time
}

// NewAggregator creates an aggregator. defaultGoal is used whenever a caller
// passes a non-positive goal; now may be nil.
func NewAggregator(defaultGoal decimal.Decimal, inactivity time.Duration, now func() time.Time) *Aggregator {
	if now == nil {
		now = time.Now
	}
	return &Aggregator{defaultGoal: defaultGoal, inactivity: inactivity, now: now}
}

// DefaultGoal returns the goal used when none is configured
func (a *Aggregator) DefaultGoal() decimal.Decimal {
	return a.defaultGoal
}

// GoalOr returns goal when positive, the default goal otherwise
func (a *Aggregator) GoalOr(goal decimal.Decimal) decimal.Decimal {
	if goal.IsPositive() {
		return goal
	}
	return a.defaultGoal
}

// Summarize aggregates deposits against goal
func (a *Aggregator) Summarize(deposits []*entities.Deposit, goal decimal.Decimal) entities.ProgressSummary {
	goal = a.GoalOr(goal)
	total := Total(deposits)
	percent := Percent(total, goal)

	var last null.Time
	for _, d := range deposits {
		if d == nil {
			continue
		}
		if !last.Valid || d.CreatedAt.After(last.Time) {
			last = null.TimeFrom(d.CreatedAt)
		}
	}

	remaining := goal.Sub(total)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	return entities.ProgressSummary{
		TotalSaved:          total.Round(displayPlaces),
		Goal:                goal,
		ProgressPercent:     percent.Round(displayPlaces),
		RemainingAmount:     remaining.Round(displayPlaces),
		MotivationalMessage: a.MotivationalMessage(percent, last),
		LastDepositDate:     last,
		DepositCount:        countNonNil(deposits),
	}
}

// MotivationalMessage picks the dashboard copy. Inactivity wins over progress.
func (a *Aggregator) MotivationalMessage(percent decimal.Decimal, lastDeposit null.Time) string {
	if lastDeposit.Valid && lastDeposit.Time.Before(a.now().Add(-a.inactivity)) {
		return MessageInactive
	}
	switch {
	case percent.Equal(hundred):
		return MessageComplete
	case percent.GreaterThanOrEqual(half):
		return MessageHalfway
	case percent.GreaterThanOrEqual(quarter):
		return MessageQuarter
	default:
		return MessageFirstStep
	}
}

// Total sums deposit amounts exactly
func Total(deposits []*entities.Deposit) decimal.Decimal {
	total := decimal.Zero
	for _, d := range deposits {
		if d != nil {
			total = total.Add(d.Amount)
		}
	}
	return total
}

// Percent returns total/goal*100 clamped to [0, 100], unrounded
func Percent(total, goal decimal.Decimal) decimal.Decimal {
	if !goal.IsPositive() {
		return decimal.Zero
	}
	p := total.Div(goal).Mul(hundred)
	switch {
	case p.GreaterThan(hundred):
		return hundred
	case p.IsNegative():
		return decimal.Zero
	}
	return p
}

func countNonNil(deposits []*entities.Deposit) int {
	n := 0
	for _, d := range deposits {
		if d != nil {
			n++
		}
	}
	return n
}
