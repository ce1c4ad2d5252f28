package progress

import (
	"testing"
	"time"

	"ahorros.backend/internal/domain/entities"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/volatiletech/null/v8"
)

var now = time.Date(2026, 5, 20, 12, 0, 0, 0, time.UTC)

func newAggregator() *Aggregator {
	return NewAggregator(decimal.NewFromInt(500), 30*24*time.Hour, func() time.Time { return now })
}

func dep(amount string, at time.Time) *entities.Deposit {
	return &entities.Deposit{Amount: decimal.RequireFromString(amount), CreatedAt: at}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestSummarize_ThreeDeposits(t *testing.T) {
	a := newAggregator()
	deposits := []*entities.Deposit{
		dep("100", now.Add(-time.Hour)),
		dep("75", now.Add(-48*time.Hour)),
		dep("50", now.Add(-72*time.Hour)),
	}

	s := a.Summarize(deposits, decimal.NewFromInt(500))

	assert.True(t, s.TotalSaved.Equal(dec("225")), s.TotalSaved.String())
	assert.True(t, s.ProgressPercent.Equal(dec("45")), s.ProgressPercent.String())
	assert.True(t, s.RemainingAmount.Equal(dec("275")), s.RemainingAmount.String())
	assert.Equal(t, 3, s.DepositCount)
	assert.Equal(t, null.TimeFrom(now.Add(-time.Hour)), s.LastDepositDate)
	assert.Equal(t, MessageQuarter, s.MotivationalMessage)
}

func TestSummarize_Empty(t *testing.T) {
	s := newAggregator().Summarize(nil, decimal.NewFromInt(500))

	assert.True(t, s.TotalSaved.IsZero())
	assert.True(t, s.ProgressPercent.IsZero())
	assert.True(t, s.RemainingAmount.Equal(dec("500")))
	assert.False(t, s.LastDepositDate.Valid)
	assert.Equal(t, MessageFirstStep, s.MotivationalMessage)
}

func TestSummarize_ClampsOverGoal(t *testing.T) {
	s := newAggregator().Summarize([]*entities.Deposit{dep("900", now)}, decimal.NewFromInt(500))

	assert.True(t, s.ProgressPercent.Equal(dec("100")))
	assert.True(t, s.RemainingAmount.IsZero())
	assert.Equal(t, MessageComplete, s.MotivationalMessage)
}

func TestSummarize_FallsBackToDefaultGoal(t *testing.T) {
	s := newAggregator().Summarize([]*entities.Deposit{dep("250", now)}, decimal.Zero)

	assert.True(t, s.Goal.Equal(dec("500")))
	assert.True(t, s.ProgressPercent.Equal(dec("50")))
	assert.Equal(t, MessageHalfway, s.MotivationalMessage)
}

func TestSummarize_EventGoal(t *testing.T) {
	s := newAggregator().Summarize([]*entities.Deposit{dep("100", now)}, decimal.NewFromInt(200))

	assert.True(t, s.ProgressPercent.Equal(dec("50")))
	assert.True(t, s.RemainingAmount.Equal(dec("100")))
}

func TestSummarize_RoundsForDisplay(t *testing.T) {
	s := newAggregator().Summarize([]*entities.Deposit{dep("10.005", now), dep("0.001", now)}, decimal.NewFromInt(300))

	assert.Equal(t, "10.01", s.TotalSaved.StringFixed(2))
	assert.Equal(t, "3.34", s.ProgressPercent.String())
}

func TestMotivationalMessage_Precedence(t *testing.T) {
	a := newAggregator()
	stale := null.TimeFrom(now.Add(-31 * 24 * time.Hour))
	recent := null.TimeFrom(now.Add(-29 * 24 * time.Hour))

	tests := []struct {
		name    string
		percent string
		last    null.Time
		want    string
	}{
		{"inactive beats complete", "100", stale, MessageInactive},
		{"complete", "100", recent, MessageComplete},
		{"just under complete", "99.999", recent, MessageHalfway},
		{"halfway", "50", recent, MessageHalfway},
		{"quarter", "25", recent, MessageQuarter},
		{"first step", "24.99", recent, MessageFirstStep},
		{"no deposits", "0", null.Time{}, MessageFirstStep},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, a.MotivationalMessage(dec(tt.percent), tt.last))
		})
	}
}

func TestTotal_Monotonic(t *testing.T) {
	var deposits []*entities.Deposit
	prev := decimal.Zero
	for _, amt := range []string{"5", "12.50", "0.01", "300"} {
		deposits = append(deposits, dep(amt, now))
		total := Total(deposits)
		assert.True(t, total.GreaterThanOrEqual(prev))
		prev = total
	}
	assert.True(t, prev.Equal(dec("317.51")))
}

func TestPercent(t *testing.T) {
	assert.True(t, Percent(dec("50"), decimal.Zero).IsZero())
	assert.True(t, Percent(dec("1000"), dec("10")).Equal(dec("100")))
	assert.True(t, Percent(dec("5"), dec("20")).Equal(dec("25")))
}
