package badges

import (
	"context"
	"testing"
	"time"

	"ahorros.backend/internal/domain/entities"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func deposits(amounts ...string) []*entities.Deposit {
	out := make([]*entities.Deposit, 0, len(amounts))
	for _, a := range amounts {
		out = append(out, &entities.Deposit{ID: uuid.New(), Amount: decimal.RequireFromString(a)})
	}
	return out
}

func ids(list []entities.BadgeInstance) []string {
	out := make([]string, 0, len(list))
	for _, b := range list {
		out = append(out, b.ID)
	}
	return out
}

func TestNewContext(t *testing.T) {
	c := NewContext(deposits("50", "75.50", "100", "20"), decimal.NewFromInt(500), nil)

	assert.Equal(t, 4, c.DepositCount)
	assert.True(t, c.TotalSaved.Equal(decimal.RequireFromString("245.50")))
	assert.True(t, c.MaxDeposit.Equal(decimal.NewFromInt(100)))
	assert.Nil(t, c.Position)
}

func TestNewContext_Empty(t *testing.T) {
	c := NewContext(nil, decimal.NewFromInt(500), nil)

	assert.Zero(t, c.DepositCount)
	assert.True(t, c.TotalSaved.IsZero())
	assert.True(t, c.MaxDeposit.IsZero())
}

func TestEvaluator_ThreeDeposits(t *testing.T) {
	e := NewEvaluator(func() time.Time { return fixedNow })

	got := e.Evaluate(context.Background(), &entities.User{}, NewContext(deposits("50", "75", "100"), decimal.NewFromInt(500), nil))

	assert.Contains(t, ids(got), IDFirstDeposit)
	assert.Contains(t, ids(got), IDLargeDeposit)
	assert.NotContains(t, ids(got), IDFiveDeposits)
	assert.NotContains(t, ids(got), IDHalfGoal)
	for _, b := range got {
		assert.Equal(t, fixedNow, b.UnlockedAt)
	}
}

func TestEvaluator_SingleLargeDeposit(t *testing.T) {
	e := NewEvaluator(func() time.Time { return fixedNow })

	got := e.Evaluate(context.Background(), &entities.User{}, NewContext(deposits("150"), decimal.NewFromInt(500), nil))

	assert.ElementsMatch(t, []string{IDFirstDeposit, IDQuarterGoal, IDLargeDeposit}, ids(got))
}

func TestEvaluator_SkipsHeldBadges(t *testing.T) {
	e := NewEvaluator(func() time.Time { return fixedNow })
	user := &entities.User{Badges: []entities.BadgeInstance{{ID: IDFirstDeposit}}}

	got := e.Evaluate(context.Background(), user, NewContext(deposits("10", "10"), decimal.NewFromInt(500), nil))

	assert.Empty(t, got)
}

func TestEvaluator_Idempotent(t *testing.T) {
	e := NewEvaluator(func() time.Time { return fixedNow })
	user := &entities.User{}
	c := NewContext(deposits("150", "200"), decimal.NewFromInt(500), intPtr(2))

	first := e.Evaluate(context.Background(), user, c)
	require.NotEmpty(t, first)
	user.Badges = append(user.Badges, first...)

	second := e.Evaluate(context.Background(), user, c)
	assert.Empty(t, second)
}

func TestEvaluator_TopThreeNeedsPosition(t *testing.T) {
	e := NewEvaluator(nil)

	without := e.Evaluate(context.Background(), nil, NewContext(deposits("10"), decimal.NewFromInt(500), nil))
	assert.NotContains(t, ids(without), IDTopThree)

	with := e.Evaluate(context.Background(), nil, NewContext(deposits("10"), decimal.NewFromInt(500), intPtr(1)))
	assert.Contains(t, ids(with), IDTopThree)
}

func TestEvaluator_FailingRuleIsIsolated(t *testing.T) {
	first, _ := ByID(IDFirstDeposit)
	e := &Evaluator{
		definitions: []Definition{
			{ID: "broken", Kind: Kind(42)},
			first,
		},
		now: func() time.Time { return fixedNow },
	}

	got := e.Evaluate(context.Background(), &entities.User{}, NewContext(deposits("5"), decimal.NewFromInt(500), nil))

	assert.Equal(t, []string{IDFirstDeposit}, ids(got))
}

func TestEvaluator_ZeroGoalOnlyDisablesGoalRules(t *testing.T) {
	e := NewEvaluator(func() time.Time { return fixedNow })

	got := e.Evaluate(context.Background(), &entities.User{}, NewContext(deposits("150"), decimal.Zero, nil))

	assert.ElementsMatch(t, []string{IDFirstDeposit, IDLargeDeposit}, ids(got))
}

func TestDescriptors(t *testing.T) {
	d := Descriptors()

	require.Len(t, d, len(Catalog()))
	assert.Equal(t, IDFirstDeposit, d[0].ID)
	assert.Equal(t, "🎯", d[0].Emoji)
}
