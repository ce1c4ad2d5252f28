package badges

import (
	"ahorros.backend/internal/domain/entities"
	"github.com/shopspring/decimal"
)

// Context is everything a rule may look at
type Context struct {
	DepositCount int
	TotalSaved   decimal.Decimal
	Goal         decimal.Decimal
	// Position is nil when no ranking was computed; ranking rules are then false.
	Position   *int
	Deposits   []*entities.Deposit
	MaxDeposit decimal.Decimal
}

// NewContext derives count, total and largest single deposit from deposits
func NewContext(deposits []*entities.Deposit, goal decimal.Decimal, position *int) Context {
	c := Context{
		DepositCount: len(deposits),
		TotalSaved:   decimal.Zero,
		Goal:         goal,
		Position:     position,
		Deposits:     deposits,
		MaxDeposit:   decimal.Zero,
	}
	for _, d := range deposits {
		if d == nil {
			continue
		}
		c.TotalSaved = c.TotalSaved.Add(d.Amount)
		if d.Amount.GreaterThan(c.MaxDeposit) {
			c.MaxDeposit = d.Amount
		}
	}
	return c
}
