// Package badges holds the badge catalog and the evaluator that decides
// which badges a user has newly earned.
package badges

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Kind selects the rule a definition is evaluated with
type Kind int

const (
	KindDepositCount Kind = iota + 1
	KindGoalShare
	KindRankingPosition
	KindLargestDeposit
	KindWeeklyStreak
)

func (k Kind) String() string {
	switch k {
	case KindDepositCount:
		return "deposit_count"
	case KindGoalShare:
		return "goal_share"
	case KindRankingPosition:
		return "ranking_position"
	case KindLargestDeposit:
		return "largest_deposit"
	case KindWeeklyStreak:
		return "weekly_streak"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Stable badge ids. They are persisted on users and must never change.
const (
	IDFirstDeposit     = "primer_deposito"
	IDFiveDeposits     = "cinco_depositos"
	IDTenDeposits      = "diez_depositos"
	IDQuarterGoal      = "cuarto_meta"
	IDHalfGoal         = "mitad_meta"
	IDThreeQuarterGoal = "tres_cuartos_meta"
	IDGoalComplete     = "meta_completa"
	IDTopThree         = "top_tres"
	IDWeeklyStreak     = "dedicado_semanal"
	IDLargeDeposit     = "deposito_grande"
)

var (
	ErrInvalidGoal = errors.New("goal must be greater than zero")
	ErrUnknownKind = errors.New("unknown badge kind")
)

// Definition is one catalog entry. Threshold is read according to Kind:
// a deposit count, a fraction of the goal, a maximum ranking position or
// a single-deposit amount.
type Definition struct {
	ID          string
	Name        string
	Description string
	Emoji       string
	Kind        Kind
	Threshold   decimal.Decimal
}

var catalog = []Definition{
	{IDFirstDeposit, "Primer Paso", "Haz tu primer depósito", "🎯", KindDepositCount, decimal.NewFromInt(1)},
	{IDFiveDeposits, "Constante", "Realiza 5 depósitos", "⭐", KindDepositCount, decimal.NewFromInt(5)},
	{IDTenDeposits, "Dedicado", "Realiza 10 depósitos", "✨", KindDepositCount, decimal.NewFromInt(10)},
	{IDQuarterGoal, "Comienzo Prometedor", "Ahorra 25% de tu meta", "📈", KindGoalShare, decimal.RequireFromString("0.25")},
	{IDHalfGoal, "A Mitad del Camino", "Ahorra 50% de tu meta", "🔥", KindGoalShare, decimal.RequireFromString("0.5")},
	{IDThreeQuarterGoal, "Casi Allá", "Ahorra 75% de tu meta", "💪", KindGoalShare, decimal.RequireFromString("0.75")},
	{IDGoalComplete, "Campeón", "Alcanza tu meta de ahorro", "🏆", KindGoalShare, decimal.NewFromInt(1)},
	{IDTopThree, "Top 3 Ahorrista", "Posiciónate en el top 3 del ranking", "🥇", KindRankingPosition, decimal.NewFromInt(3)},
	// dedicado_semanal never unlocks: KindWeeklyStreak always evaluates to false.
	{IDWeeklyStreak, "Disciplinado", "Deposita en 4 semanas consecutivas", "📅", KindWeeklyStreak, decimal.NewFromInt(4)},
	{IDLargeDeposit, "Generoso", "Realiza un depósito de Bs. 100 o más", "💰", KindLargestDeposit, decimal.NewFromInt(100)},
}

// Catalog returns every definition in display order
func Catalog() []Definition {
	out := make([]Definition, len(catalog))
	copy(out, catalog)
	return out
}

// ByID looks a definition up by its stable id
func ByID(id string) (Definition, bool) {
	for _, d := range catalog {
		if d.ID == id {
			return d, true
		}
	}
	return Definition{}, false
}

// Evaluate reports whether c satisfies the definition's rule
func (d Definition) Evaluate(c Context) (bool, error) {
	switch d.Kind {
	case KindDepositCount:
		return decimal.NewFromInt(int64(c.DepositCount)).GreaterThanOrEqual(d.Threshold), nil
	case KindGoalShare:
		if !c.Goal.IsPositive() {
			return false, ErrInvalidGoal
		}
		return c.TotalSaved.GreaterThanOrEqual(c.Goal.Mul(d.Threshold)), nil
	case KindRankingPosition:
		if c.Position == nil {
			return false, nil
		}
		pos := *c.Position
		return pos >= 1 && decimal.NewFromInt(int64(pos)).LessThanOrEqual(d.Threshold), nil
	case KindLargestDeposit:
		return c.MaxDeposit.GreaterThanOrEqual(d.Threshold), nil
	case KindWeeklyStreak:
		return false, nil
	default:
		return false, fmt.Errorf("%w: %s", ErrUnknownKind, d.Kind)
	}
}
