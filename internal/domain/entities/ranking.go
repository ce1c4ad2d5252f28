package entities

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
)

// RankingEntry is one participant's row in a ranking
type RankingEntry struct {
	Position        int             `json:"position"`
	UserID          uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	Phone           string          `json:"phone"`
	TotalSaved      decimal.Decimal `json:"totalSaved"`
	DepositCount    int             `json:"depositCount"`
	ProgressPercent decimal.Decimal `json:"progressPercent"`
}

// PlanCount is the number of users on one plan label
type PlanCount struct {
	PlanType null.String `json:"planType"`
	Count    int64       `json:"count"`
}

// AdminStats is the admin overview
type AdminStats struct {
	TotalUsers    int64           `json:"totalUsers"`
	TotalDeposits int64           `json:"totalDeposits"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	UsersByPlan   []PlanCount     `json:"usersByPlan"`
}
