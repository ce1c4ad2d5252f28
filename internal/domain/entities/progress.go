package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
)

// ProgressSummary is the display-ready view of a deposit history against a goal
type ProgressSummary struct {
	TotalSaved          decimal.Decimal `json:"totalSaved"`
	Goal                decimal.Decimal `json:"goal"`
	ProgressPercent     decimal.Decimal `json:"progressPercent"`
	RemainingAmount     decimal.Decimal `json:"remainingAmount"`
	MotivationalMessage string          `json:"motivationalMessage"`
	LastDepositDate     null.Time       `json:"lastDepositDate"`
	DepositCount        int             `json:"depositCount"`
}

// DepositHistoryItem is one row of the dashboard history
type DepositHistoryItem struct {
	ID          uuid.UUID       `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
}

// Dashboard is a user's progress, optionally scoped to one event
type Dashboard struct {
	User    *UserRef   `json:"user,omitempty"`
	EventID *uuid.UUID `json:"eventId,omitempty"`
	ProgressSummary
	DepositHistory []DepositHistoryItem `json:"depositHistory"`
}
