package usecases

import (
	"context"

	"ahorros.backend/internal/domain/entities"
	"github.com/shopspring/decimal"
)

// ReceiptRenderer produces a durable receipt for a deposit
type ReceiptRenderer interface {
	Render(ctx context.Context, data entities.ReceiptData) (*entities.Receipt, error)
}

// RankingCache keeps computed rankings per scope key
type RankingCache interface {
	Get(ctx context.Context, scopeKey string) ([]entities.RankingEntry, bool)
	Set(ctx context.Context, scopeKey string, entries []entities.RankingEntry)
	Invalidate(ctx context.Context, scopeKeys ...string)
	InvalidateAll(ctx context.Context)
}

// SavingsMetrics records ledger activity
type SavingsMetrics interface {
	ObserveDeposit(amount decimal.Decimal)
	IncBadge(badgeID string)
	IncReceiptFailure()
}

const globalScopeKey = "global"

// DepositNotifier pushes recorded deposits to live subscribers
type DepositNotifier interface {
	DepositRecorded(ctx context.Context, result *entities.DepositResult)
}
