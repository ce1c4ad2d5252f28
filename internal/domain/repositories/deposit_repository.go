package repositories

import (
	"context"

	"ahorros.backend/internal/domain/entities"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DepositRepository defines deposit ledger operations. Deposits are never updated.
type DepositRepository interface {
	Create(ctx context.Context, deposit *entities.Deposit) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Deposit, error)
	// List returns matching deposits newest first and the total match count
	List(ctx context.Context, filter entities.DepositFilter) ([]*entities.Deposit, int64, error)
	CountByEvent(ctx context.Context, eventID uuid.UUID) (int64, error)
	Stats(ctx context.Context) (count int64, total decimal.Decimal, err error)
	DeleteByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}
