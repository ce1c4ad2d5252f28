package repositories

import (
	"context"
	"errors"

	"ahorros.backend/internal/domain/entities"
	domainerrors "ahorros.backend/internal/domain/errors"
	"ahorros.backend/internal/infrastructure/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DepositRepository implements the deposit ledger
type DepositRepository struct {
	db *gorm.DB
}

// NewDepositRepository creates a new deposit repository
func NewDepositRepository(db *gorm.DB) *DepositRepository {
	return &DepositRepository{db: db}
}

// Create appends a deposit to the ledger
func (r *DepositRepository) Create(ctx context.Context, deposit *entities.Deposit) error {
	m := &models.Deposit{
		ID:          deposit.ID,
		UserID:      deposit.UserID,
		EventID:     deposit.EventID,
		Amount:      deposit.Amount,
		Description: deposit.Description,
		CreatedBy:   deposit.CreatedBy,
		CreatedAt:   deposit.CreatedAt,
	}
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return err
	}
	deposit.CreatedAt = m.CreatedAt
	return nil
}

// GetByID gets a deposit by ID
func (r *DepositRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Deposit, error) {
	var m models.Deposit
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// List lists deposits matching filter, newest first
func (r *DepositRepository) List(ctx context.Context, filter entities.DepositFilter) ([]*entities.Deposit, int64, error) {
	matching := func(db *gorm.DB) *gorm.DB {
		if filter.UserID != nil {
			db = db.Where("user_id = ?", *filter.UserID)
		}
		if filter.EventID != nil {
			db = db.Where("event_id = ?", *filter.EventID)
		}
		return db
	}

	var total int64
	if err := GetDB(ctx, r.db).Model(&models.Deposit{}).Scopes(matching).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := GetDB(ctx, r.db).Scopes(matching).Order("created_at DESC").Order("id DESC")
	if filter.Pagination.Limit > 0 {
		query = query.Offset(filter.Pagination.CalculateOffset()).Limit(filter.Pagination.Limit)
	}

	var depositModels []models.Deposit
	if err := query.Find(&depositModels).Error; err != nil {
		return nil, 0, err
	}

	deposits := make([]*entities.Deposit, 0, len(depositModels))
	for i := range depositModels {
		deposits = append(deposits, r.toEntity(&depositModels[i]))
	}
	return deposits, total, nil
}

// CountByEvent counts deposits referencing eventID
func (r *DepositRepository) CountByEvent(ctx context.Context, eventID uuid.UUID) (int64, error) {
	var n int64
	if err := GetDB(ctx, r.db).Model(&models.Deposit{}).Where("event_id = ?", eventID).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// Stats returns the ledger size and the exact sum of all amounts
func (r *DepositRepository) Stats(ctx context.Context) (int64, decimal.Decimal, error) {
	var amounts []decimal.Decimal
	if err := GetDB(ctx, r.db).Model(&models.Deposit{}).Pluck("amount", &amounts).Error; err != nil {
		return 0, decimal.Zero, err
	}
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return int64(len(amounts)), total, nil
}

// DeleteByUser removes every deposit of userID. Only used when deleting the user.
func (r *DepositRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	result := GetDB(ctx, r.db).Where("user_id = ?", userID).Delete(&models.Deposit{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *DepositRepository) toEntity(m *models.Deposit) *entities.Deposit {
	return &entities.Deposit{
		ID:          m.ID,
		UserID:      m.UserID,
		EventID:     m.EventID,
		Amount:      m.Amount,
		Description: m.Description,
		CreatedBy:   m.CreatedBy,
		CreatedAt:   m.CreatedAt,
	}
}
