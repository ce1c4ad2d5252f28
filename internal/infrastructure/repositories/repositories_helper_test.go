package repositories

import (
	"fmt"
	"testing"
	"time"

	"ahorros.backend/internal/domain/entities"
	"ahorros.backend/internal/infrastructure/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "open sqlite")
	require.NoError(t, db.AutoMigrate(models.All()...), "migrate")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func newUser(name, phone string, role entities.UserRole) *entities.User {
	now := time.Now().UTC()
	return &entities.User{
		ID:           uuid.New(),
		Name:         name,
		Phone:        phone,
		PasswordHash: "hash",
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func newEvent(name string, goal int64) *entities.Event {
	return &entities.Event{
		ID:        uuid.New(),
		Name:      name,
		Goal:      decimal.NewFromInt(goal),
		IsActive:  true,
		Emoji:     entities.DefaultEventEmoji,
		CreatedBy: uuid.New(),
	}
}

func newDeposit(userID, eventID uuid.UUID, amount string, at time.Time) *entities.Deposit {
	return &entities.Deposit{
		ID:          uuid.New(),
		UserID:      userID,
		EventID:     eventID,
		Amount:      decimal.RequireFromString(amount),
		Description: entities.DefaultDepositDescription,
		CreatedBy:   uuid.New(),
		CreatedAt:   at,
	}
}
