package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"ahorros.backend/internal/domain/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitOfWork_CommitAndRollback(t *testing.T) {
	db := newTestDB(t)
	uow := NewUnitOfWork(db)
	users := NewUserRepository(db)
	deposits := NewDepositRepository(db)
	ctx := context.Background()

	ana := newUser("Ana", "1", entities.UserRoleUser)
	require.NoError(t, users.Create(ctx, ana))
	event := newEvent("E", 500)
	require.NoError(t, deposits.Create(ctx, newDeposit(ana.ID, event.ID, "10", time.Now().UTC())))

	boom := errors.New("boom")
	err := uow.Do(ctx, func(txCtx context.Context) error {
		if _, err := deposits.DeleteByUser(txCtx, ana.ID); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, total, err := deposits.List(ctx, entities.DepositFilter{UserID: &ana.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	err = uow.Do(ctx, func(txCtx context.Context) error {
		if _, err := deposits.DeleteByUser(txCtx, ana.ID); err != nil {
			return err
		}
		return users.Delete(txCtx, ana.ID)
	})
	require.NoError(t, err)

	_, total, err = deposits.List(ctx, entities.DepositFilter{UserID: &ana.ID})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestUnitOfWork_NestedJoinsOuter(t *testing.T) {
	db := newTestDB(t)
	uow := NewUnitOfWork(db)
	ctx := context.Background()

	err := uow.Do(ctx, func(outer context.Context) error {
		return uow.Do(outer, func(inner context.Context) error {
			assert.Same(t, GetDB(outer, db), GetDB(inner, db))
			return nil
		})
	})
	require.NoError(t, err)
}

func TestGetDB_FallsBackOutsideTransaction(t *testing.T) {
	db := newTestDB(t)
	assert.NotNil(t, GetDB(context.Background(), db))
}
