package usecases_test

import (
	"context"
	"testing"

	"ahorros.backend/internal/domain/entities"
	domainerrors "ahorros.backend/internal/domain/errors"
	"ahorros.backend/internal/usecases"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
)

func newUserUsecaseForTest() (*usecases.UserUsecase, *MockUserRepository, *MockDepositRepository, *MockUnitOfWork, *MockRankingCache) {
	users := new(MockUserRepository)
	deposits := new(MockDepositRepository)
	uow := new(MockUnitOfWork)
	cache := new(MockRankingCache)
	uow.On("Do", mock.Anything, mock.Anything).Return(nil)
	cache.On("InvalidateAll", mock.Anything).Return()
	return usecases.NewUserUsecase(users, deposits, uow, cache), users, deposits, uow, cache
}

func TestUserUsecase_UpdateProfile(t *testing.T) {
	uc, users, _, _, cache := newUserUsecaseForTest()
	user := &entities.User{ID: uuid.New(), Name: "Ana", PlanType: null.StringFrom("Plan A"), IsActive: true}
	users.On("GetByID", mock.Anything, user.ID).Return(user, nil).Once()
	users.On("Update", mock.Anything, user).Return(nil).Once()

	name := "  Ana María "
	plan := "Plan B"
	updated, err := uc.UpdateProfile(context.Background(), user.ID, &entities.UpdateProfileInput{Name: &name, PlanType: &plan})
	require.NoError(t, err)
	assert.Equal(t, "Ana María", updated.Name)
	assert.Equal(t, "Plan B", updated.PlanType.String)
	assert.True(t, updated.IsActive)
	cache.AssertCalled(t, "InvalidateAll", mock.Anything)
}

func TestUserUsecase_UpdateUser_Deactivate(t *testing.T) {
	uc, users, _, _, _ := newUserUsecaseForTest()
	user := &entities.User{ID: uuid.New(), Name: "Ana", IsActive: true}
	users.On("GetByID", mock.Anything, user.ID).Return(user, nil).Once()
	users.On("Update", mock.Anything, user).Return(nil).Once()

	inactive := false
	updated, err := uc.UpdateUser(context.Background(), user.ID, &entities.UpdateUserInput{IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
}

func TestUserUsecase_UpdateProfile_EmptyName(t *testing.T) {
	uc, users, _, _, _ := newUserUsecaseForTest()
	user := &entities.User{ID: uuid.New(), Name: "Ana"}
	users.On("GetByID", mock.Anything, user.ID).Return(user, nil).Once()

	blank := " "
	_, err := uc.UpdateProfile(context.Background(), user.ID, &entities.UpdateProfileInput{Name: &blank})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
	users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUserUsecase_DeleteUser(t *testing.T) {
	uc, users, deposits, uow, cache := newUserUsecaseForTest()
	id := uuid.New()
	users.On("GetByID", mock.Anything, id).Return(&entities.User{ID: id}, nil).Once()
	deposits.On("DeleteByUser", mock.Anything, id).Return(int64(4), nil).Once()
	users.On("Delete", mock.Anything, id).Return(nil).Once()

	require.NoError(t, uc.DeleteUser(context.Background(), id))
	uow.AssertCalled(t, "Do", mock.Anything, mock.Anything)
	cache.AssertCalled(t, "InvalidateAll", mock.Anything)
	users.AssertExpectations(t)
	deposits.AssertExpectations(t)
}

func TestUserUsecase_DeleteUser_NotFound(t *testing.T) {
	uc, users, deposits, _, cache := newUserUsecaseForTest()
	id := uuid.New()
	users.On("GetByID", mock.Anything, id).Return(nil, domainerrors.ErrNotFound).Once()

	err := uc.DeleteUser(context.Background(), id)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
	deposits.AssertNotCalled(t, "DeleteByUser", mock.Anything, mock.Anything)
	cache.AssertNotCalled(t, "InvalidateAll", mock.Anything)
}

func TestUserUsecase_ListUsers(t *testing.T) {
	uc, users, _, _, _ := newUserUsecaseForTest()
	users.On("ListByRole", mock.Anything, entities.UserRoleUser).Return([]*entities.User{{ID: uuid.New()}}, nil).Once()

	list, err := uc.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
