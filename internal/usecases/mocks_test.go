package usecases_test

import (
	"context"

	"ahorros.backend/internal/domain/entities"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// Mock UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, f func(context.Context) error) error {
	m.Called(ctx, f)
	return f(ctx)
}

// Mock UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByPhone(ctx context.Context, phone string) (*entities.User, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) ListByRole(ctx context.Context, role entities.UserRole) ([]*entities.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.User), args.Error(1)
}

func (m *MockUserRepository) ListParticipants(ctx context.Context, eventID *uuid.UUID) ([]*entities.User, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.User), args.Error(1)
}

func (m *MockUserRepository) AnyAdmin(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) AppendBadges(ctx context.Context, userID uuid.UUID, badges []entities.BadgeInstance) error {
	args := m.Called(ctx, userID, badges)
	return args.Error(0)
}

func (m *MockUserRepository) RegisterEvent(ctx context.Context, userID, eventID uuid.UUID) error {
	args := m.Called(ctx, userID, eventID)
	return args.Error(0)
}

func (m *MockUserRepository) UnregisterEvent(ctx context.Context, userID, eventID uuid.UUID) error {
	args := m.Called(ctx, userID, eventID)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) CountByRole(ctx context.Context, role entities.UserRole) (int64, error) {
	args := m.Called(ctx, role)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) CountByPlan(ctx context.Context, role entities.UserRole) ([]entities.PlanCount, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.PlanCount), args.Error(1)
}

// Mock EventRepository
type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) Create(ctx context.Context, event *entities.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Event), args.Error(1)
}

func (m *MockEventRepository) GetPrimary(ctx context.Context) (*entities.Event, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Event), args.Error(1)
}

func (m *MockEventRepository) ListActive(ctx context.Context) ([]*entities.Event, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Event), args.Error(1)
}

func (m *MockEventRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.Event, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Event), args.Error(1)
}

func (m *MockEventRepository) Update(ctx context.Context, event *entities.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventRepository) ClearPrimary(ctx context.Context, except uuid.UUID) error {
	args := m.Called(ctx, except)
	return args.Error(0)
}

func (m *MockEventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Mock DepositRepository
type MockDepositRepository struct {
	mock.Mock
}

func (m *MockDepositRepository) Create(ctx context.Context, deposit *entities.Deposit) error {
	args := m.Called(ctx, deposit)
	return args.Error(0)
}

func (m *MockDepositRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Deposit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Deposit), args.Error(1)
}

func (m *MockDepositRepository) List(ctx context.Context, filter entities.DepositFilter) ([]*entities.Deposit, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Deposit), args.Get(1).(int64), args.Error(2)
}

func (m *MockDepositRepository) CountByEvent(ctx context.Context, eventID uuid.UUID) (int64, error) {
	args := m.Called(ctx, eventID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDepositRepository) Stats(ctx context.Context) (int64, decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockDepositRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// Mock ReceiptRenderer
type MockReceiptRenderer struct {
	mock.Mock
}

func (m *MockReceiptRenderer) Render(ctx context.Context, data entities.ReceiptData) (*entities.Receipt, error) {
	args := m.Called(ctx, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Receipt), args.Error(1)
}

// Mock RankingCache
type MockRankingCache struct {
	mock.Mock
}

func (m *MockRankingCache) Get(ctx context.Context, scopeKey string) ([]entities.RankingEntry, bool) {
	args := m.Called(ctx, scopeKey)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).([]entities.RankingEntry), args.Bool(1)
}

func (m *MockRankingCache) Set(ctx context.Context, scopeKey string, entries []entities.RankingEntry) {
	m.Called(ctx, scopeKey, entries)
}

func (m *MockRankingCache) Invalidate(ctx context.Context, scopeKeys ...string) {
	m.Called(ctx, scopeKeys)
}

func (m *MockRankingCache) InvalidateAll(ctx context.Context) {
	m.Called(ctx)
}

// Mock SavingsMetrics
type MockSavingsMetrics struct {
	mock.Mock
}

func (m *MockSavingsMetrics) ObserveDeposit(amount decimal.Decimal) {
	m.Called(amount)
}

func (m *MockSavingsMetrics) IncBadge(badgeID string) {
	m.Called(badgeID)
}

func (m *MockSavingsMetrics) IncReceiptFailure() {
	m.Called()
}

// Mock DepositNotifier
type MockDepositNotifier struct {
	mock.Mock
}

func (m *MockDepositNotifier) DepositRecorded(ctx context.Context, result *entities.DepositResult) {
	m.Called(ctx, result)
}
