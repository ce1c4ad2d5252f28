package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ahorros.backend/internal/domain/badges"
	"ahorros.backend/internal/domain/entities"
	domainerrors "ahorros.backend/internal/domain/errors"
	"ahorros.backend/internal/domain/progress"
	"ahorros.backend/internal/domain/repositories"
	"ahorros.backend/pkg/logger"
	"ahorros.backend/pkg/utils"
	"ahorros.backend/pkg/whatsapp"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DepositUsecase records deposits and serves the ledger
type DepositUsecase struct {
	depositRepo repositories.DepositRepository
	userRepo    repositories.UserRepository
	eventRepo   repositories.EventRepository
	aggregator  *progress.Aggregator
	evaluator   *badges.Evaluator
	receipts    ReceiptRenderer
	rankings    RankingCache
	metrics     SavingsMetrics
	notifier    DepositNotifier
	minDeposit  decimal.Decimal
	countryCode string
	now         func() time.Time
}

// DepositUsecaseConfig carries the tunables of the deposit workflow
type DepositUsecaseConfig struct {
	MinDeposit  decimal.Decimal
	CountryCode string
}

// NewDepositUsecase creates a new deposit usecase. notifier may be nil.
func NewDepositUsecase(
	depositRepo repositories.DepositRepository,
	userRepo repositories.UserRepository,
	eventRepo repositories.EventRepository,
	aggregator *progress.Aggregator,
	evaluator *badges.Evaluator,
	receipts ReceiptRenderer,
	rankings RankingCache,
	metrics SavingsMetrics,
	notifier DepositNotifier,
	cfg DepositUsecaseConfig,
) *DepositUsecase {
	return &DepositUsecase{
		depositRepo: depositRepo,
		userRepo:    userRepo,
		eventRepo:   eventRepo,
		aggregator:  aggregator,
		evaluator:   evaluator,
		receipts:    receipts,
		rankings:    rankings,
		metrics:     metrics,
		notifier:    notifier,
		minDeposit:  cfg.MinDeposit,
		countryCode: cfg.CountryCode,
		now:         time.Now,
	}
}

// Record runs the deposit workflow. Once the deposit is persisted the call succeeds;
// a failed history reload or receipt only degrades the result.
func (u *DepositUsecase) Record(ctx context.Context, adminID uuid.UUID, input *entities.CreateDepositInput) (*entities.DepositResult, error) {
	if input.UserID == uuid.Nil || input.EventID == uuid.Nil {
		return nil, domainerrors.Validation("userId and eventId are required")
	}
	if input.Amount.LessThan(u.minDeposit) {
		return nil, domainerrors.Validation(fmt.Sprintf("minimum deposit is %s Bs", u.minDeposit.String()))
	}

	user, err := u.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, err
	}
	event, err := u.eventRepo.GetByID(ctx, input.EventID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("event not found")
		}
		return nil, err
	}

	description := strings.TrimSpace(input.Description)
	if description == "" {
		description = entities.DefaultDepositDescription
	}
	deposit := &entities.Deposit{
		ID:          utils.GenerateUUIDv7(),
		UserID:      user.ID,
		EventID:     event.ID,
		Amount:      input.Amount,
		Description: description,
		CreatedBy:   adminID,
		CreatedAt:   u.now(),
	}
	if err := u.depositRepo.Create(ctx, deposit); err != nil {
		return nil, err
	}
	u.metrics.ObserveDeposit(deposit.Amount)
	u.rankings.Invalidate(ctx, globalScopeKey, event.ID.String())

	history, _, err := u.depositRepo.List(ctx, entities.DepositFilter{UserID: &user.ID, EventID: &event.ID})
	if err != nil {
		// The deposit is already committed; derived state is left to re-evaluation.
		logger.Error(ctx, "Failed to reload deposit history",
			zap.String("user_id", user.ID.String()),
			zap.String("deposit_id", deposit.ID.String()),
			zap.Error(err),
		)
		result := &entities.DepositResult{
			Deposit:      deposit,
			NewBadges:    []entities.BadgeInstance{},
			ReceiptError: "progress unavailable: " + err.Error(),
		}
		if u.notifier != nil {
			u.notifier.DepositRecorded(ctx, result)
		}
		return result, nil
	}

	goal := u.aggregator.GoalOr(event.Goal)
	summary := u.aggregator.Summarize(history, goal)
	result := &entities.DepositResult{
		Deposit:    deposit,
		TotalSaved: summary.TotalSaved,
		Progress:   &summary,
		NewBadges:  []entities.BadgeInstance{},
	}

	unlocked := u.evaluator.Evaluate(ctx, user, badges.NewContext(history, goal, nil))
	if len(unlocked) > 0 {
		if err := u.userRepo.AppendBadges(ctx, user.ID, unlocked); err != nil {
			logger.Error(ctx, "Failed to persist unlocked badges",
				zap.String("user_id", user.ID.String()),
				zap.String("deposit_id", deposit.ID.String()),
				zap.Error(err),
			)
		} else {
			result.NewBadges = unlocked
			for _, b := range unlocked {
				u.metrics.IncBadge(b.ID)
			}
		}
	}

	u.attachReceipt(ctx, result, user, event, adminID)

	if u.notifier != nil {
		u.notifier.DepositRecorded(ctx, result)
	}

	logger.Info(ctx, "Deposit recorded",
		zap.String("deposit_id", deposit.ID.String()),
		zap.String("user_id", user.ID.String()),
		zap.String("event_id", event.ID.String()),
		zap.String("amount", deposit.Amount.StringFixed(2)),
		zap.Int("new_badges", len(result.NewBadges)),
		zap.Bool("receipt_generated", result.ReceiptGenerated),
	)
	return result, nil
}

func (u *DepositUsecase) attachReceipt(ctx context.Context, result *entities.DepositResult, user *entities.User, event *entities.Event, adminID uuid.UUID) {
	receipt, err := u.receipts.Render(ctx, u.receiptData(ctx, result.Deposit, user, event.Name, result.TotalSaved, adminID))
	if err != nil {
		u.metrics.IncReceiptFailure()
		logger.Error(ctx, "Failed to generate receipt",
			zap.String("deposit_id", result.Deposit.ID.String()),
			zap.Error(err),
		)
		result.ReceiptError = err.Error()
		return
	}

	result.ReceiptGenerated = true
	result.PDFURL = receipt.URL
	result.WhatsAppLink = whatsapp.DepositLink(user.Phone, u.countryCode, whatsapp.DepositMessage{
		UserName:   user.Name,
		PlanType:   user.PlanType.String,
		Amount:     result.Deposit.Amount,
		TotalSaved: result.TotalSaved,
		Date:       result.Deposit.CreatedAt,
		ReceiptURL: receipt.URL,
	})
}

func (u *DepositUsecase) receiptData(ctx context.Context, deposit *entities.Deposit, user *entities.User, eventName string, total decimal.Decimal, adminID uuid.UUID) entities.ReceiptData {
	data := entities.ReceiptData{
		DepositID:  deposit.ID,
		Amount:     deposit.Amount,
		RecordedAt: deposit.CreatedAt,
		UserName:   user.Name,
		UserPhone:  user.Phone,
		PlanType:   user.PlanType.String,
		UserRole:   user.Role,
		EventName:  eventName,
		TotalSaved: total,
	}
	if admin, err := u.userRepo.GetByID(ctx, adminID); err == nil {
		data.RecordedBy = admin.Name
	}
	return data
}

// GetReceipt renders a fresh receipt for an existing deposit
func (u *DepositUsecase) GetReceipt(ctx context.Context, depositID uuid.UUID) (*entities.Receipt, error) {
	deposit, err := u.depositRepo.GetByID(ctx, depositID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("deposit not found")
		}
		return nil, err
	}

	user, err := u.userRepo.GetByID(ctx, deposit.UserID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, err
	}

	var eventName string
	if event, err := u.eventRepo.GetByID(ctx, deposit.EventID); err == nil {
		eventName = event.Name
	}

	history, _, err := u.depositRepo.List(ctx, entities.DepositFilter{UserID: &deposit.UserID, EventID: &deposit.EventID})
	if err != nil {
		return nil, err
	}

	receipt, err := u.receipts.Render(ctx, u.receiptData(ctx, deposit, user, eventName, progress.Total(history).Round(2), deposit.CreatedBy))
	if err != nil {
		u.metrics.IncReceiptFailure()
		return nil, domainerrors.InternalError(err)
	}
	return receipt, nil
}

// ListForUser lists a user's deposits, optionally within one event, newest first
func (u *DepositUsecase) ListForUser(ctx context.Context, userID uuid.UUID, eventID *uuid.UUID, pagination utils.PaginationParams) (*entities.DepositPage, error) {
	return u.list(ctx, entities.DepositFilter{UserID: &userID, EventID: eventID, Pagination: pagination})
}

// ListAll lists the whole ledger, optionally within one event, newest first
func (u *DepositUsecase) ListAll(ctx context.Context, eventID *uuid.UUID, pagination utils.PaginationParams) (*entities.DepositPage, error) {
	return u.list(ctx, entities.DepositFilter{EventID: eventID, Pagination: pagination})
}

func (u *DepositUsecase) list(ctx context.Context, filter entities.DepositFilter) (*entities.DepositPage, error) {
	items, total, err := u.depositRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*entities.Deposit{}
	}
	return &entities.DepositPage{
		Items: items,
		Meta:  utils.CalculateMeta(total, filter.Pagination.Page, filter.Pagination.Limit),
	}, nil
}
