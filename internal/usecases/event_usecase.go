package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ahorros.backend/internal/domain/entities"
	domainerrors "ahorros.backend/internal/domain/errors"
	"ahorros.backend/internal/domain/progress"
	"ahorros.backend/internal/domain/repositories"
	"ahorros.backend/pkg/logger"
	"ahorros.backend/pkg/utils"
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
)

// EventUsecase handles savings events and registrations
type EventUsecase struct {
	eventRepo   repositories.EventRepository
	userRepo    repositories.UserRepository
	depositRepo repositories.DepositRepository
	uow         repositories.UnitOfWork
	rankings    RankingCache
}

// NewEventUsecase creates a new event usecase
func NewEventUsecase(
	eventRepo repositories.EventRepository,
	userRepo repositories.UserRepository,
	depositRepo repositories.DepositRepository,
	uow repositories.UnitOfWork,
	rankings RankingCache,
) *EventUsecase {
	return &EventUsecase{
		eventRepo:   eventRepo,
		userRepo:    userRepo,
		depositRepo: depositRepo,
		uow:         uow,
		rankings:    rankings,
	}
}

// ListActive lists active events, primary first then newest
func (u *EventUsecase) ListActive(ctx context.Context) ([]*entities.Event, error) {
	return u.eventRepo.ListActive(ctx)
}

// GetPrimary returns the primary event, or the oldest active one when none is flagged
func (u *EventUsecase) GetPrimary(ctx context.Context) (*entities.Event, error) {
	event, err := u.eventRepo.GetPrimary(ctx)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("no primary event found")
		}
		return nil, err
	}
	return event, nil
}

// GetByID gets an event by ID
func (u *EventUsecase) GetByID(ctx context.Context, id uuid.UUID) (*entities.Event, error) {
	event, err := u.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("event not found")
		}
		return nil, err
	}
	return event, nil
}

// Create creates an event. A primary event demotes every other one.
func (u *EventUsecase) Create(ctx context.Context, adminID uuid.UUID, input *entities.CreateEventInput) (*entities.Event, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerrors.Validation("name is required")
	}
	if !input.Goal.IsPositive() {
		return nil, domainerrors.Validation("goal must be greater than zero")
	}

	emoji := strings.TrimSpace(input.Emoji)
	if emoji == "" {
		emoji = entities.DefaultEventEmoji
	}

	now := time.Now()
	event := &entities.Event{
		ID:        utils.GenerateUUIDv7(),
		Name:      name,
		Goal:      input.Goal,
		IsActive:  true,
		IsPrimary: input.IsPrimary,
		Emoji:     emoji,
		CreatedBy: adminID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if desc := strings.TrimSpace(input.Description); desc != "" {
		event.Description = null.StringFrom(desc)
	}

	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.eventRepo.Create(txCtx, event); err != nil {
			return err
		}
		if event.IsPrimary {
			return u.eventRepo.ClearPrimary(txCtx, event.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "Event created", zap.String("event_id", event.ID.String()), zap.Bool("primary", event.IsPrimary))
	return event, nil
}

// Update applies the non-nil fields of input
func (u *EventUsecase) Update(ctx context.Context, id uuid.UUID, input *entities.UpdateEventInput) (*entities.Event, error) {
	event, err := u.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, domainerrors.Validation("name cannot be empty")
		}
		event.Name = name
	}
	if input.Description != nil {
		if desc := strings.TrimSpace(*input.Description); desc != "" {
			event.Description = null.StringFrom(desc)
		} else {
			event.Description = null.String{}
		}
	}
	if input.Goal != nil {
		if !input.Goal.IsPositive() {
			return nil, domainerrors.Validation("goal must be greater than zero")
		}
		event.Goal = *input.Goal
	}
	if input.Emoji != nil && strings.TrimSpace(*input.Emoji) != "" {
		event.Emoji = strings.TrimSpace(*input.Emoji)
	}
	if input.IsActive != nil {
		event.IsActive = *input.IsActive
	}
	if input.IsPrimary != nil {
		event.IsPrimary = *input.IsPrimary
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if event.IsPrimary {
			if err := u.eventRepo.ClearPrimary(txCtx, event.ID); err != nil {
				return err
			}
		}
		return u.eventRepo.Update(txCtx, event)
	})
	if err != nil {
		return nil, err
	}

	u.rankings.Invalidate(ctx, event.ID.String())
	return event, nil
}

// Delete removes an event that has no deposits
func (u *EventUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := u.GetByID(ctx, id); err != nil {
		return err
	}

	count, err := u.depositRepo.CountByEvent(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domainerrors.Conflict(fmt.Sprintf("cannot delete event with %d associated deposits", count))
	}

	if err := u.eventRepo.Delete(ctx, id); err != nil {
		return err
	}
	u.rankings.Invalidate(ctx, id.String())
	return nil
}

// Stats aggregates the whole ledger of an event
func (u *EventUsecase) Stats(ctx context.Context, id uuid.UUID) (*entities.EventStats, error) {
	event, err := u.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	deposits, _, err := u.depositRepo.List(ctx, entities.DepositFilter{EventID: &id})
	if err != nil {
		return nil, err
	}

	participants := make(map[uuid.UUID]struct{})
	for _, d := range deposits {
		participants[d.UserID] = struct{}{}
	}

	total := progress.Total(deposits)
	return &entities.EventStats{
		Event:            event,
		TotalSaved:       total.Round(2),
		DepositCount:     len(deposits),
		ParticipantCount: len(participants),
		ProgressPercent:  progress.Percent(total, event.Goal).Round(2),
		Deposits:         deposits,
	}, nil
}

// Register adds eventID to the user's registrations and returns the updated list
func (u *EventUsecase) Register(ctx context.Context, userID, eventID uuid.UUID) ([]uuid.UUID, error) {
	event, user, err := u.loadPair(ctx, userID, eventID)
	if err != nil {
		return nil, err
	}
	if user.IsRegisteredFor(eventID) {
		return nil, domainerrors.Conflict("user already registered for this event")
	}

	if err := u.userRepo.RegisterEvent(ctx, userID, eventID); err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil, domainerrors.Conflict("user already registered for this event")
		}
		return nil, err
	}

	u.rankings.Invalidate(ctx, eventID.String())
	logger.Info(ctx, "User registered for event", zap.String("user_id", userID.String()), zap.String("event", event.Name))
	return append(user.RegisteredEvents, eventID), nil
}

// Unregister removes eventID from the user's registrations and returns the updated list
func (u *EventUsecase) Unregister(ctx context.Context, userID, eventID uuid.UUID) ([]uuid.UUID, error) {
	_, user, err := u.loadPair(ctx, userID, eventID)
	if err != nil {
		return nil, err
	}
	if !user.IsRegisteredFor(eventID) {
		return nil, domainerrors.Conflict("user not registered for this event")
	}

	if err := u.userRepo.UnregisterEvent(ctx, userID, eventID); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.Conflict("user not registered for this event")
		}
		return nil, err
	}

	u.rankings.Invalidate(ctx, eventID.String())
	remaining := make([]uuid.UUID, 0, len(user.RegisteredEvents))
	for _, id := range user.RegisteredEvents {
		if id != eventID {
			remaining = append(remaining, id)
		}
	}
	return remaining, nil
}

// ListRegistered returns the events the user joined
func (u *EventUsecase) ListRegistered(ctx context.Context, userID uuid.UUID) ([]*entities.Event, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, err
	}
	if len(user.RegisteredEvents) == 0 {
		return []*entities.Event{}, nil
	}
	return u.eventRepo.ListByIDs(ctx, user.RegisteredEvents)
}

func (u *EventUsecase) loadPair(ctx context.Context, userID, eventID uuid.UUID) (*entities.Event, *entities.User, error) {
	event, err := u.GetByID(ctx, eventID)
	if err != nil {
		return nil, nil, err
	}
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, nil, domainerrors.NotFound("user not found")
		}
		return nil, nil, err
	}
	return event, user, nil
}
