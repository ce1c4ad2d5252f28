package usecases

import (
	"context"
	"errors"
	"strings"

	"ahorros.backend/internal/domain/entities"
	domainerrors "ahorros.backend/internal/domain/errors"
	"ahorros.backend/internal/domain/repositories"
	"ahorros.backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
)

// UserUsecase handles user management
type UserUsecase struct {
	userRepo    repositories.UserRepository
	depositRepo repositories.DepositRepository
	uow         repositories.UnitOfWork
	rankings    RankingCache
}

// NewUserUsecase creates a new user usecase
func NewUserUsecase(
	userRepo repositories.UserRepository,
	depositRepo repositories.DepositRepository,
	uow repositories.UnitOfWork,
	rankings RankingCache,
) *UserUsecase {
	return &UserUsecase{
		userRepo:    userRepo,
		depositRepo: depositRepo,
		uow:         uow,
		rankings:    rankings,
	}
}

// GetByID gets a user by ID
func (u *UserUsecase) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, err
	}
	return user, nil
}

// ListUsers lists every participant account
func (u *UserUsecase) ListUsers(ctx context.Context) ([]*entities.User, error) {
	return u.userRepo.ListByRole(ctx, entities.UserRoleUser)
}

// UpdateProfile lets a user change their own name and plan
func (u *UserUsecase) UpdateProfile(ctx context.Context, id uuid.UUID, input *entities.UpdateProfileInput) (*entities.User, error) {
	return u.update(ctx, id, input.Name, input.PlanType, nil)
}

// UpdateUser lets an admin change name, plan and active flag
func (u *UserUsecase) UpdateUser(ctx context.Context, id uuid.UUID, input *entities.UpdateUserInput) (*entities.User, error) {
	return u.update(ctx, id, input.Name, input.PlanType, input.IsActive)
}

func (u *UserUsecase) update(ctx context.Context, id uuid.UUID, name, plan *string, active *bool) (*entities.User, error) {
	user, err := u.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, domainerrors.Validation("name cannot be empty")
		}
		user.Name = trimmed
	}
	if plan != nil {
		if trimmed := strings.TrimSpace(*plan); trimmed != "" {
			user.PlanType = null.StringFrom(trimmed)
		} else {
			user.PlanType = null.String{}
		}
	}
	if active != nil {
		user.IsActive = *active
	}

	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	u.rankings.InvalidateAll(ctx)
	return user, nil
}

// DeleteUser removes a user together with their deposits, badges and registrations
func (u *UserUsecase) DeleteUser(ctx context.Context, id uuid.UUID) error {
	var removed int64
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		if _, err := u.userRepo.GetByID(txCtx, id); err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return domainerrors.NotFound("user not found")
			}
			return err
		}

		n, err := u.depositRepo.DeleteByUser(txCtx, id)
		if err != nil {
			return err
		}
		removed = n
		return u.userRepo.Delete(txCtx, id)
	})
	if err != nil {
		return err
	}

	u.rankings.InvalidateAll(ctx)
	logger.Info(ctx, "User deleted", zap.String("user_id", id.String()), zap.Int64("deposits_removed", removed))
	return nil
}
