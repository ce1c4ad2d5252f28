package repositories

import (
	"context"

	"ahorros.backend/internal/domain/entities"
	"github.com/google/uuid"
)

// UserRepository defines user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByPhone(ctx context.Context, phone string) (*entities.User, error)
	Update(ctx context.Context, user *entities.User) error
	ListByRole(ctx context.Context, role entities.UserRole) ([]*entities.User, error)
	// ListParticipants returns active USER accounts, restricted to those
	// registered for eventID when it is set.
	ListParticipants(ctx context.Context, eventID *uuid.UUID) ([]*entities.User, error)
	AnyAdmin(ctx context.Context) (bool, error)
	// AppendBadges stores badges the user does not hold yet; held ids are skipped.
	AppendBadges(ctx context.Context, userID uuid.UUID, badges []entities.BadgeInstance) error
	RegisterEvent(ctx context.Context, userID, eventID uuid.UUID) error
	UnregisterEvent(ctx context.Context, userID, eventID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByRole(ctx context.Context, role entities.UserRole) (int64, error)
	CountByPlan(ctx context.Context, role entities.UserRole) ([]entities.PlanCount, error)
}
