package repositories

import (
	"context"

	"ahorros.backend/internal/domain/entities"
	"github.com/google/uuid"
)

// EventRepository defines savings event data operations
type EventRepository interface {
	Create(ctx context.Context, event *entities.Event) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Event, error)
	// GetPrimary returns the active primary event, or the oldest active event when none is flagged
	GetPrimary(ctx context.Context) (*entities.Event, error)
	ListActive(ctx context.Context) ([]*entities.Event, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.Event, error)
	Update(ctx context.Context, event *entities.Event) error
	// ClearPrimary unsets the primary flag on every event except the given one
	ClearPrimary(ctx context.Context, except uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}
