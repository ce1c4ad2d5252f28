package repositories

import (
	"context"
	"errors"
	"time"

	"ahorros.backend/internal/domain/entities"
	domainerrors "ahorros.backend/internal/domain/errors"
	"ahorros.backend/internal/infrastructure/models"
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
)

// EventRepository implements savings event data operations
type EventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

// Create creates a new event
func (r *EventRepository) Create(ctx context.Context, event *entities.Event) error {
	m := r.toModel(event)
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return err
	}
	event.CreatedAt = m.CreatedAt
	event.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets an event by ID
func (r *EventRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Event, error) {
	var m models.Event
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetPrimary returns the active primary event, falling back to the oldest active one
func (r *EventRepository) GetPrimary(ctx context.Context) (*entities.Event, error) {
	var m models.Event
	err := GetDB(ctx, r.db).Where("is_primary = ? AND is_active = ?", true, true).First(&m).Error
	if err == nil {
		return r.toEntity(&m), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	err = GetDB(ctx, r.db).Where("is_active = ?", true).Order("created_at ASC").First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// ListActive lists active events, primary first then newest
func (r *EventRepository) ListActive(ctx context.Context) ([]*entities.Event, error) {
	var eventModels []models.Event
	err := GetDB(ctx, r.db).
		Where("is_active = ?", true).
		Order("is_primary DESC").
		Order("created_at DESC").
		Find(&eventModels).Error
	if err != nil {
		return nil, err
	}
	return r.toEntities(eventModels), nil
}

// ListByIDs lists the given events, newest first
func (r *EventRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.Event, error) {
	if len(ids) == 0 {
		return []*entities.Event{}, nil
	}
	var eventModels []models.Event
	if err := GetDB(ctx, r.db).Where("id IN ?", ids).Order("created_at DESC").Find(&eventModels).Error; err != nil {
		return nil, err
	}
	return r.toEntities(eventModels), nil
}

// Update updates an event
func (r *EventRepository) Update(ctx context.Context, event *entities.Event) error {
	updates := map[string]interface{}{
		"name":        event.Name,
		"description": event.Description.Ptr(),
		"goal":        event.Goal,
		"is_active":   event.IsActive,
		"is_primary":  event.IsPrimary,
		"emoji":       event.Emoji,
		"updated_at":  time.Now(),
	}

	result := GetDB(ctx, r.db).Model(&models.Event{}).Where("id = ?", event.ID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ClearPrimary unsets the primary flag everywhere except on the given event
func (r *EventRepository) ClearPrimary(ctx context.Context, except uuid.UUID) error {
	return GetDB(ctx, r.db).Model(&models.Event{}).
		Where("is_primary = ? AND id <> ?", true, except).
		Updates(map[string]interface{}{"is_primary": false, "updated_at": time.Now()}).Error
}

// Delete deletes an event. Callers check for referencing deposits first.
func (r *EventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := GetDB(ctx, r.db)
	if err := db.Where("event_id = ?", id).Delete(&models.EventRegistration{}).Error; err != nil {
		return err
	}
	result := db.Delete(&models.Event{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *EventRepository) toEntities(eventModels []models.Event) []*entities.Event {
	events := make([]*entities.Event, 0, len(eventModels))
	for i := range eventModels {
		events = append(events, r.toEntity(&eventModels[i]))
	}
	return events
}

func (r *EventRepository) toEntity(m *models.Event) *entities.Event {
	return &entities.Event{
		ID:          m.ID,
		Name:        m.Name,
		Description: null.StringFromPtr(m.Description),
		Goal:        m.Goal,
		IsActive:    m.IsActive,
		IsPrimary:   m.IsPrimary,
		Emoji:       m.Emoji,
		CreatedBy:   m.CreatedBy,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func (r *EventRepository) toModel(e *entities.Event) *models.Event {
	return &models.Event{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description.Ptr(),
		Goal:        e.Goal,
		IsActive:    e.IsActive,
		IsPrimary:   e.IsPrimary,
		Emoji:       e.Emoji,
		CreatedBy:   e.CreatedBy,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
