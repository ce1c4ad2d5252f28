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
	"gorm.io/gorm/clause"
)

// UserRepository implements user data operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	m := &models.User{
		ID:                  user.ID,
		Name:                user.Name,
		Phone:               user.Phone,
		PasswordHash:        user.PasswordHash,
		Role:                string(user.Role),
		PlanType:            user.PlanType.Ptr(),
		IsActive:            user.IsActive,
		NeedsPasswordChange: user.NeedsPasswordChange,
		CreatedAt:           user.CreatedAt,
		UpdatedAt:           user.UpdatedAt,
	}

	if err := GetDB(ctx, r.db).Omit(clause.Associations).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	user.CreatedAt = m.CreatedAt
	user.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	return r.first(ctx, "id = ?", id)
}

// GetByPhone gets a user by phone
func (r *UserRepository) GetByPhone(ctx context.Context, phone string) (*entities.User, error) {
	return r.first(ctx, "phone = ?", phone)
}

func (r *UserRepository) first(ctx context.Context, query string, args ...interface{}) (*entities.User, error) {
	var m models.User
	if err := r.withRelations(ctx).Where(query, args...).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *UserRepository) withRelations(ctx context.Context) *gorm.DB {
	return GetDB(ctx, r.db).
		Preload("Badges", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Registrations", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") })
}

// Update updates the mutable user fields. Badges and registrations have their own methods.
func (r *UserRepository) Update(ctx context.Context, user *entities.User) error {
	updates := map[string]interface{}{
		"name":                  user.Name,
		"plan_type":             user.PlanType.Ptr(),
		"role":                  string(user.Role),
		"is_active":             user.IsActive,
		"needs_password_change": user.NeedsPasswordChange,
		"password_hash":         user.PasswordHash,
		"updated_at":            time.Now(),
	}

	result := GetDB(ctx, r.db).Model(&models.User{}).Where("id = ?", user.ID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ListByRole lists users with role, newest first
func (r *UserRepository) ListByRole(ctx context.Context, role entities.UserRole) ([]*entities.User, error) {
	var userModels []models.User
	if err := r.withRelations(ctx).Where("role = ?", string(role)).Order("created_at DESC").Find(&userModels).Error; err != nil {
		return nil, err
	}
	return r.toEntities(userModels), nil
}

// ListParticipants lists active USER accounts in signup order
func (r *UserRepository) ListParticipants(ctx context.Context, eventID *uuid.UUID) ([]*entities.User, error) {
	query := r.withRelations(ctx).
		Where("role = ? AND is_active = ?", string(entities.UserRoleUser), true).
		Order("created_at ASC")

	if eventID != nil {
		sub := GetDB(ctx, r.db).Model(&models.EventRegistration{}).Select("user_id").Where("event_id = ?", *eventID)
		query = query.Where("id IN (?)", sub)
	}

	var userModels []models.User
	if err := query.Find(&userModels).Error; err != nil {
		return nil, err
	}
	return r.toEntities(userModels), nil
}

// AnyAdmin reports whether at least one ADMIN exists
func (r *UserRepository) AnyAdmin(ctx context.Context) (bool, error) {
	n, err := r.CountByRole(ctx, entities.UserRoleAdmin)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// AppendBadges inserts badges the user does not hold yet
func (r *UserRepository) AppendBadges(ctx context.Context, userID uuid.UUID, badges []entities.BadgeInstance) error {
	if len(badges) == 0 {
		return nil
	}

	rows := make([]models.UserBadge, 0, len(badges))
	for _, b := range badges {
		rows = append(rows, models.UserBadge{
			UserID:      userID,
			BadgeID:     b.ID,
			Name:        b.Name,
			Description: b.Description,
			Emoji:       b.Emoji,
			UnlockedAt:  b.UnlockedAt,
		})
	}

	return GetDB(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "badge_id"}},
			DoNothing: true,
		}).
		Create(&rows).Error
}

// RegisterEvent records that the user joined eventID
func (r *UserRepository) RegisterEvent(ctx context.Context, userID, eventID uuid.UUID) error {
	var n int64
	db := GetDB(ctx, r.db)
	if err := db.Model(&models.EventRegistration{}).Where("user_id = ? AND event_id = ?", userID, eventID).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return domainerrors.ErrAlreadyExists
	}
	return db.Create(&models.EventRegistration{UserID: userID, EventID: eventID}).Error
}

// UnregisterEvent removes the user's registration for eventID
func (r *UserRepository) UnregisterEvent(ctx context.Context, userID, eventID uuid.UUID) error {
	result := GetDB(ctx, r.db).Where("user_id = ? AND event_id = ?", userID, eventID).Delete(&models.EventRegistration{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Delete removes the user with their badges and registrations.
// Deposits are removed by the deposit repository inside the same unit of work.
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := GetDB(ctx, r.db)
	if err := db.Where("user_id = ?", id).Delete(&models.UserBadge{}).Error; err != nil {
		return err
	}
	if err := db.Where("user_id = ?", id).Delete(&models.EventRegistration{}).Error; err != nil {
		return err
	}
	result := db.Delete(&models.User{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// CountByRole counts users with role
func (r *UserRepository) CountByRole(ctx context.Context, role entities.UserRole) (int64, error) {
	var n int64
	if err := GetDB(ctx, r.db).Model(&models.User{}).Where("role = ?", string(role)).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// CountByPlan groups users with role by plan label
func (r *UserRepository) CountByPlan(ctx context.Context, role entities.UserRole) ([]entities.PlanCount, error) {
	var rows []struct {
		PlanType *string
		Count    int64
	}
	err := GetDB(ctx, r.db).Model(&models.User{}).
		Select("plan_type, COUNT(*) AS count").
		Where("role = ?", string(role)).
		Group("plan_type").
		Order("plan_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]entities.PlanCount, 0, len(rows))
	for _, row := range rows {
		out = append(out, entities.PlanCount{PlanType: null.StringFromPtr(row.PlanType), Count: row.Count})
	}
	return out, nil
}

func (r *UserRepository) toEntities(userModels []models.User) []*entities.User {
	users := make([]*entities.User, 0, len(userModels))
	for i := range userModels {
		users = append(users, r.toEntity(&userModels[i]))
	}
	return users
}

func (r *UserRepository) toEntity(m *models.User) *entities.User {
	u := &entities.User{
		ID:                  m.ID,
		Name:                m.Name,
		Phone:               m.Phone,
		PasswordHash:        m.PasswordHash,
		Role:                entities.UserRole(m.Role),
		PlanType:            null.StringFromPtr(m.PlanType),
		IsActive:            m.IsActive,
		NeedsPasswordChange: m.NeedsPasswordChange,
		RegisteredEvents:    make([]uuid.UUID, 0, len(m.Registrations)),
		Badges:              make([]entities.BadgeInstance, 0, len(m.Badges)),
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
	for _, reg := range m.Registrations {
		u.RegisteredEvents = append(u.RegisteredEvents, reg.EventID)
	}
	for _, b := range m.Badges {
		u.Badges = append(u.Badges, entities.BadgeInstance{
			ID:          b.BadgeID,
			Name:        b.Name,
			Description: b.Description,
			Emoji:       b.Emoji,
			UnlockedAt:  b.UnlockedAt,
		})
	}
	return u
}
