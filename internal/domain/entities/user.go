package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// UserRole represents user roles
type UserRole string

const (
	UserRoleAdmin UserRole = "ADMIN"
	UserRoleUser  UserRole = "USER"
)

// Valid reports whether r is a known role
func (r UserRole) Valid() bool {
	return r == UserRoleAdmin || r == UserRoleUser
}

// User represents a participant or administrator
type User struct {
	ID                  uuid.UUID       `json:"id"`
	Name                string          `json:"name"`
	Phone               string          `json:"phone"`
	PasswordHash        string          `json:"-"`
	Role                UserRole        `json:"role"`
	PlanType            null.String     `json:"planType"`
	RegisteredEvents    []uuid.UUID     `json:"registeredEvents"`
	IsActive            bool            `json:"isActive"`
	NeedsPasswordChange bool            `json:"needsPasswordChange"`
	Badges              []BadgeInstance `json:"badges"`
	CreatedAt           time.Time       `json:"createdAt"`
	UpdatedAt           time.Time       `json:"updatedAt"`
}

// IsAdmin reports whether the user holds the ADMIN role
func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}

// HasBadge reports whether the user already holds badgeID
func (u *User) HasBadge(badgeID string) bool {
	for _, b := range u.Badges {
		if b.ID == badgeID {
			return true
		}
	}
	return false
}

// IsRegisteredFor reports whether the user joined eventID
func (u *User) IsRegisteredFor(eventID uuid.UUID) bool {
	for _, id := range u.RegisteredEvents {
		if id == eventID {
			return true
		}
	}
	return false
}

// UserRef is the short user view embedded in other payloads
type UserRef struct {
	ID       uuid.UUID   `json:"id"`
	Name     string      `json:"name"`
	Phone    string      `json:"phone"`
	Role     UserRole    `json:"role,omitempty"`
	PlanType null.String `json:"planType"`
}

// Ref returns the short view of u
func (u *User) Ref() *UserRef {
	return &UserRef{
		ID:       u.ID,
		Name:     u.Name,
		Phone:    u.Phone,
		Role:     u.Role,
		PlanType: u.PlanType,
	}
}

// RegisterUserInput represents input for creating a user
type RegisterUserInput struct {
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Phone    string `json:"phone" binding:"required,max=30"`
	Password string `json:"password" binding:"required,min=6"`
	PlanType string `json:"planType"`
	Role     string `json:"role" binding:"omitempty,oneof=USER ADMIN"`
}

// LoginInput represents input for user login
type LoginInput struct {
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ChangePasswordInput represents input for changing user password
type ChangePasswordInput struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

// UpdateProfileInput is what a user may change about themselves
type UpdateProfileInput struct {
	Name     *string `json:"name"`
	PlanType *string `json:"planType"`
}

// UpdateUserInput is what an admin may change about a user
type UpdateUserInput struct {
	Name     *string `json:"name"`
	PlanType *string `json:"planType"`
	IsActive *bool   `json:"isActive"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	AccessToken  string   `json:"token"`
	RefreshToken string   `json:"refreshToken,omitempty"`
	User         *UserRef `json:"user"`
	// NeedsPasswordChange mirrors the stored flag so clients can force the change screen
	NeedsPasswordChange bool `json:"needsPasswordChange"`
}
