package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name                string    `gorm:"type:varchar(100);not null"`
	Phone               string    `gorm:"type:varchar(30);uniqueIndex;not null"`
	PasswordHash        string    `gorm:"type:varchar(255);not null"`
	Role                string    `gorm:"type:varchar(20);not null;index"`
	PlanType            *string   `gorm:"type:varchar(100)"`
	IsActive            bool      `gorm:"not null"`
	NeedsPasswordChange bool      `gorm:"not null"`
	CreatedAt           time.Time
	UpdatedAt           time.Time

	Badges        []UserBadge         `gorm:"foreignKey:UserID"`
	Registrations []EventRegistration `gorm:"foreignKey:UserID"`
}

// UserBadge is one awarded badge. The autoincrement id keeps award order.
type UserBadge struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_badges_user_badge"`
	BadgeID     string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_user_badges_user_badge"`
	Name        string    `gorm:"type:varchar(100);not null"`
	Description string    `gorm:"type:varchar(255)"`
	Emoji       string    `gorm:"type:varchar(16)"`
	UnlockedAt  time.Time `gorm:"not null"`
}

type EventRegistration struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	EventID   uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	CreatedAt time.Time
}

func (EventRegistration) TableName() string {
	return "user_event_registrations"
}
