package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Event struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name        string          `gorm:"type:varchar(150);not null"`
	Description *string         `gorm:"type:text"`
	Goal        decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	IsActive    bool            `gorm:"not null;index"`
	IsPrimary   bool            `gorm:"not null"`
	Emoji       string          `gorm:"type:varchar(16);not null"`
	CreatedBy   uuid.UUID       `gorm:"type:uuid;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
