package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
)

// DefaultEventEmoji is used when an event is created without one
const DefaultEventEmoji = "🎯"

// Event is a savings campaign with its own goal
type Event struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description null.String     `json:"description"`
	Goal        decimal.Decimal `json:"goal"`
	IsActive    bool            `json:"isActive"`
	IsPrimary   bool            `json:"isPrimary"`
	Emoji       string          `json:"emoji"`
	CreatedBy   uuid.UUID       `json:"createdBy"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// CreateEventInput represents input for creating an event
type CreateEventInput struct {
	Name        string          `json:"name" binding:"required,max=150"`
	Description string          `json:"description"`
	Goal        decimal.Decimal `json:"goal"`
	Emoji       string          `json:"emoji"`
	IsPrimary   bool            `json:"isPrimary"`
}

// UpdateEventInput carries the fields to change; nil means untouched
type UpdateEventInput struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Goal        *decimal.Decimal `json:"goal"`
	Emoji       *string          `json:"emoji"`
	IsPrimary   *bool            `json:"isPrimary"`
	IsActive    *bool            `json:"isActive"`
}

// EventStats aggregates the ledger of one event
type EventStats struct {
	Event            *Event          `json:"event"`
	TotalSaved       decimal.Decimal `json:"totalSaved"`
	DepositCount     int             `json:"depositCount"`
	ParticipantCount int             `json:"participantCount"`
	ProgressPercent  decimal.Decimal `json:"progressPercent"`
	Deposits         []*Deposit      `json:"deposits"`
}

// RegistrationInput is used by admins to (un)register another user
type RegistrationInput struct {
	UserID uuid.UUID `json:"userId" binding:"required"`
}
