package entities

import (
	"time"

	"ahorros.backend/pkg/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultDepositDescription is stored when an admin leaves the description empty
const DefaultDepositDescription = "Depósito regular"

// Deposit is an immutable ledger entry
type Deposit struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"userId"`
	EventID     uuid.UUID       `json:"eventId"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	CreatedBy   uuid.UUID       `json:"createdBy"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// CreateDepositInput represents input for recording a deposit
type CreateDepositInput struct {
	UserID      uuid.UUID       `json:"userId" binding:"required"`
	EventID     uuid.UUID       `json:"eventId" binding:"required"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description" binding:"max=255"`
}

// DepositFilter narrows ledger queries. Results are newest first.
type DepositFilter struct {
	UserID     *uuid.UUID
	EventID    *uuid.UUID
	Pagination utils.PaginationParams
}

// DepositResult is the outcome of recording a deposit.
// ReceiptGenerated=false with ReceiptError set is a degraded success:
// the deposit is committed, only derived output is missing. Progress is nil
// when the history could not be reloaded.
type DepositResult struct {
	Deposit          *Deposit         `json:"deposit"`
	TotalSaved       decimal.Decimal  `json:"totalSaved"`
	Progress         *ProgressSummary `json:"progress"`
	NewBadges        []BadgeInstance  `json:"newBadges"`
	ReceiptGenerated bool             `json:"receiptGenerated"`
	PDFURL           string           `json:"pdfUrl,omitempty"`
	WhatsAppLink     string           `json:"whatsappLink,omitempty"`
	ReceiptError     string           `json:"receiptError,omitempty"`
}

// DepositPage is a paginated ledger listing
type DepositPage struct {
	Items []*Deposit           `json:"items"`
	Meta  utils.PaginationMeta `json:"meta"`
}
