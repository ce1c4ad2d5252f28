package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReceiptData is what a deposit receipt shows
type ReceiptData struct {
	DepositID  uuid.UUID
	Amount     decimal.Decimal
	RecordedAt time.Time
	UserName   string
	UserPhone  string
	PlanType   string
	UserRole   UserRole
	EventName  string
	TotalSaved decimal.Decimal
	RecordedBy string
}

// Receipt is a rendered receipt file
type Receipt struct {
	FileName string
	FilePath string
	URL      string
}
