package models

import (
	"time"

	"github.com/bidhaus/bidhaus-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction records a single money-movement event tied to a user and an
// auction. Rows are append-and-advance: status only moves away from pending,
// and rows are never deleted.
type Transaction struct {
	ID               uuid.UUID               `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ReferenceNumber  string                  `gorm:"column:reference_number;not null;uniqueIndex"`
	UserID           uuid.UUID               `gorm:"column:user_id;type:uuid;not null"`
	AuctionID        uuid.UUID               `gorm:"column:auction_id;type:uuid;not null"`
	BidID            *uuid.UUID              `gorm:"column:bid_id;type:uuid"`
	Amount           decimal.Decimal         `gorm:"column:amount;type:numeric(12,2);not null"`
	Type             enums.TransactionType   `gorm:"column:type;type:text;not null"`
	Status           enums.TransactionStatus `gorm:"column:status;type:text;not null;default:pending"`
	PaymentMethod    enums.PaymentMethod     `gorm:"column:payment_method;type:text;not null"`
	PaymentReference *string                 `gorm:"column:payment_reference"`
	FailureReason    *string                 `gorm:"column:failure_reason"`
	ProcessedAt      *time.Time              `gorm:"column:processed_at"`
	CreatedAt        time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}
