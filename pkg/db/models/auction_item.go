package models

import (
	"time"

	"github.com/bidhaus/bidhaus-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AuctionItem represents a single auction listing.
//
// Status is a derived value: it is always a pure function of the clock against
// [StartTime, EndTime]. The stored column exists for reporting and is kept
// fresh by the reconcile worker; read paths must never trust it over a fresh
// derivation.
type AuctionItem struct {
	ID            uuid.UUID                  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title         string                     `gorm:"column:title;not null"`
	Description   string                     `gorm:"column:description;not null"`
	ImageURL      string                     `gorm:"column:image_url;not null"`
	StartTime     time.Time                  `gorm:"column:start_time;not null"`
	EndTime       time.Time                  `gorm:"column:end_time;not null"`
	Price         decimal.Decimal            `gorm:"column:price;type:numeric(12,2);not null"`
	Category      enums.AuctionCategory      `gorm:"column:category;type:text;not null"`
	Status        enums.AuctionStatus        `gorm:"column:status;type:text;not null;default:upcoming"`
	PaymentStatus enums.AuctionPaymentStatus `gorm:"column:payment_status;type:text;not null;default:unpaid"`
	IsActive      bool                       `gorm:"column:is_active;not null;default:true"`
	CreatedByID   uuid.UUID                  `gorm:"column:created_by_id;type:uuid;not null"`
	CreatedBy     *User                      `gorm:"foreignKey:CreatedByID"`
	CreatedAt     time.Time                  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time                  `gorm:"column:updated_at;autoUpdateTime"`
}
