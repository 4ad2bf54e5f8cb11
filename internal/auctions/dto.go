package auctions

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bidhaus/bidhaus-backend/pkg/db/models"
	"github.com/bidhaus/bidhaus-backend/pkg/enums"
	"github.com/bidhaus/bidhaus-backend/pkg/pagination"
	"github.com/bidhaus/bidhaus-backend/pkg/types"
)

// AuctionDTO is the transport shape for a single listing. Status is always
// derived against the clock at response time, never read from storage.
type AuctionDTO struct {
	ID            uuid.UUID                  `json:"id"`
	Title         string                     `json:"title"`
	Description   string                     `json:"description"`
	ImageURL      string                     `json:"image_url"`
	StartTime     time.Time                  `json:"start_time"`
	EndTime       time.Time                  `json:"end_time"`
	Price         decimal.Decimal            `json:"price"`
	Category      enums.AuctionCategory      `json:"category"`
	Status        enums.AuctionStatus        `json:"status"`
	PaymentStatus enums.AuctionPaymentStatus `json:"payment_status"`
	IsActive      bool                       `json:"is_active"`
	CreatedByID   uuid.UUID                  `json:"created_by_id"`
	CreatedAt     time.Time                  `json:"created_at"`
	UpdatedAt     time.Time                  `json:"updated_at"`
}

// CreateAuctionInput captures the fields accepted when creating a listing.
// The owner comes from the authenticated context, never the payload.
type CreateAuctionInput struct {
	Title       string
	Description string
	ImageURL    string
	StartTime   time.Time
	EndTime     time.Time
	Price       decimal.Decimal
	Category    enums.AuctionCategory
}

// UpdateAuctionInput carries the patchable fields; nil means unchanged.
type UpdateAuctionInput struct {
	Title       *string
	Description *string
	ImageURL    *string
	StartTime   *time.Time
	EndTime     *time.Time
	Price       *decimal.Decimal
	Category    *enums.AuctionCategory
}

// AuctionListFilters describe the supported filter knobs for the browse endpoint.
type AuctionListFilters struct {
	Category *enums.AuctionCategory
	Status   *enums.AuctionStatus
	Query    string
}

// ListAuctionsInput captures the inputs needed to paginate/filter listings.
type ListAuctionsInput struct {
	Filters    AuctionListFilters
	Pagination pagination.Params
	SortBy     string
	SortOrder  string
}

// AuctionListResult bundles one page of listings with its pagination metadata.
type AuctionListResult struct {
	Auctions   []AuctionDTO   `json:"auctions"`
	Pagination types.PageMeta `json:"pagination"`
}

// FromModel maps a row to its DTO, deriving status at the provided instant.
func FromModel(m *models.AuctionItem, now time.Time) *AuctionDTO {
	if m == nil {
		return nil
	}

	return &AuctionDTO{
		ID:            m.ID,
		Title:         m.Title,
		Description:   m.Description,
		ImageURL:      m.ImageURL,
		StartTime:     m.StartTime,
		EndTime:       m.EndTime,
		Price:         m.Price,
		Category:      m.Category,
		Status:        DeriveStatus(now, m.StartTime, m.EndTime),
		PaymentStatus: m.PaymentStatus,
		IsActive:      m.IsActive,
		CreatedByID:   m.CreatedByID,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
