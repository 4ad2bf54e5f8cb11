package payments

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bidhaus/bidhaus-backend/pkg/db/models"
	"github.com/bidhaus/bidhaus-backend/pkg/enums"
	"github.com/bidhaus/bidhaus-backend/pkg/pagination"
	"github.com/bidhaus/bidhaus-backend/pkg/types"
)

// TransactionDTO is the transport shape for a ledger row.
type TransactionDTO struct {
	ID               uuid.UUID               `json:"id"`
	ReferenceNumber  string                  `json:"reference_number"`
	UserID           uuid.UUID               `json:"user_id"`
	AuctionID        uuid.UUID               `json:"auction_id"`
	BidID            *uuid.UUID              `json:"bid_id,omitempty"`
	Amount           decimal.Decimal         `json:"amount"`
	Type             enums.TransactionType   `json:"type"`
	Status           enums.TransactionStatus `json:"status"`
	PaymentMethod    enums.PaymentMethod     `json:"payment_method"`
	PaymentReference *string                 `json:"payment_reference,omitempty"`
	FailureReason    *string                 `json:"failure_reason,omitempty"`
	ProcessedAt      *time.Time              `json:"processed_at,omitempty"`
	CreatedAt        time.Time               `json:"created_at"`
	UpdatedAt        time.Time               `json:"updated_at"`
}

// CreateTransactionInput captures the fields accepted when opening a ledger
// entry. The owner comes from the authenticated context.
type CreateTransactionInput struct {
	AuctionID        uuid.UUID
	BidID            *uuid.UUID
	Amount           decimal.Decimal
	Type             enums.TransactionType
	PaymentMethod    enums.PaymentMethod
	PaymentReference *string
}

// ConfirmTransactionInput identifies the pending entry to settle.
type ConfirmTransactionInput struct {
	TransactionID    uuid.UUID
	PaymentReference *string
}

// TransactionListFilters describe the supported filter knobs for history reads.
type TransactionListFilters struct {
	Type   *enums.TransactionType
	Status *enums.TransactionStatus
}

// ListTransactionsInput captures the inputs needed to page a user's history.
type ListTransactionsInput struct {
	Filters    TransactionListFilters
	Pagination pagination.Params
}

// TransactionListResult bundles one page of entries with pagination metadata.
type TransactionListResult struct {
	Transactions []TransactionDTO `json:"transactions"`
	Pagination   types.PageMeta   `json:"pagination"`
}

func FromModel(t *models.Transaction) *TransactionDTO {
	if t == nil {
		return nil
	}

	return &TransactionDTO{
		ID:               t.ID,
		ReferenceNumber:  t.ReferenceNumber,
		UserID:           t.UserID,
		AuctionID:        t.AuctionID,
		BidID:            t.BidID,
		Amount:           t.Amount,
		Type:             t.Type,
		Status:           t.Status,
		PaymentMethod:    t.PaymentMethod,
		PaymentReference: t.PaymentReference,
		FailureReason:    t.FailureReason,
		ProcessedAt:      t.ProcessedAt,
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
}
