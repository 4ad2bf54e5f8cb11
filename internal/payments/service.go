package payments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bidhaus/bidhaus-backend/pkg/db/models"
	"github.com/bidhaus/bidhaus-backend/pkg/enums"
	pkgerrors "github.com/bidhaus/bidhaus-backend/pkg/errors"
	"github.com/bidhaus/bidhaus-backend/pkg/logger"
)

// Service defines the behavior needed by the payments controller.
type Service interface {
	CreateTransaction(ctx context.Context, userID uuid.UUID, input CreateTransactionInput) (*TransactionDTO, error)
	ConfirmTransaction(ctx context.Context, userID uuid.UUID, input ConfirmTransactionInput) (*TransactionDTO, error)
	ListTransactions(ctx context.Context, userID uuid.UUID, input ListTransactionsInput) (*TransactionListResult, error)
}

type transactionRepository interface {
	Create(ctx context.Context, txn *models.Transaction) (*models.Transaction, error)
	Save(ctx context.Context, txn *models.Transaction) (*models.Transaction, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error)
	ListByUser(ctx context.Context, query transactionListQuery) ([]models.Transaction, int64, error)
}

// auctionStore is the slice of the auctions repo the ledger needs: existence
// checks on create and the paid marker on settlement.
type auctionStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.AuctionItem, error)
	SetPaymentStatus(ctx context.Context, id uuid.UUID, status enums.AuctionPaymentStatus) error
}

type service struct {
	repo     transactionRepository
	auctions auctionStore
	logg     *logger.Logger
	now      func() time.Time
}

// ServiceParams bundles the dependencies required to build a payments service.
type ServiceParams struct {
	Repo     transactionRepository
	Auctions auctionStore
	Logger   *logger.Logger
	Now      func() time.Time
}

// NewService constructs a payments service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("transaction repository is required")
	}
	if params.Auctions == nil {
		return nil, fmt.Errorf("auction store is required")
	}
	now := params.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &service{
		repo:     params.Repo,
		auctions: params.Auctions,
		logg:     params.Logger,
		now:      now,
	}, nil
}

func (s *service) CreateTransaction(ctx context.Context, userID uuid.UUID, input CreateTransactionInput) (*TransactionDTO, error) {
	// Clients can only open deposit and settlement entries; refunds and
	// payouts are operator-driven.
	if input.Type != enums.TransactionTypeBidDeposit && input.Type != enums.TransactionTypeWinningPayment {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "type must be bid_deposit or winning_payment")
	}
	if !input.PaymentMethod.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment method")
	}
	if input.Amount.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must not be negative")
	}

	if _, err := s.auctions.FindByID(ctx, input.AuctionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "auction not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: get auction")
	}

	txn := &models.Transaction{
		ReferenceNumber:  generateReference(s.now()),
		UserID:           userID,
		AuctionID:        input.AuctionID,
		BidID:            input.BidID,
		Amount:           input.Amount,
		Type:             input.Type,
		Status:           enums.TransactionStatusPending,
		PaymentMethod:    input.PaymentMethod,
		PaymentReference: input.PaymentReference,
	}

	created, err := s.repo.Create(ctx, txn)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: create transaction")
	}
	return FromModel(created), nil
}

func (s *service) ConfirmTransaction(ctx context.Context, userID uuid.UUID, input ConfirmTransactionInput) (*TransactionDTO, error) {
	txn, err := s.repo.FindByID(ctx, input.TransactionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "transaction not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: get transaction")
	}

	if txn.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not authorized to confirm this transaction")
	}
	if txn.Status != enums.TransactionStatusPending {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "only pending transactions can be confirmed")
	}

	now := s.now()
	txn.Status = enums.TransactionStatusCompleted
	txn.ProcessedAt = &now
	if input.PaymentReference != nil {
		txn.PaymentReference = input.PaymentReference
	}

	saved, err := s.repo.Save(ctx, txn)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: confirm transaction")
	}

	// Settlement marker is best-effort: the ledger entry is already
	// completed, so a failed marker write is logged and retried by hand,
	// never rolled back.
	if saved.Type == enums.TransactionTypeWinningPayment {
		if err := s.auctions.SetPaymentStatus(ctx, saved.AuctionID, enums.AuctionPaymentStatusPaid); err != nil && s.logg != nil {
			logCtx := s.logg.WithFields(ctx, map[string]any{
				"auction_id":     saved.AuctionID.String(),
				"transaction_id": saved.ID.String(),
			})
			s.logg.Error(logCtx, "payments.mark_paid_failed", err)
		}
	}

	return FromModel(saved), nil
}

func (s *service) ListTransactions(ctx context.Context, userID uuid.UUID, input ListTransactionsInput) (*TransactionListResult, error) {
	params := input.Pagination.Normalize()

	rows, total, err := s.repo.ListByUser(ctx, transactionListQuery{
		UserID:     userID,
		Filters:    input.Filters,
		Pagination: params,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list transactions")
	}

	transactions := make([]TransactionDTO, 0, len(rows))
	for i := range rows {
		transactions = append(transactions, *FromModel(&rows[i]))
	}

	return &TransactionListResult{
		Transactions: transactions,
		Pagination:   params.Meta(total),
	}, nil
}
