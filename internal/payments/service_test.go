package payments

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/bidhaus/bidhaus-backend/pkg/db/models"
	"github.com/bidhaus/bidhaus-backend/pkg/enums"
	pkgerrors "github.com/bidhaus/bidhaus-backend/pkg/errors"
	"github.com/bidhaus/bidhaus-backend/pkg/pagination"
)

type fakeTransactionRepo struct {
	txns map[uuid.UUID]*models.Transaction

	created   *models.Transaction
	saved     *models.Transaction
	listRows  []models.Transaction
	listTotal int64
	lastQuery transactionListQuery
}

func newFakeTransactionRepo() *fakeTransactionRepo {
	return &fakeTransactionRepo{txns: map[uuid.UUID]*models.Transaction{}}
}

func (f *fakeTransactionRepo) Create(_ context.Context, txn *models.Transaction) (*models.Transaction, error) {
	if txn.ID == uuid.Nil {
		txn.ID = uuid.New()
	}
	f.created = txn
	f.txns[txn.ID] = txn
	return txn, nil
}

func (f *fakeTransactionRepo) Save(_ context.Context, txn *models.Transaction) (*models.Transaction, error) {
	f.saved = txn
	f.txns[txn.ID] = txn
	return txn, nil
}

func (f *fakeTransactionRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Transaction, error) {
	txn, ok := f.txns[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *txn
	return &copied, nil
}

func (f *fakeTransactionRepo) ListByUser(_ context.Context, query transactionListQuery) ([]models.Transaction, int64, error) {
	f.lastQuery = query
	return f.listRows, f.listTotal, nil
}

type fakeAuctionStore struct {
	auctions map[uuid.UUID]*models.AuctionItem

	markedPaid []uuid.UUID
	markErr    error
}

func newFakeAuctionStore() *fakeAuctionStore {
	return &fakeAuctionStore{auctions: map[uuid.UUID]*models.AuctionItem{}}
}

func (f *fakeAuctionStore) FindByID(_ context.Context, id uuid.UUID) (*models.AuctionItem, error) {
	auction, ok := f.auctions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return auction, nil
}

func (f *fakeAuctionStore) SetPaymentStatus(_ context.Context, id uuid.UUID, status enums.AuctionPaymentStatus) error {
	if f.markErr != nil {
		return f.markErr
	}
	if status == enums.AuctionPaymentStatusPaid {
		f.markedPaid = append(f.markedPaid, id)
	}
	return nil
}

func paymentNow() time.Time {
	return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
}

func newPaymentService(t *testing.T, repo *fakeTransactionRepo, auctions *fakeAuctionStore) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Repo:     repo,
		Auctions: auctions,
		Now:      paymentNow,
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func seedAuctionRow(store *fakeAuctionStore) uuid.UUID {
	id := uuid.New()
	store.auctions[id] = &models.AuctionItem{ID: id, IsActive: true}
	return id
}

func TestCreateTransaction(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo := newFakeTransactionRepo()
		store := newFakeAuctionStore()
		svc := newPaymentService(t, repo, store)
		auctionID := seedAuctionRow(store)
		userID := uuid.New()

		dto, err := svc.CreateTransaction(context.Background(), userID, CreateTransactionInput{
			AuctionID:     auctionID,
			Amount:        decimal.NewFromInt(250),
			Type:          enums.TransactionTypeBidDeposit,
			PaymentMethod: enums.PaymentMethodWallet,
		})
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if dto.Status != enums.TransactionStatusPending {
			t.Fatalf("expected pending, got %v", dto.Status)
		}
		if dto.UserID != userID {
			t.Fatalf("owner not bound from context: %v", dto.UserID)
		}
		if !strings.HasPrefix(dto.ReferenceNumber, "TXN-") {
			t.Fatalf("unexpected reference shape: %q", dto.ReferenceNumber)
		}
		if dto.ProcessedAt != nil {
			t.Fatal("processed_at must be unset on creation")
		}
	})

	t.Run("operatorTypesRejected", func(t *testing.T) {
		repo := newFakeTransactionRepo()
		store := newFakeAuctionStore()
		svc := newPaymentService(t, repo, store)
		auctionID := seedAuctionRow(store)

		for _, txType := range []enums.TransactionType{enums.TransactionTypeRefund, enums.TransactionTypeSellerPayout} {
			_, err := svc.CreateTransaction(context.Background(), uuid.New(), CreateTransactionInput{
				AuctionID:     auctionID,
				Amount:        decimal.NewFromInt(10),
				Type:          txType,
				PaymentMethod: enums.PaymentMethodCash,
			})
			if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation error for %v, got %v", txType, err)
			}
		}
		if repo.created != nil {
			t.Fatal("rejected input must not reach the repository")
		}
	})

	t.Run("unknownAuction", func(t *testing.T) {
		repo := newFakeTransactionRepo()
		store := newFakeAuctionStore()
		svc := newPaymentService(t, repo, store)

		_, err := svc.CreateTransaction(context.Background(), uuid.New(), CreateTransactionInput{
			AuctionID:     uuid.New(),
			Amount:        decimal.NewFromInt(10),
			Type:          enums.TransactionTypeBidDeposit,
			PaymentMethod: enums.PaymentMethodWallet,
		})
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
			t.Fatalf("expected not found, got %v", err)
		}
	})

	t.Run("negativeAmountRejected", func(t *testing.T) {
		repo := newFakeTransactionRepo()
		store := newFakeAuctionStore()
		svc := newPaymentService(t, repo, store)
		auctionID := seedAuctionRow(store)

		_, err := svc.CreateTransaction(context.Background(), uuid.New(), CreateTransactionInput{
			AuctionID:     auctionID,
			Amount:        decimal.NewFromInt(-1),
			Type:          enums.TransactionTypeBidDeposit,
			PaymentMethod: enums.PaymentMethodWallet,
		})
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error, got %v", err)
		}
	})
}

func TestConfirmTransaction(t *testing.T) {
	seedPending := func(repo *fakeTransactionRepo, userID, auctionID uuid.UUID, txType enums.TransactionType) uuid.UUID {
		id := uuid.New()
		repo.txns[id] = &models.Transaction{
			ID:            id,
			UserID:        userID,
			AuctionID:     auctionID,
			Type:          txType,
			Status:        enums.TransactionStatusPending,
			PaymentMethod: enums.PaymentMethodWallet,
			Amount:        decimal.NewFromInt(100),
		}
		return id
	}

	t.Run("completesAndStamps", func(t *testing.T) {
		repo := newFakeTransactionRepo()
		store := newFakeAuctionStore()
		svc := newPaymentService(t, repo, store)
		userID := uuid.New()
		id := seedPending(repo, userID, uuid.New(), enums.TransactionTypeBidDeposit)

		reference := "gateway-123"
		dto, err := svc.ConfirmTransaction(context.Background(), userID, ConfirmTransactionInput{
			TransactionID:    id,
			PaymentReference: &reference,
		})
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if dto.Status != enums.TransactionStatusCompleted {
			t.Fatalf("expected completed, got %v", dto.Status)
		}
		if dto.ProcessedAt == nil || !dto.ProcessedAt.Equal(paymentNow()) {
			t.Fatalf("expected processed_at = injected now, got %v", dto.ProcessedAt)
		}
		if dto.PaymentReference == nil || *dto.PaymentReference != reference {
			t.Fatalf("expected reference overwrite, got %v", dto.PaymentReference)
		}
		if len(store.markedPaid) != 0 {
			t.Fatal("bid_deposit must not mark the auction paid")
		}
	})

	t.Run("ownerMismatchLeavesStateUntouched", func(t *testing.T) {
		repo := newFakeTransactionRepo()
		store := newFakeAuctionStore()
		svc := newPaymentService(t, repo, store)
		owner := uuid.New()
		id := seedPending(repo, owner, uuid.New(), enums.TransactionTypeBidDeposit)

		_, err := svc.ConfirmTransaction(context.Background(), uuid.New(), ConfirmTransactionInput{TransactionID: id})
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeForbidden {
			t.Fatalf("expected forbidden, got %v", err)
		}
		if repo.saved != nil {
			t.Fatal("forbidden confirm must not persist")
		}
		if repo.txns[id].Status != enums.TransactionStatusPending {
			t.Fatalf("status changed on forbidden confirm: %v", repo.txns[id].Status)
		}
	})

	t.Run("nonPendingRejected", func(t *testing.T) {
		repo := newFakeTransactionRepo()
		store := newFakeAuctionStore()
		svc := newPaymentService(t, repo, store)
		userID := uuid.New()
		id := seedPending(repo, userID, uuid.New(), enums.TransactionTypeBidDeposit)
		repo.txns[id].Status = enums.TransactionStatusCompleted

		_, err := svc.ConfirmTransaction(context.Background(), userID, ConfirmTransactionInput{TransactionID: id})
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
			t.Fatalf("expected state conflict, got %v", err)
		}
	})

	t.Run("winningPaymentMarksAuctionPaid", func(t *testing.T) {
		repo := newFakeTransactionRepo()
		store := newFakeAuctionStore()
		svc := newPaymentService(t, repo, store)
		userID := uuid.New()
		auctionID := seedAuctionRow(store)
		id := seedPending(repo, userID, auctionID, enums.TransactionTypeWinningPayment)

		_, err := svc.ConfirmTransaction(context.Background(), userID, ConfirmTransactionInput{TransactionID: id})
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if len(store.markedPaid) != 1 || store.markedPaid[0] != auctionID {
			t.Fatalf("expected paid marker for %v, got %v", auctionID, store.markedPaid)
		}
	})

	t.Run("markerFailureDoesNotRollBack", func(t *testing.T) {
		repo := newFakeTransactionRepo()
		store := newFakeAuctionStore()
		store.markErr = gorm.ErrInvalidDB
		svc := newPaymentService(t, repo, store)
		userID := uuid.New()
		id := seedPending(repo, userID, seedAuctionRow(store), enums.TransactionTypeWinningPayment)

		dto, err := svc.ConfirmTransaction(context.Background(), userID, ConfirmTransactionInput{TransactionID: id})
		if err != nil {
			t.Fatalf("marker failure must not fail the confirm, got %v", err)
		}
		if dto.Status != enums.TransactionStatusCompleted {
			t.Fatalf("expected completed, got %v", dto.Status)
		}
	})

	t.Run("unknownTransaction", func(t *testing.T) {
		repo := newFakeTransactionRepo()
		store := newFakeAuctionStore()
		svc := newPaymentService(t, repo, store)

		_, err := svc.ConfirmTransaction(context.Background(), uuid.New(), ConfirmTransactionInput{TransactionID: uuid.New()})
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
			t.Fatalf("expected not found, got %v", err)
		}
	})
}

func TestListTransactions(t *testing.T) {
	repo := newFakeTransactionRepo()
	store := newFakeAuctionStore()
	svc := newPaymentService(t, repo, store)
	userID := uuid.New()
	repo.listRows = make([]models.Transaction, 5)
	repo.listTotal = 12

	txType := enums.TransactionTypeBidDeposit
	result, err := svc.ListTransactions(context.Background(), userID, ListTransactionsInput{
		Filters:    TransactionListFilters{Type: &txType},
		Pagination: pagination.Params{Page: 2, Limit: 5},
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if repo.lastQuery.UserID != userID {
		t.Fatalf("list must be scoped to the requester, got %v", repo.lastQuery.UserID)
	}
	meta := result.Pagination
	if meta.Current != 2 || meta.Pages != 3 || meta.Total != 12 || meta.Limit != 5 {
		t.Fatalf("unexpected pagination meta: %+v", meta)
	}
}
