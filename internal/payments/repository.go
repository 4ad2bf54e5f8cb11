package payments

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bidhaus/bidhaus-backend/pkg/db/models"
	"github.com/bidhaus/bidhaus-backend/pkg/pagination"
)

// Repository wires together ledger persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts a new ledger row.
func (r *Repository) Create(ctx context.Context, txn *models.Transaction) (*models.Transaction, error) {
	if err := r.db.WithContext(ctx).Create(txn).Error; err != nil {
		return nil, err
	}
	return txn, nil
}

// Save persists all fields of an existing ledger row.
func (r *Repository) Save(ctx context.Context, txn *models.Transaction) (*models.Transaction, error) {
	if err := r.db.WithContext(ctx).Save(txn).Error; err != nil {
		return nil, err
	}
	return txn, nil
}

// FindByID loads a ledger row by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	var txn models.Transaction
	if err := r.db.WithContext(ctx).First(&txn, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &txn, nil
}

type transactionListQuery struct {
	UserID     uuid.UUID
	Filters    TransactionListFilters
	Pagination pagination.Params
}

// ListByUser returns one page of the user's ledger entries, newest first,
// plus the unpaged total.
func (r *Repository) ListByUser(ctx context.Context, query transactionListQuery) ([]models.Transaction, int64, error) {
	qb := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("user_id = ?", query.UserID)

	if query.Filters.Type != nil {
		qb = qb.Where("type = ?", *query.Filters.Type)
	}
	if query.Filters.Status != nil {
		qb = qb.Where("status = ?", *query.Filters.Status)
	}

	var total int64
	if err := qb.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params := query.Pagination.Normalize()

	var rows []models.Transaction
	err := qb.
		Order("created_at DESC").
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
