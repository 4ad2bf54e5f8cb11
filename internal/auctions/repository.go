package auctions

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/bidhaus/bidhaus-backend/pkg/db/models"
	"github.com/bidhaus/bidhaus-backend/pkg/enums"
	"github.com/bidhaus/bidhaus-backend/pkg/pagination"
)

// sortColumns whitelists the user-facing sort keys against column names.
var sortColumns = map[string]string{
	"created_at": "created_at",
	"start_time": "start_time",
	"end_time":   "end_time",
	"price":      "price",
}

// Repository wires together auction persistence helpers.
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

// Create inserts a new auction row.
func (r *Repository) Create(ctx context.Context, item *models.AuctionItem) (*models.AuctionItem, error) {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// Save persists all fields of an existing auction row.
func (r *Repository) Save(ctx context.Context, item *models.AuctionItem) (*models.AuctionItem, error) {
	if err := r.db.WithContext(ctx).Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// FindByID loads an auction regardless of its is_active flag.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.AuctionItem, error) {
	var item models.AuctionItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// SoftDelete flags the auction as inactive without removing the row.
func (r *Repository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&models.AuctionItem{}).
		Where("id = ?", id).
		UpdateColumn("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetPaymentStatus updates the payment marker on an auction.
func (r *Repository) SetPaymentStatus(ctx context.Context, id uuid.UUID, status enums.AuctionPaymentStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.AuctionItem{}).
		Where("id = ?", id).
		UpdateColumn("payment_status", status).Error
}

type auctionListQuery struct {
	Filters    AuctionListFilters
	Pagination pagination.Params
	SortBy     string
	SortOrder  string
	Now        time.Time
}

// List returns one page of active listings plus the unpaged total. Status
// filters are expressed as time-window predicates so the result does not
// depend on the stored status column being fresh.
func (r *Repository) List(ctx context.Context, query auctionListQuery) ([]models.AuctionItem, int64, error) {
	qb := r.db.WithContext(ctx).
		Model(&models.AuctionItem{}).
		Where("is_active = ?", true)

	filter := query.Filters
	if filter.Category != nil {
		qb = qb.Where("category = ?", *filter.Category)
	}
	if filter.Status != nil {
		switch *filter.Status {
		case enums.AuctionStatusUpcoming:
			qb = qb.Where("start_time > ?", query.Now)
		case enums.AuctionStatusActive:
			qb = qb.Where("start_time <= ? AND end_time >= ?", query.Now, query.Now)
		case enums.AuctionStatusEnded:
			qb = qb.Where("end_time < ?", query.Now)
		}
	}
	if search := strings.TrimSpace(filter.Query); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		qb = qb.Where("(LOWER(title) LIKE ? OR LOWER(description) LIKE ?)", pattern, pattern)
	}

	var total int64
	if err := qb.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := sortColumns[query.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if strings.EqualFold(query.SortOrder, "asc") {
		direction = "ASC"
	}

	params := query.Pagination.Normalize()

	var rows []models.AuctionItem
	err := qb.
		Order(fmt.Sprintf("%s %s", column, direction)).
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// ReconcileStatuses rewrites the stored status column for every row whose
// derived phase has drifted. The rewrite is idempotent. Returns the number of
// rows touched.
func (r *Repository) ReconcileStatuses(ctx context.Context, now time.Time) (int64, error) {
	var touched int64
	var errs error

	transitions := []struct {
		status enums.AuctionStatus
		where  string
	}{
		{enums.AuctionStatusUpcoming, "start_time > ?"},
		{enums.AuctionStatusActive, "start_time <= ? AND end_time >= ?"},
		{enums.AuctionStatusEnded, "end_time < ?"},
	}

	for _, t := range transitions {
		args := []any{now}
		if strings.Count(t.where, "?") == 2 {
			args = append(args, now)
		}

		result := r.db.WithContext(ctx).
			Model(&models.AuctionItem{}).
			Where("status <> ?", t.status).
			Where(t.where, args...).
			UpdateColumn("status", t.status)
		if result.Error != nil {
			errs = multierr.Append(errs, fmt.Errorf("reconcile %s: %w", t.status, result.Error))
			continue
		}
		touched += result.RowsAffected
	}

	return touched, errs
}
