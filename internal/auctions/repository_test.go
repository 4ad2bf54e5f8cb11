package auctions

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/bidhaus/bidhaus-backend/pkg/db/models"
	"github.com/bidhaus/bidhaus-backend/pkg/enums"
	"github.com/bidhaus/bidhaus-backend/pkg/pagination"
)

func setupAuctionsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	ddl := `
CREATE TABLE IF NOT EXISTS auction_items (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  description TEXT NOT NULL,
  image_url TEXT NOT NULL,
  start_time DATETIME NOT NULL,
  end_time DATETIME NOT NULL,
  price TEXT NOT NULL,
  category TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'upcoming',
  payment_status TEXT NOT NULL DEFAULT 'unpaid',
  is_active INTEGER NOT NULL DEFAULT 1,
  created_by_id TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(ddl).Error)
	return db
}

func seedAuction(t *testing.T, repo *Repository, mutate func(*models.AuctionItem)) *models.AuctionItem {
	t.Helper()

	now := time.Now().UTC()
	item := &models.AuctionItem{
		ID:            uuid.New(),
		Title:         "Seeded auction",
		Description:   "Seeded auction description text.",
		ImageURL:      "https://images.example.com/seed.jpg",
		StartTime:     now.Add(time.Hour),
		EndTime:       now.Add(2 * time.Hour),
		Price:         decimal.NewFromInt(100),
		Category:      enums.AuctionCategoryOther,
		Status:        enums.AuctionStatusUpcoming,
		PaymentStatus: enums.AuctionPaymentStatusUnpaid,
		IsActive:      true,
		CreatedByID:   uuid.New(),
	}
	if mutate != nil {
		mutate(item)
	}

	_, err := repo.Create(context.Background(), item)
	require.NoError(t, err)
	return item
}

func TestRepositoryListPagination(t *testing.T) {
	repo := NewRepository(setupAuctionsTestDB(t))
	base := time.Now().UTC()

	for i := 0; i < 25; i++ {
		i := i
		seedAuction(t, repo, func(item *models.AuctionItem) {
			item.Title = fmt.Sprintf("Listing %02d", i)
			item.CreatedAt = base.Add(time.Duration(i) * time.Second)
		})
	}

	rows, total, err := repo.List(context.Background(), auctionListQuery{
		Pagination: pagination.Params{Page: 2, Limit: 10},
		Now:        base,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 25, total)
	assert.Len(t, rows, 10)

	rows, total, err = repo.List(context.Background(), auctionListQuery{
		Pagination: pagination.Params{Page: 3, Limit: 10},
		Now:        base,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 25, total)
	assert.Len(t, rows, 5)
}

func TestRepositoryListStatusWindows(t *testing.T) {
	repo := NewRepository(setupAuctionsTestDB(t))
	now := time.Now().UTC()

	upcoming := seedAuction(t, repo, func(item *models.AuctionItem) {
		item.StartTime = now.Add(time.Hour)
		item.EndTime = now.Add(2 * time.Hour)
	})
	active := seedAuction(t, repo, func(item *models.AuctionItem) {
		item.StartTime = now.Add(-time.Hour)
		item.EndTime = now.Add(time.Hour)
		// Deliberately stale column: the window predicate must win.
		item.Status = enums.AuctionStatusUpcoming
	})
	ended := seedAuction(t, repo, func(item *models.AuctionItem) {
		item.StartTime = now.Add(-2 * time.Hour)
		item.EndTime = now.Add(-time.Hour)
	})

	cases := []struct {
		status enums.AuctionStatus
		wantID uuid.UUID
	}{
		{enums.AuctionStatusUpcoming, upcoming.ID},
		{enums.AuctionStatusActive, active.ID},
		{enums.AuctionStatusEnded, ended.ID},
	}

	for _, tc := range cases {
		t.Run(string(tc.status), func(t *testing.T) {
			status := tc.status
			rows, total, err := repo.List(context.Background(), auctionListQuery{
				Filters:    AuctionListFilters{Status: &status},
				Pagination: pagination.Params{Page: 1, Limit: 10},
				Now:        now,
			})
			require.NoError(t, err)
			require.EqualValues(t, 1, total)
			assert.Equal(t, tc.wantID, rows[0].ID)
		})
	}
}

func TestRepositoryListFilters(t *testing.T) {
	repo := NewRepository(setupAuctionsTestDB(t))
	now := time.Now().UTC()

	seedAuction(t, repo, func(item *models.AuctionItem) {
		item.Title = "Antique oak desk"
		item.Category = enums.AuctionCategoryFurniture
	})
	seedAuction(t, repo, func(item *models.AuctionItem) {
		item.Title = "Mountain BIKE frame"
		item.Description = "Aluminium frame, lightly used."
		item.Category = enums.AuctionCategoryOther
	})
	hidden := seedAuction(t, repo, func(item *models.AuctionItem) {
		item.Title = "Hidden listing"
	})
	require.NoError(t, repo.SoftDelete(context.Background(), hidden.ID))

	t.Run("categoryFilter", func(t *testing.T) {
		category := enums.AuctionCategoryFurniture
		rows, total, err := repo.List(context.Background(), auctionListQuery{
			Filters:    AuctionListFilters{Category: &category},
			Pagination: pagination.Params{Page: 1, Limit: 10},
			Now:        now,
		})
		require.NoError(t, err)
		require.EqualValues(t, 1, total)
		assert.Equal(t, "Antique oak desk", rows[0].Title)
	})

	t.Run("searchIsCaseInsensitive", func(t *testing.T) {
		rows, total, err := repo.List(context.Background(), auctionListQuery{
			Filters:    AuctionListFilters{Query: "bike"},
			Pagination: pagination.Params{Page: 1, Limit: 10},
			Now:        now,
		})
		require.NoError(t, err)
		require.EqualValues(t, 1, total)
		assert.Equal(t, "Mountain BIKE frame", rows[0].Title)
	})

	t.Run("searchMatchesDescription", func(t *testing.T) {
		_, total, err := repo.List(context.Background(), auctionListQuery{
			Filters:    AuctionListFilters{Query: "aluminium"},
			Pagination: pagination.Params{Page: 1, Limit: 10},
			Now:        now,
		})
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
	})

	t.Run("softDeletedExcluded", func(t *testing.T) {
		_, total, err := repo.List(context.Background(), auctionListQuery{
			Filters:    AuctionListFilters{Query: "hidden"},
			Pagination: pagination.Params{Page: 1, Limit: 10},
			Now:        now,
		})
		require.NoError(t, err)
		assert.EqualValues(t, 0, total)
	})
}

func TestRepositoryListSort(t *testing.T) {
	repo := NewRepository(setupAuctionsTestDB(t))
	now := time.Now().UTC()

	seedAuction(t, repo, func(item *models.AuctionItem) {
		item.Title = "Cheap"
		item.Price = decimal.NewFromInt(10)
	})
	seedAuction(t, repo, func(item *models.AuctionItem) {
		item.Title = "Expensive"
		item.Price = decimal.NewFromInt(900)
	})

	rows, _, err := repo.List(context.Background(), auctionListQuery{
		Pagination: pagination.Params{Page: 1, Limit: 10},
		SortBy:     "price",
		SortOrder:  "asc",
		Now:        now,
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Cheap", rows[0].Title)

	// Unknown sort keys must not reach SQL.
	_, _, err = repo.List(context.Background(), auctionListQuery{
		Pagination: pagination.Params{Page: 1, Limit: 10},
		SortBy:     "password_hash; DROP TABLE auction_items",
		Now:        now,
	})
	require.NoError(t, err)
}

func TestRepositorySoftDeleteAndFetch(t *testing.T) {
	repo := NewRepository(setupAuctionsTestDB(t))
	item := seedAuction(t, repo, nil)

	require.NoError(t, repo.SoftDelete(context.Background(), item.ID))

	found, err := repo.FindByID(context.Background(), item.ID)
	require.NoError(t, err)
	assert.False(t, found.IsActive)

	err = repo.SoftDelete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositorySetPaymentStatus(t *testing.T) {
	repo := NewRepository(setupAuctionsTestDB(t))
	item := seedAuction(t, repo, nil)

	require.NoError(t, repo.SetPaymentStatus(context.Background(), item.ID, enums.AuctionPaymentStatusPaid))

	found, err := repo.FindByID(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.AuctionPaymentStatusPaid, found.PaymentStatus)
}

func TestRepositoryReconcileStatuses(t *testing.T) {
	repo := NewRepository(setupAuctionsTestDB(t))
	now := time.Now().UTC()

	stale := seedAuction(t, repo, func(item *models.AuctionItem) {
		item.StartTime = now.Add(-2 * time.Hour)
		item.EndTime = now.Add(-time.Hour)
		item.Status = enums.AuctionStatusActive
	})
	fresh := seedAuction(t, repo, func(item *models.AuctionItem) {
		item.StartTime = now.Add(time.Hour)
		item.EndTime = now.Add(2 * time.Hour)
		item.Status = enums.AuctionStatusUpcoming
	})

	touched, err := repo.ReconcileStatuses(context.Background(), now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, touched)

	found, err := repo.FindByID(context.Background(), stale.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.AuctionStatusEnded, found.Status)

	found, err = repo.FindByID(context.Background(), fresh.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.AuctionStatusUpcoming, found.Status)

	// Second pass is a no-op.
	touched, err = repo.ReconcileStatuses(context.Background(), now)
	require.NoError(t, err)
	assert.EqualValues(t, 0, touched)
}
