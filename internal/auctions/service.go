package auctions

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/bidhaus/bidhaus-backend/pkg/db/models"
	"github.com/bidhaus/bidhaus-backend/pkg/enums"
	pkgerrors "github.com/bidhaus/bidhaus-backend/pkg/errors"
)

const (
	titleMinLen       = 3
	titleMaxLen       = 200
	descriptionMinLen = 10
	descriptionMaxLen = 2000
)

// Service defines the behavior needed by the auctions controller.
type Service interface {
	CreateAuction(ctx context.Context, ownerID uuid.UUID, input CreateAuctionInput) (*AuctionDTO, error)
	UpdateAuction(ctx context.Context, id, requesterID uuid.UUID, role enums.UserRole, patch UpdateAuctionInput) (*AuctionDTO, error)
	SoftDeleteAuction(ctx context.Context, id, requesterID uuid.UUID, role enums.UserRole) error
	GetAuction(ctx context.Context, id uuid.UUID) (*AuctionDTO, error)
	ListAuctions(ctx context.Context, input ListAuctionsInput) (*AuctionListResult, error)
}

type auctionRepository interface {
	Create(ctx context.Context, item *models.AuctionItem) (*models.AuctionItem, error)
	Save(ctx context.Context, item *models.AuctionItem) (*models.AuctionItem, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.AuctionItem, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, query auctionListQuery) ([]models.AuctionItem, int64, error)
}

type service struct {
	repo auctionRepository
	now  func() time.Time
}

// ServiceParams bundles the dependencies required to build an auctions service.
type ServiceParams struct {
	Repo auctionRepository
	Now  func() time.Time
}

// NewService constructs an auctions service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("auction repository is required")
	}
	now := params.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &service{repo: params.Repo, now: now}, nil
}

func (s *service) CreateAuction(ctx context.Context, ownerID uuid.UUID, input CreateAuctionInput) (*AuctionDTO, error) {
	now := s.now()

	details := map[string]string{}
	validateTitle(input.Title, details)
	validateDescription(input.Description, details)
	validateImageURL(input.ImageURL, details)
	validatePrice(input.Price, details)
	if !input.Category.IsValid() {
		details["category"] = "must be a known category"
	}
	// Strictly-future start is its own failure, independent of window order.
	if !input.StartTime.After(now) {
		details["start_time"] = "must be in the future"
	}
	if !input.EndTime.After(input.StartTime) {
		details["end_time"] = "must be after start_time"
	}
	if len(details) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}

	item := &models.AuctionItem{
		Title:         strings.TrimSpace(input.Title),
		Description:   strings.TrimSpace(input.Description),
		ImageURL:      input.ImageURL,
		StartTime:     input.StartTime,
		EndTime:       input.EndTime,
		Price:         input.Price,
		Category:      input.Category,
		Status:        DeriveStatus(now, input.StartTime, input.EndTime),
		PaymentStatus: enums.AuctionPaymentStatusUnpaid,
		IsActive:      true,
		CreatedByID:   ownerID,
	}

	created, err := s.repo.Create(ctx, item)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: create auction")
	}
	return FromModel(created, now), nil
}

func (s *service) UpdateAuction(ctx context.Context, id, requesterID uuid.UUID, role enums.UserRole, patch UpdateAuctionInput) (*AuctionDTO, error) {
	now := s.now()

	item, err := s.loadMutable(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeMutation(item, requesterID, role, now); err != nil {
		return nil, err
	}

	details := map[string]string{}
	if patch.Title != nil {
		validateTitle(*patch.Title, details)
		item.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		validateDescription(*patch.Description, details)
		item.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.ImageURL != nil {
		validateImageURL(*patch.ImageURL, details)
		item.ImageURL = *patch.ImageURL
	}
	if patch.Price != nil {
		validatePrice(*patch.Price, details)
		item.Price = *patch.Price
	}
	if patch.Category != nil {
		if !patch.Category.IsValid() {
			details["category"] = "must be a known category"
		}
		item.Category = *patch.Category
	}
	if patch.StartTime != nil {
		if !patch.StartTime.After(now) {
			details["start_time"] = "must be in the future"
		}
		item.StartTime = *patch.StartTime
	}
	if patch.EndTime != nil {
		item.EndTime = *patch.EndTime
	}
	// Window order is re-checked against the patched pair, whichever side moved.
	if !item.EndTime.After(item.StartTime) {
		details["end_time"] = "must be after start_time"
	}
	if len(details) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}

	item.Status = DeriveStatus(now, item.StartTime, item.EndTime)

	saved, err := s.repo.Save(ctx, item)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update auction")
	}
	return FromModel(saved, now), nil
}

func (s *service) SoftDeleteAuction(ctx context.Context, id, requesterID uuid.UUID, role enums.UserRole) error {
	now := s.now()

	item, err := s.loadMutable(ctx, id)
	if err != nil {
		return err
	}
	if err := authorizeMutation(item, requesterID, role, now); err != nil {
		return err
	}

	if err := s.repo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "auction not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: soft delete auction")
	}
	return nil
}

func (s *service) GetAuction(ctx context.Context, id uuid.UUID) (*AuctionDTO, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "auction not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: get auction")
	}
	return FromModel(item, s.now()), nil
}

func (s *service) ListAuctions(ctx context.Context, input ListAuctionsInput) (*AuctionListResult, error) {
	now := s.now()
	params := input.Pagination.Normalize()

	rows, total, err := s.repo.List(ctx, auctionListQuery{
		Filters:    input.Filters,
		Pagination: params,
		SortBy:     input.SortBy,
		SortOrder:  input.SortOrder,
		Now:        now,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list auctions")
	}

	auctions := make([]AuctionDTO, 0, len(rows))
	for i := range rows {
		auctions = append(auctions, *FromModel(&rows[i], now))
	}

	return &AuctionListResult{
		Auctions:   auctions,
		Pagination: params.Meta(total),
	}, nil
}

// loadMutable fetches a row for mutation. Soft-deleted rows are treated as
// absent here even though GetAuction still serves them.
func (s *service) loadMutable(ctx context.Context, id uuid.UUID) (*models.AuctionItem, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "auction not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: get auction")
	}
	if !item.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "auction not found")
	}
	return item, nil
}

func validateTitle(title string, details map[string]string) {
	length := utf8.RuneCountInString(strings.TrimSpace(title))
	if length < titleMinLen || length > titleMaxLen {
		details["title"] = fmt.Sprintf("must be between %d and %d characters", titleMinLen, titleMaxLen)
	}
}

func validateDescription(description string, details map[string]string) {
	length := utf8.RuneCountInString(strings.TrimSpace(description))
	if length < descriptionMinLen || length > descriptionMaxLen {
		details["description"] = fmt.Sprintf("must be between %d and %d characters", descriptionMinLen, descriptionMaxLen)
	}
}

func validateImageURL(raw string, details map[string]string) {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || !parsed.IsAbs() || parsed.Host == "" {
		details["image_url"] = "must be a valid absolute URL"
	}
}

func validatePrice(price decimal.Decimal, details map[string]string) {
	if price.IsNegative() {
		details["price"] = "must not be negative"
	}
}
