package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bidhaus/bidhaus-backend/api/middleware"
	"github.com/bidhaus/bidhaus-backend/api/responses"
	"github.com/bidhaus/bidhaus-backend/api/validators"
	auctionsvc "github.com/bidhaus/bidhaus-backend/internal/auctions"
	"github.com/bidhaus/bidhaus-backend/pkg/enums"
	pkgerrors "github.com/bidhaus/bidhaus-backend/pkg/errors"
	"github.com/bidhaus/bidhaus-backend/pkg/logger"
	"github.com/bidhaus/bidhaus-backend/pkg/pagination"
)

// CreateAuction handles listing creation for authenticated users.
func CreateAuction(svc auctionsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auction service unavailable"))
			return
		}

		uid, err := requesterID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createAuctionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		auction, err := svc.CreateAuction(r.Context(), uid, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, auction)
	}
}

// GetAuction returns a single listing by id.
func GetAuction(svc auctionsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auction service unavailable"))
			return
		}

		id, err := auctionIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		ctx := auctionLogContext(r, logg, id)

		auction, err := svc.GetAuction(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, auction)
	}
}

// ListAuctions returns a filtered, sorted page of listings.
func ListAuctions(svc auctionsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auction service unavailable"))
			return
		}

		input, err := parseListAuctionsQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListAuctions(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// UpdateAuction applies a partial update to a listing.
func UpdateAuction(svc auctionsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auction service unavailable"))
			return
		}

		uid, err := requesterID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := auctionIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := auctionLogContext(r, logg, id)

		var payload updateAuctionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		auction, err := svc.UpdateAuction(ctx, id, uid, requesterRole(r), payload.toInput())
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, auction)
	}
}

// DeleteAuction soft deletes a listing.
func DeleteAuction(svc auctionsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auction service unavailable"))
			return
		}

		uid, err := requesterID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := auctionIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := auctionLogContext(r, logg, id)

		if err := svc.SoftDeleteAuction(ctx, id, uid, requesterRole(r)); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

type createAuctionRequest struct {
	Title       string          `json:"title" validate:"required"`
	Description string          `json:"description" validate:"required"`
	ImageURL    string          `json:"image_url" validate:"required"`
	StartTime   time.Time       `json:"start_time" validate:"required"`
	EndTime     time.Time       `json:"end_time" validate:"required"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category" validate:"required"`
}

func (r createAuctionRequest) toInput() auctionsvc.CreateAuctionInput {
	return auctionsvc.CreateAuctionInput{
		Title:       r.Title,
		Description: r.Description,
		ImageURL:    r.ImageURL,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		Price:       r.Price,
		Category:    enums.AuctionCategory(strings.ToLower(strings.TrimSpace(r.Category))),
	}
}

type updateAuctionRequest struct {
	Title       *string          `json:"title,omitempty"`
	Description *string          `json:"description,omitempty"`
	ImageURL    *string          `json:"image_url,omitempty"`
	StartTime   *time.Time       `json:"start_time,omitempty"`
	EndTime     *time.Time       `json:"end_time,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Category    *string          `json:"category,omitempty"`
}

func (r updateAuctionRequest) toInput() auctionsvc.UpdateAuctionInput {
	input := auctionsvc.UpdateAuctionInput{
		Title:       r.Title,
		Description: r.Description,
		ImageURL:    r.ImageURL,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		Price:       r.Price,
	}
	if r.Category != nil {
		category := enums.AuctionCategory(strings.ToLower(strings.TrimSpace(*r.Category)))
		input.Category = &category
	}
	return input
}

func parseListAuctionsQuery(r *http.Request) (auctionsvc.ListAuctionsInput, error) {
	var input auctionsvc.ListAuctionsInput

	page, err := validators.ParseQueryInt(r, "page", 1, 1, 1<<30)
	if err != nil {
		return input, err
	}
	limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
	if err != nil {
		return input, err
	}
	input.Pagination = pagination.Params{Page: page, Limit: limit}

	if raw := strings.TrimSpace(r.URL.Query().Get("category")); raw != "" {
		category, err := enums.ParseAuctionCategory(raw)
		if err != nil {
			return input, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category")
		}
		input.Filters.Category = &category
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
		status, err := enums.ParseAuctionStatus(raw)
		if err != nil {
			return input, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status")
		}
		input.Filters.Status = &status
	}
	input.Filters.Query = strings.TrimSpace(r.URL.Query().Get("search"))
	input.SortBy = queryFirst(r, "sortBy", "sort_by")
	input.SortOrder = queryFirst(r, "sortOrder", "sort_order")

	return input, nil
}

// queryFirst returns the first non-empty value among the aliased query keys.
func queryFirst(r *http.Request, keys ...string) string {
	for _, key := range keys {
		if value := strings.TrimSpace(r.URL.Query().Get(key)); value != "" {
			return value
		}
	}
	return ""
}

// auctionLogContext tags downstream log lines with the auction being acted on.
func auctionLogContext(r *http.Request, logg *logger.Logger, id uuid.UUID) context.Context {
	ctx := r.Context()
	if logg != nil {
		ctx = logg.WithAuctionID(ctx, id.String())
	}
	return ctx
}

// auctionIDParam parses the auction id path segment.
func auctionIDParam(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "auctionId")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeInvalidIdentifier, err, "invalid auction id")
	}
	return id, nil
}

func requesterRole(r *http.Request) enums.UserRole {
	return enums.UserRole(middleware.RoleFromContext(r.Context()))
}
