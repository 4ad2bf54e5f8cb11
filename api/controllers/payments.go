package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bidhaus/bidhaus-backend/api/responses"
	"github.com/bidhaus/bidhaus-backend/api/validators"
	paymentsvc "github.com/bidhaus/bidhaus-backend/internal/payments"
	"github.com/bidhaus/bidhaus-backend/pkg/enums"
	pkgerrors "github.com/bidhaus/bidhaus-backend/pkg/errors"
	"github.com/bidhaus/bidhaus-backend/pkg/logger"
	"github.com/bidhaus/bidhaus-backend/pkg/pagination"
)

// CreatePayment opens a pending ledger entry for the authenticated user.
func CreatePayment(svc paymentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payment service unavailable"))
			return
		}

		uid, err := requesterID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createPaymentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		txn, err := svc.CreateTransaction(r.Context(), uid, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, txn)
	}
}

// ConfirmPayment settles a pending ledger entry.
func ConfirmPayment(svc paymentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payment service unavailable"))
			return
		}

		uid, err := requesterID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload confirmPaymentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		txn, err := svc.ConfirmTransaction(r.Context(), uid, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, txn)
	}
}

// ListTransactions returns the authenticated user's ledger history.
func ListTransactions(svc paymentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payment service unavailable"))
			return
		}

		uid, err := requesterID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := parseListTransactionsQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListTransactions(r.Context(), uid, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// AdminListTransactions returns the ledger history of an arbitrary user. The
// route is mounted behind the admin role check.
func AdminListTransactions(svc paymentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payment service unavailable"))
			return
		}

		target, err := uuid.Parse(strings.TrimSpace(r.URL.Query().Get("user_id")))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInvalidIdentifier, err, "invalid user id"))
			return
		}

		input, err := parseListTransactionsQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListTransactions(r.Context(), target, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

type createPaymentRequest struct {
	AuctionID        string          `json:"auction_id" validate:"required"`
	BidID            *string         `json:"bid_id,omitempty"`
	Amount           decimal.Decimal `json:"amount"`
	Type             string          `json:"type" validate:"required"`
	PaymentMethod    string          `json:"payment_method" validate:"required"`
	PaymentReference *string         `json:"payment_reference,omitempty"`
}

func (r createPaymentRequest) toInput() (paymentsvc.CreateTransactionInput, error) {
	auctionID, err := uuid.Parse(strings.TrimSpace(r.AuctionID))
	if err != nil {
		return paymentsvc.CreateTransactionInput{}, pkgerrors.Wrap(pkgerrors.CodeInvalidIdentifier, err, "invalid auction id")
	}

	input := paymentsvc.CreateTransactionInput{
		AuctionID:        auctionID,
		Amount:           r.Amount,
		Type:             enums.TransactionType(strings.ToLower(strings.TrimSpace(r.Type))),
		PaymentMethod:    enums.PaymentMethod(strings.ToLower(strings.TrimSpace(r.PaymentMethod))),
		PaymentReference: r.PaymentReference,
	}

	if r.BidID != nil && strings.TrimSpace(*r.BidID) != "" {
		bidID, err := uuid.Parse(strings.TrimSpace(*r.BidID))
		if err != nil {
			return paymentsvc.CreateTransactionInput{}, pkgerrors.Wrap(pkgerrors.CodeInvalidIdentifier, err, "invalid bid id")
		}
		input.BidID = &bidID
	}

	return input, nil
}

type confirmPaymentRequest struct {
	TransactionID    string  `json:"transaction_id" validate:"required"`
	PaymentReference *string `json:"payment_reference,omitempty"`
}

func (r confirmPaymentRequest) toInput() (paymentsvc.ConfirmTransactionInput, error) {
	id, err := uuid.Parse(strings.TrimSpace(r.TransactionID))
	if err != nil {
		return paymentsvc.ConfirmTransactionInput{}, pkgerrors.Wrap(pkgerrors.CodeInvalidIdentifier, err, "invalid transaction id")
	}
	return paymentsvc.ConfirmTransactionInput{
		TransactionID:    id,
		PaymentReference: r.PaymentReference,
	}, nil
}

func parseListTransactionsQuery(r *http.Request) (paymentsvc.ListTransactionsInput, error) {
	var input paymentsvc.ListTransactionsInput

	page, err := validators.ParseQueryInt(r, "page", 1, 1, 1<<30)
	if err != nil {
		return input, err
	}
	limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
	if err != nil {
		return input, err
	}
	input.Pagination = pagination.Params{Page: page, Limit: limit}

	if raw := strings.TrimSpace(r.URL.Query().Get("type")); raw != "" {
		txType, err := enums.ParseTransactionType(raw)
		if err != nil {
			return input, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid type")
		}
		input.Filters.Type = &txType
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
		status, err := enums.ParseTransactionStatus(raw)
		if err != nil {
			return input, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status")
		}
		input.Filters.Status = &status
	}

	return input, nil
}
