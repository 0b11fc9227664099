package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/sistemabancario/corebank/internal/domain"
	"github.com/sistemabancario/corebank/internal/usecase/accounts"
	"github.com/sistemabancario/corebank/internal/usecase/transfer"
)

// TransferService executes funds transfers
type TransferService interface {
	Transfer(ctx context.Context, req transfer.TransferRequest) (int64, error)
}

// AccountService is the account directory surface
type AccountService interface {
	ListByUserID(ctx context.Context, userID int64) ([]*domain.Account, error)
	CreateSavingsAccount(ctx context.Context, userID int64) (*domain.Account, error)
}

// HistoryService retrieves per-user transaction history
type HistoryService interface {
	ListByUserID(ctx context.Context, userID int64) ([]*domain.TransactionRecord, error)
}

// Handlers bridges the HTTP layer to the usecase services
type Handlers struct {
	Transfers TransferService
	Accounts  AccountService
	History   HistoryService
}

// NewHandlers creates a new Handlers instance
func NewHandlers(transfers TransferService, accounts AccountService, history HistoryService) *Handlers {
	return &Handlers{
		Transfers: transfers,
		Accounts:  accounts,
		History:   history,
	}
}

// transferRequestBody is the wire form of a transfer request. The amount
// travels as a string and is parsed into a decimal to keep the scale exact.
type transferRequestBody struct {
	OriginAccountNumber string `json:"origin_account_number"`
	DestAccountNumber   string `json:"destination_account_number"`
	Amount              string `json:"amount"`
	Description         string `json:"description"`
}

// transferResponse carries the assigned transaction identifier
type transferResponse struct {
	Message       string `json:"message"`
	TransactionID int64  `json:"transaction_id"`
}

// HandleTransfer handles POST /api/accounts/transfer
func (h *Handlers) HandleTransfer(w http.ResponseWriter, r *http.Request) {
	var body transferRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	amount, err := decimal.NewFromString(body.Amount)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid amount format")
		return
	}

	txID, err := h.Transfers.Transfer(r.Context(), transfer.TransferRequest{
		OriginNumber: body.OriginAccountNumber,
		DestNumber:   body.DestAccountNumber,
		Amount:       amount,
		Description:  body.Description,
	})
	if err != nil {
		writeTransferError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, transferResponse{Message: "transfer completed", TransactionID: txID})
}

// writeTransferError maps the transfer error taxonomy to HTTP status codes
func writeTransferError(w http.ResponseWriter, err error) {
	var invalid *transfer.InvalidRequestError
	if errors.As(err, &invalid) {
		respondError(w, http.StatusBadRequest, invalid.Error())
		return
	}

	var notFound *transfer.AccountNotFoundError
	if errors.As(err, &notFound) {
		respondError(w, http.StatusNotFound, notFound.Error())
		return
	}

	// TransferFailedError and anything unexpected: retryable server error.
	respondError(w, http.StatusInternalServerError, err.Error())
}

// accountResponse is the wire form of an account
type accountResponse struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"user_id"`
	Number    string `json:"account_number"`
	Balance   string `json:"balance"`
	Kind      string `json:"account_kind"`
	CreatedAt string `json:"created_at"`
}

func toAccountResponse(account *domain.Account) accountResponse {
	return accountResponse{
		ID:        account.ID,
		UserID:    account.UserID,
		Number:    account.Number,
		Balance:   account.Balance.String(),
		Kind:      string(account.Kind),
		CreatedAt: account.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// HandleListAccounts handles GET /api/accounts/{userID}
func (h *Handlers) HandleListAccounts(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid user ID")
		return
	}

	owned, err := h.Accounts.ListByUserID(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, accounts.ErrNoAccounts):
			respondError(w, http.StatusNotFound, "no accounts found for this user")
		case errors.Is(err, accounts.ErrInvalidUserID):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "failed to list accounts")
		}
		return
	}

	out := make([]accountResponse, 0, len(owned))
	for _, account := range owned {
		out = append(out, toAccountResponse(account))
	}
	respondJSON(w, http.StatusOK, out)
}

// savingsRequestBody identifies the user to provision a savings account for
type savingsRequestBody struct {
	UserID int64 `json:"user_id"`
}

// HandleCreateSavings handles POST /api/accounts/savings
func (h *Handlers) HandleCreateSavings(w http.ResponseWriter, r *http.Request) {
	var body savingsRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	account, err := h.Accounts.CreateSavingsAccount(r.Context(), body.UserID)
	if err != nil {
		switch {
		case errors.Is(err, accounts.ErrInvalidUserID):
			respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrUserNotFound):
			respondError(w, http.StatusNotFound, "user does not exist")
		case errors.Is(err, accounts.ErrSavingsExists):
			respondError(w, http.StatusConflict, "user already has a savings account")
		default:
			respondError(w, http.StatusInternalServerError, "failed to create savings account")
		}
		return
	}

	respondJSON(w, http.StatusOK, toAccountResponse(account))
}

// recordResponse is the wire form of a ledger record
type recordResponse struct {
	ID           int64  `json:"id"`
	OriginNumber string `json:"origin_account_number"`
	DestNumber   string `json:"destination_account_number"`
	Amount       string `json:"amount"`
	Status       string `json:"status"`
	Description  string `json:"description"`
	Timestamp    string `json:"timestamp"`
}

// HandleUserTransactions handles GET /api/transactions/user/{userID}
func (h *Handlers) HandleUserTransactions(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid user ID")
		return
	}

	records, err := h.History.ListByUserID(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list transactions")
		return
	}
	if len(records) == 0 {
		respondError(w, http.StatusNotFound, "no transactions found for this user")
		return
	}

	out := make([]recordResponse, 0, len(records))
	for _, record := range records {
		out = append(out, recordResponse{
			ID:           record.ID,
			OriginNumber: record.OriginNumber,
			DestNumber:   record.DestNumber,
			Amount:       record.Amount.String(),
			Status:       string(record.Status),
			Description:  record.Description,
			Timestamp:    record.Timestamp.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	respondJSON(w, http.StatusOK, out)
}
