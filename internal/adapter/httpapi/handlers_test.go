package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sistemabancario/corebank/internal/domain"
	"github.com/sistemabancario/corebank/internal/usecase/accounts"
	"github.com/sistemabancario/corebank/internal/usecase/transfer"
)

// MockTransferService is a mock implementation of TransferService for testing
type MockTransferService struct {
	mock.Mock
}

func (m *MockTransferService) Transfer(ctx context.Context, req transfer.TransferRequest) (int64, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(int64), args.Error(1)
}

// MockAccountService is a mock implementation of AccountService for testing
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) ListByUserID(ctx context.Context, userID int64) ([]*domain.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Account), args.Error(1)
}

func (m *MockAccountService) CreateSavingsAccount(ctx context.Context, userID int64) (*domain.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

// MockHistoryService is a mock implementation of HistoryService for testing
type MockHistoryService struct {
	mock.Mock
}

func (m *MockHistoryService) ListByUserID(ctx context.Context, userID int64) ([]*domain.TransactionRecord, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.TransactionRecord), args.Error(1)
}

func newTestRouter(transfers *MockTransferService, accts *MockAccountService, hist *MockHistoryService) http.Handler {
	return NewRouter(NewHandlers(transfers, accts, hist), zap.NewNop())
}

func TestHandleTransfer_Success(t *testing.T) {
	transfers := new(MockTransferService)
	router := newTestRouter(transfers, new(MockAccountService), new(MockHistoryService))

	transfers.On("Transfer", mock.Anything, transfer.TransferRequest{
		OriginNumber: "1001",
		DestNumber:   "1002",
		Amount:       decimal.RequireFromString("30.00"),
	}).Return(int64(7), nil)

	body := `{"origin_account_number":"1001","destination_account_number":"1002","amount":"30.00"}`
	req := httptest.NewRequest(http.MethodPost, "/api/accounts/transfer", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"transaction_id":7`)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
	transfers.AssertExpectations(t)
}

func TestHandleTransfer_InvalidAmountFormat(t *testing.T) {
	transfers := new(MockTransferService)
	router := newTestRouter(transfers, new(MockAccountService), new(MockHistoryService))

	body := `{"origin_account_number":"1001","destination_account_number":"1002","amount":"thirty"}`
	req := httptest.NewRequest(http.MethodPost, "/api/accounts/transfer", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	transfers.AssertNotCalled(t, "Transfer", mock.Anything, mock.Anything)
}

func TestHandleTransfer_ErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid request", &transfer.InvalidRequestError{Reason: "amount must be positive"}, http.StatusBadRequest},
		{"origin not found", &transfer.AccountNotFoundError{Side: transfer.SideOrigin, Number: "9999"}, http.StatusNotFound},
		{"storage failure", &transfer.TransferFailedError{Reason: "storage rejected commit"}, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			transfers := new(MockTransferService)
			router := newTestRouter(transfers, new(MockAccountService), new(MockHistoryService))
			transfers.On("Transfer", mock.Anything, mock.Anything).Return(int64(0), tc.err)

			body := `{"origin_account_number":"1001","destination_account_number":"1002","amount":"30.00"}`
			req := httptest.NewRequest(http.MethodPost, "/api/accounts/transfer", strings.NewReader(body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
		})
	}
}

func TestHandleListAccounts(t *testing.T) {
	accts := new(MockAccountService)
	router := newTestRouter(new(MockTransferService), accts, new(MockHistoryService))

	accts.On("ListByUserID", mock.Anything, int64(7)).Return([]*domain.Account{
		{ID: 1, UserID: 7, Number: "1001", Balance: decimal.RequireFromString("100.00"), Kind: domain.AccountKindChecking, CreatedAt: time.Now()},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/accounts/7", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"balance":"100"`)
}

func TestHandleListAccounts_NoneFound(t *testing.T) {
	accts := new(MockAccountService)
	router := newTestRouter(new(MockTransferService), accts, new(MockHistoryService))

	accts.On("ListByUserID", mock.Anything, int64(7)).Return(nil, accounts.ErrNoAccounts)

	req := httptest.NewRequest(http.MethodGet, "/api/accounts/7", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleCreateSavings_Conflicts(t *testing.T) {
	accts := new(MockAccountService)
	router := newTestRouter(new(MockTransferService), accts, new(MockHistoryService))

	accts.On("CreateSavingsAccount", mock.Anything, int64(7)).Return(nil, accounts.ErrSavingsExists)

	req := httptest.NewRequest(http.MethodPost, "/api/accounts/savings", strings.NewReader(`{"user_id":7}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandleUserTransactions_EmptyHistoryIsNotFound(t *testing.T) {
	hist := new(MockHistoryService)
	router := newTestRouter(new(MockTransferService), new(MockAccountService), hist)

	hist.On("ListByUserID", mock.Anything, int64(7)).Return([]*domain.TransactionRecord{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/transactions/user/7", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
