package accounts

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sistemabancario/corebank/internal/domain"
)

var (
	// ErrNoAccounts indicates that the user owns no accounts
	ErrNoAccounts = errors.New("no accounts found for user")
	// ErrSavingsExists indicates that the user already has a savings account
	ErrSavingsExists = errors.New("user already has a savings account")
	// ErrInvalidUserID indicates a non-positive user identifier
	ErrInvalidUserID = errors.New("user ID must be positive")
)

// Service is the account directory: provisioning and listing of accounts.
// It plays no part in transfer correctness; transfers read accounts through
// their own unit-scoped store.
type Service struct {
	AccountRepo domain.AccountRepository
	Users       domain.UserDirectory
}

// NewService creates a new account directory Service instance
func NewService(accountRepo domain.AccountRepository, users domain.UserDirectory) *Service {
	return &Service{
		AccountRepo: accountRepo,
		Users:       users,
	}
}

// ListByUserID retrieves all accounts owned by the given user.
// Returns ErrNoAccounts when the user owns none.
func (s *Service) ListByUserID(ctx context.Context, userID int64) ([]*domain.Account, error) {
	if userID <= 0 {
		return nil, ErrInvalidUserID
	}

	accounts, err := s.AccountRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return nil, ErrNoAccounts
	}

	return accounts, nil
}

// CreateSavingsAccount provisions a savings account for the user.
// Logic:
//  1. Verify the user exists.
//  2. Reject if the user already has a savings account (one per user).
//  3. Generate a 4-digit account number and create the account with a
//     zero opening balance.
func (s *Service) CreateSavingsAccount(ctx context.Context, userID int64) (*domain.Account, error) {
	if userID <= 0 {
		return nil, ErrInvalidUserID
	}

	exists, err := s.Users.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrUserNotFound
	}

	hasSavings, err := s.AccountRepo.HasAccountOfKind(ctx, userID, domain.AccountKindSavings)
	if err != nil {
		return nil, err
	}
	if hasSavings {
		return nil, ErrSavingsExists
	}

	account := &domain.Account{
		UserID:    userID,
		Number:    newAccountNumber(),
		Balance:   decimal.Zero,
		Kind:      domain.AccountKindSavings,
		CreatedAt: time.Now(),
	}
	if err := account.Validate(); err != nil {
		return nil, err
	}

	if err := s.AccountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// newAccountNumber generates an external account number in [1000, 9999].
// TODO: retry on the unique constraint once the number space starts filling
// up; with 4 digits collisions become likely well before it is exhausted.
func newAccountNumber() string {
	return fmt.Sprintf("%d", rand.Intn(9000)+1000)
}
