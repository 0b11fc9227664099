package history

import (
	"context"

	"github.com/sistemabancario/corebank/internal/domain"
)

// Service retrieves a user's transaction history. Reads here are not
// synchronized with in-flight transfers; they observe whatever the storage
// isolation level exposes at query time.
type Service struct {
	AccountRepo domain.AccountRepository
	LedgerRepo  domain.LedgerRepository
}

// NewService creates a new history Service instance
func NewService(accountRepo domain.AccountRepository, ledgerRepo domain.LedgerRepository) *Service {
	return &Service{
		AccountRepo: accountRepo,
		LedgerRepo:  ledgerRepo,
	}
}

// ListByUserID retrieves every ledger record touching one of the user's
// accounts, as origin or destination, oldest first. A user with no
// accounts or no transactions gets an empty list, not an error.
func (s *Service) ListByUserID(ctx context.Context, userID int64) ([]*domain.TransactionRecord, error) {
	accounts, err := s.AccountRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return []*domain.TransactionRecord{}, nil
	}

	accountIDs := make([]int64, 0, len(accounts))
	for _, account := range accounts {
		accountIDs = append(accountIDs, account.ID)
	}

	return s.LedgerRepo.ListByAccountIDs(ctx, accountIDs)
}
