package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// AccountKind represents the type of bank account
type AccountKind string

const (
	AccountKindChecking AccountKind = "CHECKING"
	AccountKindSavings  AccountKind = "SAVINGS"
)

// Account represents a bank account entity in the domain layer.
// Balance is a fixed-point decimal; it is only ever mutated inside a
// TransferUnit so that committed ledger records and balances stay consistent.
type Account struct {
	ID        int64
	UserID    int64
	Number    string // external, unique account number
	Balance   decimal.Decimal
	Kind      AccountKind
	CreatedAt time.Time
}

// Validate ensures the account adheres to domain rules
func (a *Account) Validate() error {
	if a.Number == "" {
		return errors.New("account number cannot be empty")
	}
	if a.UserID <= 0 {
		return errors.New("account must belong to a user")
	}
	if a.Kind != AccountKindChecking && a.Kind != AccountKindSavings {
		return errors.New("account kind must be CHECKING or SAVINGS")
	}
	return nil
}
