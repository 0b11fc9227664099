package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// AccountStore defines the account operations available inside a transfer.
// ApplyBalanceDelta carries no atomicity guarantee of its own; atomicity is
// provided by the TransferUnit the store is bound to.
type AccountStore interface {
	// GetByNumber retrieves an account by its external account number.
	// Returns ErrAccountNotFound when no such account exists.
	GetByNumber(ctx context.Context, number string) (*Account, error)

	// ApplyBalanceDelta adds delta (positive or negative) to the stored
	// balance of the account with the given id.
	ApplyBalanceDelta(ctx context.Context, accountID int64, delta decimal.Decimal) error
}

// LedgerWriter appends immutable transaction records.
type LedgerWriter interface {
	// Append persists the record and returns its assigned identifier.
	// It must be called inside the same TransferUnit as the balance
	// mutations it accounts for, so a rollback discards the append too.
	Append(ctx context.Context, record *TransactionRecord) (int64, error)
}

// TransferUnit groups one balance debit, one balance credit and one ledger
// append into an all-or-nothing unit bound to the storage's transaction
// primitive. Rollback after a successful Commit is a no-op, which lets
// callers hold the release on a defer for every exit path.
type TransferUnit interface {
	// Accounts returns the account store scoped to this unit.
	Accounts() AccountStore

	// Ledger returns the ledger writer scoped to this unit.
	Ledger() LedgerWriter

	// Commit makes all enclosed writes durable and visible together.
	Commit() error

	// Rollback discards all enclosed writes. Safe to call after Commit.
	Rollback() error
}

// UnitBeginner opens transfer units.
type UnitBeginner interface {
	Begin(ctx context.Context) (TransferUnit, error)
}

// AccountRepository defines account persistence operations outside the
// transfer path: provisioning and unsynchronized reads for listings.
type AccountRepository interface {
	// GetByNumber retrieves an account by its external account number.
	GetByNumber(ctx context.Context, number string) (*Account, error)

	// ListByUserID retrieves all accounts owned by the given user.
	ListByUserID(ctx context.Context, userID int64) ([]*Account, error)

	// Create persists a new account and fills in its assigned ID.
	Create(ctx context.Context, account *Account) error

	// HasAccountOfKind reports whether the user already owns an account
	// of the given kind.
	HasAccountOfKind(ctx context.Context, userID int64, kind AccountKind) (bool, error)
}

// LedgerRepository defines read access to the append-only ledger.
type LedgerRepository interface {
	// ListByAccountIDs retrieves every record where one of the given
	// accounts is origin or destination, oldest first.
	ListByAccountIDs(ctx context.Context, accountIDs []int64) ([]*TransactionRecord, error)
}

// UserDirectory is the minimal user lookup the account directory needs.
// Registration and credentials are handled elsewhere.
type UserDirectory interface {
	Exists(ctx context.Context, userID int64) (bool, error)
}

// AuditLog is a fire-and-forget operational log sink. Implementations must
// swallow their own failures; callers never check an error here.
type AuditLog interface {
	Record(ctx context.Context, message string, severity Severity)
}
