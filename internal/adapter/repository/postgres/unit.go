package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sistemabancario/corebank/internal/domain"
)

// unitBeginner opens transfer units backed by database transactions
type unitBeginner struct {
	db *DB
}

// NewUnitBeginner creates a factory for transaction-backed transfer units
func NewUnitBeginner(db *DB) domain.UnitBeginner {
	return &unitBeginner{db: db}
}

// Begin opens a database transaction and binds unit-scoped stores to it
func (b *unitBeginner) Begin(ctx context.Context) (domain.TransferUnit, error) {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	return &transferUnit{
		tx:       tx,
		accounts: &txAccountStore{tx: tx},
		ledger:   &txLedgerWriter{tx: tx},
	}, nil
}

// transferUnit implements domain.TransferUnit over *sql.Tx. Every write
// issued through Accounts() or Ledger() lands in the same database
// transaction, so Commit exposes all of them at once and Rollback none.
type transferUnit struct {
	tx       *sql.Tx
	accounts *txAccountStore
	ledger   *txLedgerWriter
}

// Accounts returns the account store scoped to this unit
func (u *transferUnit) Accounts() domain.AccountStore {
	return u.accounts
}

// Ledger returns the ledger writer scoped to this unit
func (u *transferUnit) Ledger() domain.LedgerWriter {
	return u.ledger
}

// Commit makes all enclosed writes durable and visible together
func (u *transferUnit) Commit() error {
	if err := u.tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transfer unit: %w", err)
	}
	return nil
}

// Rollback discards all enclosed writes. Calling it after a successful
// Commit is a no-op, which lets the coordinator hold it on a defer.
func (u *transferUnit) Rollback() error {
	if err := u.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("failed to roll back transfer unit: %w", err)
	}
	return nil
}

// txAccountStore implements domain.AccountStore inside one unit
type txAccountStore struct {
	tx *sql.Tx
}

// GetByNumber retrieves an account by its external account number
func (s *txAccountStore) GetByNumber(ctx context.Context, number string) (*domain.Account, error) {
	query := `
		SELECT id, user_id, account_number, balance, account_kind, created_at
		FROM accounts
		WHERE account_number = $1
	`

	account, err := scanAccount(s.tx.QueryRowContext(ctx, query, number))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account by number: %w", err)
	}

	return account, nil
}

// ApplyBalanceDelta adds delta (positive or negative) to the stored balance
func (s *txAccountStore) ApplyBalanceDelta(ctx context.Context, accountID int64, delta decimal.Decimal) error {
	query := `
		UPDATE accounts
		SET balance = balance + $1
		WHERE id = $2
	`

	result, err := s.tx.ExecContext(ctx, query, delta.String(), accountID)
	if err != nil {
		return fmt.Errorf("failed to apply balance delta: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

// txLedgerWriter implements domain.LedgerWriter inside one unit
type txLedgerWriter struct {
	tx *sql.Tx
}

// Append persists the record and returns its assigned identifier
func (w *txLedgerWriter) Append(ctx context.Context, record *domain.TransactionRecord) (int64, error) {
	query := `
		INSERT INTO transactions (origin_account_id, dest_account_id, origin_number, dest_number, amount, status, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	err := w.tx.QueryRowContext(ctx, query,
		record.OriginAccountID,
		record.DestAccountID,
		record.OriginNumber,
		record.DestNumber,
		record.Amount.String(),
		string(record.Status),
		record.Description,
		record.Timestamp,
	).Scan(&record.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to append transaction record: %w", err)
	}

	return record.ID, nil
}
