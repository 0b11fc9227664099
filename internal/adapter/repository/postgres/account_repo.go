package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sistemabancario/corebank/internal/domain"
)

// rowScanner is satisfied by both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanAccount maps one accounts row into a domain.Account, parsing the
// DECIMAL balance through its string form to avoid floating point.
func scanAccount(row rowScanner) (*domain.Account, error) {
	var account domain.Account
	var balanceStr string

	err := row.Scan(
		&account.ID,
		&account.UserID,
		&account.Number,
		&balanceStr,
		&account.Kind,
		&account.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	balance, err := decimal.NewFromString(balanceStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse balance: %w", err)
	}
	account.Balance = balance

	return &account, nil
}

// accountRepository implements domain.AccountRepository
type accountRepository struct {
	db *DB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *DB) domain.AccountRepository {
	return &accountRepository{db: db}
}

// GetByNumber retrieves an account by its external account number.
// Reads taken here are not synchronized with in-flight transfers; transfer
// lookups go through the unit-scoped store instead.
func (r *accountRepository) GetByNumber(ctx context.Context, number string) (*domain.Account, error) {
	query := `
		SELECT id, user_id, account_number, balance, account_kind, created_at
		FROM accounts
		WHERE account_number = $1
	`

	account, err := scanAccount(r.db.QueryRowContext(ctx, query, number))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account by number: %w", err)
	}

	return account, nil
}

// ListByUserID retrieves all accounts owned by the given user
func (r *accountRepository) ListByUserID(ctx context.Context, userID int64) ([]*domain.Account, error) {
	query := `
		SELECT id, user_id, account_number, balance, account_kind, created_at
		FROM accounts
		WHERE user_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]*domain.Account, 0)
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate accounts: %w", err)
	}

	return accounts, nil
}

// Create persists a new account and fills in its assigned ID
func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	query := `
		INSERT INTO accounts (user_id, account_number, balance, account_kind, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		account.UserID,
		account.Number,
		account.Balance.String(),
		string(account.Kind),
		account.CreatedAt,
	).Scan(&account.ID)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}

// HasAccountOfKind reports whether the user already owns an account of the given kind
func (r *accountRepository) HasAccountOfKind(ctx context.Context, userID int64, kind domain.AccountKind) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM accounts WHERE user_id = $1 AND account_kind = $2
		)
	`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, userID, string(kind)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check account kind: %w", err)
	}

	return exists, nil
}
