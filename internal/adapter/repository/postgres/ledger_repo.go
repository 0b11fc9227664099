package postgres

import (
	"context"
	"fmt"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/sistemabancario/corebank/internal/domain"
)

// ledgerRepository implements domain.LedgerRepository
type ledgerRepository struct {
	db *DB
}

// NewLedgerRepository creates a new ledger repository
func NewLedgerRepository(db *DB) domain.LedgerRepository {
	return &ledgerRepository{db: db}
}

// ListByAccountIDs retrieves every record where one of the given accounts
// is origin or destination, oldest first
func (r *ledgerRepository) ListByAccountIDs(ctx context.Context, accountIDs []int64) ([]*domain.TransactionRecord, error) {
	if len(accountIDs) == 0 {
		return []*domain.TransactionRecord{}, nil
	}

	query := `
		SELECT id, origin_account_id, dest_account_id, origin_number, dest_number, amount, status, description, created_at
		FROM transactions
		WHERE origin_account_id = ANY($1) OR dest_account_id = ANY($1)
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(accountIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to list transaction records: %w", err)
	}
	defer rows.Close()

	records := make([]*domain.TransactionRecord, 0)
	for rows.Next() {
		var record domain.TransactionRecord
		var amountStr string

		err := rows.Scan(
			&record.ID,
			&record.OriginAccountID,
			&record.DestAccountID,
			&record.OriginNumber,
			&record.DestNumber,
			&amountStr,
			&record.Status,
			&record.Description,
			&record.Timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction record: %w", err)
		}

		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse amount: %w", err)
		}
		record.Amount = amount

		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transaction records: %w", err)
	}

	return records, nil
}
