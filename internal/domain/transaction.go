package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus represents the lifecycle state of a transaction record
type TransactionStatus string

const (
	StatusInProgress TransactionStatus = "IN_PROGRESS"
	StatusCompleted  TransactionStatus = "COMPLETED"
	StatusFailed     TransactionStatus = "FAILED"
)

// TransactionRecord is an immutable ledger entry describing one completed
// transfer. The origin/destination account numbers are denormalized so the
// audit trail survives later renumbering of the accounts themselves.
// Records are only ever appended, never updated.
type TransactionRecord struct {
	ID              int64 // assigned on append, monotonically increasing
	OriginAccountID int64
	DestAccountID   int64
	OriginNumber    string
	DestNumber      string
	Amount          decimal.Decimal
	Status          TransactionStatus
	Description     string
	Timestamp       time.Time
}

// NewTransactionRecord builds an in-memory record in its initial
// IN_PROGRESS state. It is flipped to COMPLETED by the coordinator right
// before the ledger append; a record that never completes is discarded,
// not persisted.
func NewTransactionRecord(origin, dest *Account, amount decimal.Decimal, description string) *TransactionRecord {
	return &TransactionRecord{
		OriginAccountID: origin.ID,
		DestAccountID:   dest.ID,
		OriginNumber:    origin.Number,
		DestNumber:      dest.Number,
		Amount:          amount,
		Status:          StatusInProgress,
		Description:     description,
		Timestamp:       time.Now(),
	}
}
