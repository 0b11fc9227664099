package transfer

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sistemabancario/corebank/internal/domain"
)

// DefaultDescription is used when a transfer request carries no description
const DefaultDescription = "Transfer between accounts"

// TransferRequest represents the input for moving funds between accounts
type TransferRequest struct {
	OriginNumber string
	DestNumber   string
	Amount       decimal.Decimal
	Description  string
}

// Validate ensures the request is well formed. Origin and destination being
// the same account is deliberately not rejected; such a transfer nets to
// zero and still produces a ledger record.
func (r TransferRequest) Validate() error {
	if r.OriginNumber == "" {
		return &InvalidRequestError{Reason: "origin account number is required"}
	}
	if r.DestNumber == "" {
		return &InvalidRequestError{Reason: "destination account number is required"}
	}
	if !r.Amount.IsPositive() {
		return &InvalidRequestError{Reason: "amount must be positive"}
	}
	return nil
}

// Service coordinates funds transfers. Exactly one transfer at a time runs
// its lookup, mutate, append, commit sequence; callers queue on the gate.
// The operation is not idempotent: submitting the same request twice moves
// the amount twice and issues two distinct transaction identifiers.
type Service struct {
	gate  *Gate
	units domain.UnitBeginner
	audit domain.AuditLog
	log   *zap.Logger
}

// NewService creates a new transfer Service instance
func NewService(units domain.UnitBeginner, audit domain.AuditLog, log *zap.Logger) *Service {
	return &Service{
		gate:  NewGate(),
		units: units,
		audit: audit,
		log:   log,
	}
}

// Transfer moves Amount from the origin account to the destination account
// and returns the identifier of the appended transaction record.
// Logic:
//  1. Validate the request; violations never touch the gate.
//  2. Acquire the gate, open a transfer unit.
//  3. Look up both accounts by number.
//  4. Debit origin, credit destination. There is no sufficient-funds
//     check: a transfer may drive the origin balance negative.
//  5. Append a COMPLETED record and commit the unit.
//
// Every exit path releases the gate and resolves the unit; both are held
// on defers so an error anywhere in the sequence still rolls back.
func (s *Service) Transfer(ctx context.Context, req TransferRequest) (int64, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}

	txID, err := s.execute(ctx, req)
	if err != nil {
		s.log.Warn("transfer failed",
			zap.String("origin", req.OriginNumber),
			zap.String("destination", req.DestNumber),
			zap.String("amount", req.Amount.String()),
			zap.Error(err),
		)
		s.audit.Record(ctx, fmt.Sprintf("transfer %s -> %s failed: %v", req.OriginNumber, req.DestNumber, err), domain.SeverityError)
		return 0, err
	}

	s.log.Info("transfer completed",
		zap.Int64("transaction_id", txID),
		zap.String("origin", req.OriginNumber),
		zap.String("destination", req.DestNumber),
		zap.String("amount", req.Amount.String()),
	)
	s.audit.Record(ctx, fmt.Sprintf("transfer %d completed: %s -> %s amount %s", txID, req.OriginNumber, req.DestNumber, req.Amount.String()), domain.SeverityInfo)

	return txID, nil
}

// execute runs the gated transfer sequence
func (s *Service) execute(ctx context.Context, req TransferRequest) (int64, error) {
	if err := s.gate.Acquire(ctx); err != nil {
		return 0, &TransferFailedError{Reason: "interrupted while waiting for transfer gate", Err: err}
	}
	defer s.gate.Release()

	unit, err := s.units.Begin(ctx)
	if err != nil {
		return 0, &TransferFailedError{Reason: "could not open transfer unit", Err: err}
	}
	// No-op once Commit has succeeded; otherwise discards every write,
	// including ones made before an error was hit mid-sequence.
	defer unit.Rollback()

	origin, err := unit.Accounts().GetByNumber(ctx, req.OriginNumber)
	if err != nil {
		return 0, classifyLookup(SideOrigin, req.OriginNumber, err)
	}

	dest, err := unit.Accounts().GetByNumber(ctx, req.DestNumber)
	if err != nil {
		return 0, classifyLookup(SideDestination, req.DestNumber, err)
	}

	// Debit before credit, both before the append; all three land in the
	// same unit and become visible atomically on commit.
	if err := unit.Accounts().ApplyBalanceDelta(ctx, origin.ID, req.Amount.Neg()); err != nil {
		return 0, &TransferFailedError{Reason: "failed to debit origin account", Err: err}
	}
	if err := unit.Accounts().ApplyBalanceDelta(ctx, dest.ID, req.Amount); err != nil {
		return 0, &TransferFailedError{Reason: "failed to credit destination account", Err: err}
	}

	description := req.Description
	if description == "" {
		description = DefaultDescription
	}

	record := domain.NewTransactionRecord(origin, dest, req.Amount, description)
	record.Status = domain.StatusCompleted

	if _, err := unit.Ledger().Append(ctx, record); err != nil {
		return 0, &TransferFailedError{Reason: "failed to append ledger record", Err: err}
	}

	if err := unit.Commit(); err != nil {
		return 0, &TransferFailedError{Reason: "storage rejected commit", Err: err}
	}

	return record.ID, nil
}

// classifyLookup maps a failed account lookup to the error taxonomy
func classifyLookup(side, number string, err error) error {
	if errors.Is(err, domain.ErrAccountNotFound) {
		return &AccountNotFoundError{Side: side, Number: number}
	}
	return &TransferFailedError{Reason: "account lookup failed", Err: err}
}
