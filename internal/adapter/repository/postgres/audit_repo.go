package postgres

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sistemabancario/corebank/internal/domain"
)

// auditLog implements domain.AuditLog on top of the audit_logs table.
// Recording is fire-and-forget: an insert failure is logged and swallowed
// so that audit unavailability never blocks or fails the caller.
type auditLog struct {
	db  *DB
	log *zap.Logger
}

// NewAuditLog creates a best-effort audit log sink
func NewAuditLog(db *DB, log *zap.Logger) domain.AuditLog {
	return &auditLog{db: db, log: log}
}

// Record inserts an audit entry, dropping it on failure
func (a *auditLog) Record(ctx context.Context, message string, severity domain.Severity) {
	entry := domain.AuditEntry{
		Message:  message,
		Severity: severity,
		LoggedAt: time.Now(),
	}

	query := `
		INSERT INTO audit_logs (message, severity, logged_at)
		VALUES ($1, $2, $3)
	`

	_, err := a.db.ExecContext(ctx, query, entry.Message, string(entry.Severity), entry.LoggedAt)
	if err != nil {
		a.log.Warn("dropping audit entry",
			zap.String("message", message),
			zap.String("severity", string(severity)),
			zap.Error(err),
		)
	}
}
