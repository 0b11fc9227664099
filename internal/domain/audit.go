package domain

import "time"

// Severity classifies an audit log entry
type Severity string

const (
	SeverityInfo  Severity = "INFO"
	SeverityError Severity = "ERROR"
)

// AuditEntry is a fire-and-forget operational log row. Audit recording is
// best effort: a sink failure must never block or fail the operation that
// produced the entry.
type AuditEntry struct {
	ID       int64
	Message  string
	Severity Severity
	LoggedAt time.Time
}
