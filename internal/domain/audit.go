package domain

import "time"

// AuditAction tags the operation recorded by an audit entry.
type AuditAction string

const (
	AuditCreate          AuditAction = "CREATE"
	AuditCreateScheduled AuditAction = "CREATE_SCHEDULED"
	AuditUpdate          AuditAction = "UPDATE"
	AuditUpdateScheduled AuditAction = "UPDATE_SCHEDULED"
	AuditToggleStatus    AuditAction = "UPDATE_STATUS"
	AuditDelete          AuditAction = "DELETE"
	AuditReview          AuditAction = "REVIEW"
)

// AuditEntry is an immutable record of a mutating action. Entries are
// append-only: never updated or deleted.
type AuditEntry struct {
	ID            string
	MaintenanceID string
	Action        AuditAction
	ActorID       string
	Detail        map[string]any
	CreatedAt     time.Time
}
