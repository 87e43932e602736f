package domain

import "time"

// MaintenancePriority enumerates urgency of a work order.
type MaintenancePriority string

const (
	PriorityLow      MaintenancePriority = "LOW"
	PriorityMedium   MaintenancePriority = "MEDIUM"
	PriorityHigh     MaintenancePriority = "HIGH"
	PriorityCritical MaintenancePriority = "CRITICAL"
)

// ValidPriority reports whether p is a known priority value.
func ValidPriority(p MaintenancePriority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// ReviewStatus enumerates approval workflow states. A nil ReviewStatus on a
// work order means the order is not subject to review.
type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "PENDING"
	ReviewApproved ReviewStatus = "APPROVED"
	ReviewRejected ReviewStatus = "REJECTED"
)

// MaxRejectionReasonLen bounds the rejection reason field.
const MaxRejectionReasonLen = 500

// MaxDescriptionLen bounds the free-text description field.
const MaxDescriptionLen = 2000

// MaintenanceWorkOrder is the aggregate for a maintenance task. Active is the
// operational on/off flag and is independent of the review workflow.
type MaintenanceWorkOrder struct {
	ID              string
	Code            string
	Description     string
	Priority        MaintenancePriority
	Active          bool
	ReviewStatus    *ReviewStatus
	RejectionReason *string
	EquipmentID     string
	TypeID          string
	ResponsibleID   string
	RequestedByID   *string
	ReviewedByID    *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       *time.Time

	// Occurrence is populated for recurring work orders.
	Occurrence *ScheduledOccurrence
}

// Deleted reports whether the work order has been logically deleted.
func (m *MaintenanceWorkOrder) Deleted() bool {
	return m.DeletedAt != nil
}

// Scheduled reports whether the work order carries a recurrence.
func (m *MaintenanceWorkOrder) Scheduled() bool {
	return m.Occurrence != nil
}
