package events

import (
	"time"

	"github.com/spec-kit/maintenance-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventMaintenanceCreated          EventType = "maintenance_created"
	EventScheduledMaintenanceCreated EventType = "scheduled_maintenance_created"
	EventMaintenanceUpdated          EventType = "maintenance_updated"
	EventMaintenanceStatusToggled    EventType = "maintenance_status_toggled"
	EventMaintenanceDeleted          EventType = "maintenance_deleted"
	EventMaintenanceReviewed         EventType = "maintenance_reviewed"
	EventMaintenanceDue              EventType = "maintenance_due"
)

// Event represents a domain event emitted by services after commit.
type Event struct {
	ID            string      `json:"id"`
	Type          EventType   `json:"type"`
	MaintenanceID string      `json:"maintenance_id"`
	ActorID       string      `json:"actor_id"`
	Timestamp     time.Time   `json:"timestamp"`
	Payload       interface{} `json:"payload"`
}

// MaintenanceCreatedPayload payload.
type MaintenanceCreatedPayload struct {
	Code          string                     `json:"code"`
	Priority      domain.MaintenancePriority `json:"priority"`
	EquipmentID   string                     `json:"equipment_id"`
	ResponsibleID string                     `json:"responsible_id"`
	Scheduled     bool                       `json:"scheduled"`
}

// MaintenanceUpdatedPayload payload.
type MaintenanceUpdatedPayload struct {
	Code          string `json:"code"`
	ResponsibleID string `json:"responsible_id"`
}

// MaintenanceStatusToggledPayload payload.
type MaintenanceStatusToggledPayload struct {
	Code          string `json:"code"`
	Active        bool   `json:"active"`
	ResponsibleID string `json:"responsible_id"`
}

// MaintenanceDeletedPayload payload.
type MaintenanceDeletedPayload struct {
	Code          string `json:"code"`
	ResponsibleID string `json:"responsible_id"`
}

// MaintenanceReviewedPayload payload.
type MaintenanceReviewedPayload struct {
	Code            string              `json:"code"`
	Outcome         domain.ReviewStatus `json:"outcome"`
	RejectionReason *string             `json:"rejection_reason,omitempty"`
	RequestedByID   *string             `json:"requested_by_id,omitempty"`
}

// MaintenanceDuePayload payload.
type MaintenanceDuePayload struct {
	Code          string    `json:"code"`
	ResponsibleID string    `json:"responsible_id"`
	DueAt         time.Time `json:"due_at"`
}
