package dto

import (
	"time"

	"github.com/spec-kit/maintenance-service/internal/domain"
)

// CreateMaintenanceRequest payload.
type CreateMaintenanceRequest struct {
	Description    string                     `json:"description"`
	Priority       domain.MaintenancePriority `json:"priority"`
	EquipmentID    string                     `json:"equipment_id"`
	TypeID         string                     `json:"type_id"`
	ResponsibleID  string                     `json:"responsible_id"`
	RequiresReview bool                       `json:"requires_review"`
}

// CreateScheduledMaintenanceRequest payload.
type CreateScheduledMaintenanceRequest struct {
	CreateMaintenanceRequest
	FrequencyKind   domain.FrequencyKind `json:"frequency_kind"`
	FrequencyEvery  int                  `json:"frequency_every"`
	NextMaintenance time.Time            `json:"next_maintenance"`
}

// UpdateMaintenanceRequest payload. Recurrence fields are optional and only
// apply to scheduled work orders.
type UpdateMaintenanceRequest struct {
	Description     string                     `json:"description"`
	Priority        domain.MaintenancePriority `json:"priority"`
	EquipmentID     string                     `json:"equipment_id"`
	TypeID          string                     `json:"type_id"`
	ResponsibleID   string                     `json:"responsible_id"`
	FrequencyKind   *domain.FrequencyKind      `json:"frequency_kind,omitempty"`
	FrequencyEvery  *int                       `json:"frequency_every,omitempty"`
	NextMaintenance *time.Time                 `json:"next_maintenance,omitempty"`
}

// ReviewMaintenanceRequest payload.
type ReviewMaintenanceRequest struct {
	Decision        string  `json:"decision"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
}

// ScheduleInfo summarizes the recurrence of a work order.
type ScheduleInfo struct {
	FrequencyKind   domain.FrequencyKind `json:"frequency_kind"`
	FrequencyEvery  int                  `json:"frequency_every"`
	NextMaintenance time.Time            `json:"next_maintenance"`
}

// MaintenanceSummary response.
type MaintenanceSummary struct {
	ID              string                     `json:"id"`
	Code            string                     `json:"code"`
	Description     string                     `json:"description"`
	Priority        domain.MaintenancePriority `json:"priority"`
	Active          bool                       `json:"active"`
	ReviewStatus    *domain.ReviewStatus       `json:"review_status,omitempty"`
	RejectionReason *string                    `json:"rejection_reason,omitempty"`
	EquipmentID     string                     `json:"equipment_id"`
	TypeID          string                     `json:"type_id"`
	ResponsibleID   string                     `json:"responsible_id"`
	RequestedByID   *string                    `json:"requested_by_id,omitempty"`
	ReviewedByID    *string                    `json:"reviewed_by_id,omitempty"`
	Schedule        *ScheduleInfo              `json:"schedule,omitempty"`
	CreatedAt       time.Time                  `json:"created_at"`
	UpdatedAt       time.Time                  `json:"updated_at"`
	DeletedAt       *time.Time                 `json:"deleted_at,omitempty"`
}

// AuditEntryResponse is one immutable trail entry.
type AuditEntryResponse struct {
	ID            string             `json:"id"`
	MaintenanceID string             `json:"maintenance_id"`
	Action        domain.AuditAction `json:"action"`
	ActorID       string             `json:"actor_id"`
	Detail        map[string]any     `json:"detail,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
}

// FromMaintenance converts a domain work order into its summary projection.
func FromMaintenance(order *domain.MaintenanceWorkOrder) MaintenanceSummary {
	summary := MaintenanceSummary{
		ID:              order.ID,
		Code:            order.Code,
		Description:     order.Description,
		Priority:        order.Priority,
		Active:          order.Active,
		ReviewStatus:    order.ReviewStatus,
		RejectionReason: order.RejectionReason,
		EquipmentID:     order.EquipmentID,
		TypeID:          order.TypeID,
		ResponsibleID:   order.ResponsibleID,
		RequestedByID:   order.RequestedByID,
		ReviewedByID:    order.ReviewedByID,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
		DeletedAt:       order.DeletedAt,
	}
	if order.Occurrence != nil {
		summary.Schedule = &ScheduleInfo{
			FrequencyKind:   order.Occurrence.FrequencyKind,
			FrequencyEvery:  order.Occurrence.FrequencyEvery,
			NextMaintenance: order.Occurrence.NextMaintenance,
		}
	}
	return summary
}

// FromAuditEntry converts a domain audit entry.
func FromAuditEntry(entry domain.AuditEntry) AuditEntryResponse {
	return AuditEntryResponse{
		ID:            entry.ID,
		MaintenanceID: entry.MaintenanceID,
		Action:        entry.Action,
		ActorID:       entry.ActorID,
		Detail:        entry.Detail,
		CreatedAt:     entry.CreatedAt,
	}
}
