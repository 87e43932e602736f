package domain

import "time"

// FrequencyKind is the recurrence unit for scheduled maintenance.
type FrequencyKind string

const (
	FrequencyDaily   FrequencyKind = "DAILY"
	FrequencyWeekly  FrequencyKind = "WEEKLY"
	FrequencyMonthly FrequencyKind = "MONTHLY"
	FrequencyYearly  FrequencyKind = "YEARLY"
)

// ValidFrequencyKind reports whether k is a known recurrence unit.
func ValidFrequencyKind(k FrequencyKind) bool {
	switch k {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return true
	}
	return false
}

// ScheduledOccurrence carries the recurrence of a work order. Exactly one
// exists per recurring MaintenanceWorkOrder, keyed by the owning order's id.
type ScheduledOccurrence struct {
	MaintenanceID   string
	FrequencyKind   FrequencyKind
	FrequencyEvery  int
	NextMaintenance time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
