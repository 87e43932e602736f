package domain

import "time"

// MaintenanceType categorizes work orders (inspection, overhaul, cleaning...).
type MaintenanceType struct {
	ID          string
	Name        string
	Description string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
