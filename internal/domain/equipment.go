package domain

import "time"

// Equipment is a maintainable asset, referenced by work orders.
type Equipment struct {
	ID        string
	Name      string
	Location  string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
