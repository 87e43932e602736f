package domain

import "time"

// NotificationIntent describes an outbound message handed to the mailer.
// Intents are produced once and never mutated; delivery is best-effort.
type NotificationIntent struct {
	ID          string
	RecipientID string
	Subject     string
	Body        string
	CreatedAt   time.Time
}
