package repository

import (
	"context"

	"github.com/spec-kit/maintenance-service/internal/domain"
)

// NotificationRepository records emitted notification intents. Rows are
// written once and never mutated.
type NotificationRepository interface {
	Create(ctx context.Context, intent *domain.NotificationIntent) error
	ListByRecipient(ctx context.Context, recipientID string, limit, offset int) ([]domain.NotificationIntent, error)
}

type notificationRepository struct {
	db DB
}

// NewNotificationRepository builds the repository.
func NewNotificationRepository(db DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, intent *domain.NotificationIntent) error {
	const query = `
        INSERT INTO notification_intents (recipient_id, subject, body)
        VALUES ($1,$2,$3)
        RETURNING id, created_at`
	return r.db.QueryRow(ctx, query,
		intent.RecipientID,
		intent.Subject,
		intent.Body,
	).Scan(&intent.ID, &intent.CreatedAt)
}

func (r *notificationRepository) ListByRecipient(ctx context.Context, recipientID string, limit, offset int) ([]domain.NotificationIntent, error) {
	const query = `
        SELECT id, recipient_id, subject, body, created_at
        FROM notification_intents WHERE recipient_id=$1
        ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, recipientID, normalizeLimit(limit), normalizeOffset(offset))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.NotificationIntent
	for rows.Next() {
		var intent domain.NotificationIntent
		if err := rows.Scan(
			&intent.ID,
			&intent.RecipientID,
			&intent.Subject,
			&intent.Body,
			&intent.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, intent)
	}
	return result, rows.Err()
}
