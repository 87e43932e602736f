package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/maintenance-service/internal/domain"
)

// OccurrenceRepository persists the recurrence rows owned by work orders.
type OccurrenceRepository interface {
	Create(ctx context.Context, occ *domain.ScheduledOccurrence) error
	Update(ctx context.Context, occ *domain.ScheduledOccurrence) error
	GetByMaintenanceID(ctx context.Context, maintenanceID string) (*domain.ScheduledOccurrence, error)
	// ListDue returns occurrences whose next date has passed, restricted to
	// active, non-deleted work orders.
	ListDue(ctx context.Context, cutoff time.Time, limit int) ([]domain.ScheduledOccurrence, error)
}

type occurrenceRepository struct {
	db DB
}

// NewOccurrenceRepository instantiates a Postgres-backed repository.
func NewOccurrenceRepository(db DB) OccurrenceRepository {
	return &occurrenceRepository{db: db}
}

func (r *occurrenceRepository) Create(ctx context.Context, occ *domain.ScheduledOccurrence) error {
	const query = `
        INSERT INTO scheduled_maintenances (maintenance_id, frequency_kind, frequency_every, next_maintenance)
        VALUES ($1,$2,$3,$4)
        RETURNING created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		occ.MaintenanceID,
		occ.FrequencyKind,
		occ.FrequencyEvery,
		occ.NextMaintenance,
	).Scan(&occ.CreatedAt, &occ.UpdatedAt)
}

func (r *occurrenceRepository) Update(ctx context.Context, occ *domain.ScheduledOccurrence) error {
	const query = `
        UPDATE scheduled_maintenances SET frequency_kind=$1, frequency_every=$2,
            next_maintenance=$3, updated_at=NOW()
        WHERE maintenance_id=$4
        RETURNING updated_at`
	return r.db.QueryRow(ctx, query,
		occ.FrequencyKind,
		occ.FrequencyEvery,
		occ.NextMaintenance,
		occ.MaintenanceID,
	).Scan(&occ.UpdatedAt)
}

func (r *occurrenceRepository) GetByMaintenanceID(ctx context.Context, maintenanceID string) (*domain.ScheduledOccurrence, error) {
	const query = `
        SELECT maintenance_id, frequency_kind, frequency_every, next_maintenance, created_at, updated_at
        FROM scheduled_maintenances WHERE maintenance_id=$1`
	var occ domain.ScheduledOccurrence
	if err := r.db.QueryRow(ctx, query, maintenanceID).Scan(
		&occ.MaintenanceID,
		&occ.FrequencyKind,
		&occ.FrequencyEvery,
		&occ.NextMaintenance,
		&occ.CreatedAt,
		&occ.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &occ, nil
}

func (r *occurrenceRepository) ListDue(ctx context.Context, cutoff time.Time, limit int) ([]domain.ScheduledOccurrence, error) {
	if limit <= 0 {
		limit = 100
	}
	const query = `
        SELECT s.maintenance_id, s.frequency_kind, s.frequency_every, s.next_maintenance, s.created_at, s.updated_at
        FROM scheduled_maintenances s
        JOIN maintenances m ON m.id = s.maintenance_id
        WHERE s.next_maintenance <= $1 AND m.active AND m.deleted_at IS NULL
        ORDER BY s.next_maintenance ASC LIMIT $2`
	rows, err := r.db.Query(ctx, query, cutoff, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOccurrences(rows)
}

func scanOccurrences(rows pgx.Rows) ([]domain.ScheduledOccurrence, error) {
	var result []domain.ScheduledOccurrence
	for rows.Next() {
		var occ domain.ScheduledOccurrence
		if err := rows.Scan(
			&occ.MaintenanceID,
			&occ.FrequencyKind,
			&occ.FrequencyEvery,
			&occ.NextMaintenance,
			&occ.CreatedAt,
			&occ.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, occ)
	}
	return result, rows.Err()
}
