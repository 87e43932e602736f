package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/maintenance-service/internal/domain"
)

// AuditRepository stores the append-only audit trail. There is deliberately
// no update or delete.
type AuditRepository interface {
	Create(ctx context.Context, entry *domain.AuditEntry) error
	ListByMaintenance(ctx context.Context, maintenanceID string, limit, offset int) ([]domain.AuditEntry, error)
	ListByActor(ctx context.Context, actorID string, limit, offset int) ([]domain.AuditEntry, error)
}

type auditRepository struct {
	db DB
}

// NewAuditRepository builds the repository.
func NewAuditRepository(db DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Create(ctx context.Context, entry *domain.AuditEntry) error {
	const query = `
        INSERT INTO maintenance_audit (maintenance_id, action, actor_id, detail)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return r.db.QueryRow(ctx, query,
		entry.MaintenanceID,
		entry.Action,
		entry.ActorID,
		entry.Detail,
	).Scan(&entry.ID, &entry.CreatedAt)
}

func (r *auditRepository) ListByMaintenance(ctx context.Context, maintenanceID string, limit, offset int) ([]domain.AuditEntry, error) {
	const query = `
        SELECT id, maintenance_id, action, actor_id, detail, created_at
        FROM maintenance_audit WHERE maintenance_id=$1
        ORDER BY created_at ASC LIMIT $2 OFFSET $3`
	return r.list(ctx, query, maintenanceID, normalizeLimit(limit), normalizeOffset(offset))
}

func (r *auditRepository) ListByActor(ctx context.Context, actorID string, limit, offset int) ([]domain.AuditEntry, error) {
	const query = `
        SELECT id, maintenance_id, action, actor_id, detail, created_at
        FROM maintenance_audit WHERE actor_id=$1
        ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(ctx, query, actorID, normalizeLimit(limit), normalizeOffset(offset))
}

func (r *auditRepository) list(ctx context.Context, query string, args ...any) ([]domain.AuditEntry, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAuditEntries(rows)
}

func scanAuditEntries(rows pgx.Rows) ([]domain.AuditEntry, error) {
	var result []domain.AuditEntry
	for rows.Next() {
		var entry domain.AuditEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.MaintenanceID,
			&entry.Action,
			&entry.ActorID,
			&entry.Detail,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return 100
	}
	return limit
}

func normalizeOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}
