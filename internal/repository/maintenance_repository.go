package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/maintenance-service/internal/domain"
)

// MaintenanceFilter narrows maintenance listings.
type MaintenanceFilter struct {
	ScheduledOnly  bool
	RequestedBy    *string
	ResponsibleID  *string
	IncludeDeleted bool
	Limit          int
	Offset         int
}

// MaintenanceRepository encapsulates work order persistence.
type MaintenanceRepository interface {
	Create(ctx context.Context, order *domain.MaintenanceWorkOrder) error
	Update(ctx context.Context, order *domain.MaintenanceWorkOrder) error
	GetByID(ctx context.Context, id string) (*domain.MaintenanceWorkOrder, error)
	List(ctx context.Context, filter MaintenanceFilter) ([]domain.MaintenanceWorkOrder, error)
}

type maintenanceRepository struct {
	db DB
}

// NewMaintenanceRepository instantiates a Postgres-backed repository.
func NewMaintenanceRepository(db DB) MaintenanceRepository {
	return &maintenanceRepository{db: db}
}

func (r *maintenanceRepository) Create(ctx context.Context, order *domain.MaintenanceWorkOrder) error {
	const query = `
        INSERT INTO maintenances (code, description, priority, active, review_status, rejection_reason,
            equipment_id, type_id, responsible_id, requested_by_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		order.Code,
		order.Description,
		order.Priority,
		order.Active,
		order.ReviewStatus,
		order.RejectionReason,
		order.EquipmentID,
		order.TypeID,
		order.ResponsibleID,
		order.RequestedByID,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
}

func (r *maintenanceRepository) Update(ctx context.Context, order *domain.MaintenanceWorkOrder) error {
	const query = `
        UPDATE maintenances SET description=$1, priority=$2, active=$3, review_status=$4,
            rejection_reason=$5, equipment_id=$6, type_id=$7, responsible_id=$8,
            reviewed_by_id=$9, deleted_at=$10, updated_at=NOW()
        WHERE id=$11
        RETURNING updated_at`
	return r.db.QueryRow(ctx, query,
		order.Description,
		order.Priority,
		order.Active,
		order.ReviewStatus,
		order.RejectionReason,
		order.EquipmentID,
		order.TypeID,
		order.ResponsibleID,
		order.ReviewedByID,
		order.DeletedAt,
		order.ID,
	).Scan(&order.UpdatedAt)
}

const maintenanceColumns = `m.id, m.code, m.description, m.priority, m.active, m.review_status,
               m.rejection_reason, m.equipment_id, m.type_id, m.responsible_id, m.requested_by_id,
               m.reviewed_by_id, m.created_at, m.updated_at, m.deleted_at,
               s.maintenance_id, s.frequency_kind, s.frequency_every, s.next_maintenance,
               s.created_at, s.updated_at`

func (r *maintenanceRepository) GetByID(ctx context.Context, id string) (*domain.MaintenanceWorkOrder, error) {
	query := fmt.Sprintf(`
        SELECT %s FROM maintenances m
        LEFT JOIN scheduled_maintenances s ON s.maintenance_id = m.id
        WHERE m.id=$1`, maintenanceColumns)
	order, err := scanMaintenance(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *maintenanceRepository) List(ctx context.Context, filter MaintenanceFilter) ([]domain.MaintenanceWorkOrder, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if !filter.IncludeDeleted {
		clauses = append(clauses, "m.deleted_at IS NULL")
	}
	if filter.ScheduledOnly {
		clauses = append(clauses, "s.maintenance_id IS NOT NULL")
	}
	if filter.RequestedBy != nil {
		args = append(args, *filter.RequestedBy)
		clauses = append(clauses, fmt.Sprintf("m.requested_by_id=$%d", len(args)))
	}
	if filter.ResponsibleID != nil {
		args = append(args, *filter.ResponsibleID)
		clauses = append(clauses, fmt.Sprintf("m.responsible_id=$%d", len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`
        SELECT %s FROM maintenances m
        LEFT JOIN scheduled_maintenances s ON s.maintenance_id = m.id
        WHERE %s ORDER BY m.created_at DESC LIMIT %d OFFSET %d`,
		maintenanceColumns, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.MaintenanceWorkOrder
	for rows.Next() {
		order, err := scanMaintenance(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *order)
	}
	return result, rows.Err()
}

func scanMaintenance(row pgx.Row) (*domain.MaintenanceWorkOrder, error) {
	var (
		order domain.MaintenanceWorkOrder
		occ   domain.ScheduledOccurrence

		occID    *string
		occKind  *domain.FrequencyKind
		occEvery *int
		occNext  *time.Time
		occCre   *time.Time
		occUpd   *time.Time
	)
	if err := row.Scan(
		&order.ID,
		&order.Code,
		&order.Description,
		&order.Priority,
		&order.Active,
		&order.ReviewStatus,
		&order.RejectionReason,
		&order.EquipmentID,
		&order.TypeID,
		&order.ResponsibleID,
		&order.RequestedByID,
		&order.ReviewedByID,
		&order.CreatedAt,
		&order.UpdatedAt,
		&order.DeletedAt,
		&occID,
		&occKind,
		&occEvery,
		&occNext,
		&occCre,
		&occUpd,
	); err != nil {
		return nil, err
	}
	if occID != nil {
		occ.MaintenanceID = *occID
		occ.FrequencyKind = *occKind
		occ.FrequencyEvery = *occEvery
		occ.NextMaintenance = *occNext
		occ.CreatedAt = *occCre
		occ.UpdatedAt = *occUpd
		order.Occurrence = &occ
	}
	return &order, nil
}
