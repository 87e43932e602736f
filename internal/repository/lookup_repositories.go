package repository

import (
	"context"

	"github.com/spec-kit/maintenance-service/internal/domain"
)

// EquipmentRepository resolves equipment references. The scheduling engine
// only needs lookup-by-id; directory CRUD lives elsewhere.
type EquipmentRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Equipment, error)
}

// MaintenanceTypeRepository resolves maintenance type references.
type MaintenanceTypeRepository interface {
	GetByID(ctx context.Context, id string) (*domain.MaintenanceType, error)
}

type equipmentRepository struct {
	db DB
}

// NewEquipmentRepository returns a Postgres-backed lookup.
func NewEquipmentRepository(db DB) EquipmentRepository {
	return &equipmentRepository{db: db}
}

func (r *equipmentRepository) GetByID(ctx context.Context, id string) (*domain.Equipment, error) {
	const query = `
        SELECT id, name, location, active, created_at, updated_at
        FROM equipment WHERE id=$1`
	var eq domain.Equipment
	if err := r.db.QueryRow(ctx, query, id).Scan(
		&eq.ID,
		&eq.Name,
		&eq.Location,
		&eq.Active,
		&eq.CreatedAt,
		&eq.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &eq, nil
}

type maintenanceTypeRepository struct {
	db DB
}

// NewMaintenanceTypeRepository returns a Postgres-backed lookup.
func NewMaintenanceTypeRepository(db DB) MaintenanceTypeRepository {
	return &maintenanceTypeRepository{db: db}
}

func (r *maintenanceTypeRepository) GetByID(ctx context.Context, id string) (*domain.MaintenanceType, error) {
	const query = `
        SELECT id, name, description, active, created_at, updated_at
        FROM maintenance_types WHERE id=$1`
	var mt domain.MaintenanceType
	if err := r.db.QueryRow(ctx, query, id).Scan(
		&mt.ID,
		&mt.Name,
		&mt.Description,
		&mt.Active,
		&mt.CreatedAt,
		&mt.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &mt, nil
}
