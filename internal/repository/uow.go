package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Stores bundles the repositories that participate in one transaction.
type Stores struct {
	Maintenances MaintenanceRepository
	Occurrences  OccurrenceRepository
	Audit        AuditRepository
}

// UnitOfWork scopes a group of writes to a single transaction: either every
// write inside fn commits, or none do.
type UnitOfWork interface {
	InTx(ctx context.Context, fn func(Stores) error) error
	// Stores returns pool-bound repositories for reads outside a transaction.
	Stores() Stores
}

type pgxUnitOfWork struct {
	pool *pgxpool.Pool
}

// NewPgxUnitOfWork builds a UnitOfWork over a pgx pool.
func NewPgxUnitOfWork(pool *pgxpool.Pool) UnitOfWork {
	return &pgxUnitOfWork{pool: pool}
}

func (u *pgxUnitOfWork) InTx(ctx context.Context, fn func(Stores) error) error {
	return pgx.BeginFunc(ctx, u.pool, func(tx pgx.Tx) error {
		return fn(storesFor(tx))
	})
}

func (u *pgxUnitOfWork) Stores() Stores {
	return storesFor(u.pool)
}

func storesFor(db DB) Stores {
	return Stores{
		Maintenances: NewMaintenanceRepository(db),
		Occurrences:  NewOccurrenceRepository(db),
		Audit:        NewAuditRepository(db),
	}
}
