// Package postgres provides the GORM-based implementation of the Unit of
// Work pattern. A unit of work wraps one transition batch in a database
// transaction, which is what gives batches their all-or-nothing semantics:
// when a compare-and-set fails halfway through, rolling back the
// transaction reverts the units already written. Transactions run at
// SERIALIZABLE isolation; concurrent batches over disjoint units that would
// together overbook an order item cannot both commit, and the aborted one
// surfaces as ports.ErrConflict.
//
// Basic usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	if err := uow.SerialUnitRepository().UpdateWithStateCheck(ctx, unit, prior); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Each UnitOfWork instance owns its transaction state; concurrent
// operations must use separate instances.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"allocation/internal/adapters/out/postgres/orderitemrepo"
	"allocation/internal/adapters/out/postgres/serialunitrepo"
	"allocation/internal/core/domain/model/kernel"
	"allocation/internal/core/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances backed by a shared
// GORM connection. Each business operation gets a fresh instance with its
// own transaction state.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work
// instances.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork ready to wrap one transition batch.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and tracks the
// aggregates written through it. Repositories obtained from it operate
// within the transaction started by Begin.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin initiates a new database transaction. Calling Begin again on an
// instance with an active transaction is a no-op rather than a nested
// transaction.
//
// Transactions run at SERIALIZABLE isolation. The per-unit compare-and-set
// only guards same-unit races; two batches reserving disjoint units against
// the same order item would each read a quantity count that excludes the
// other's uncommitted rows and both pass the invariant check. Serializable
// isolation makes Postgres abort one of them, surfaced as ports.ErrConflict.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin(&sql.TxOptions{Isolation: sql.LevelSerializable})
	if uow.tx.Error != nil {
		return uow.tx.Error
	}

	return nil
}

// Commit finalizes all changes made within the current transaction.
// Returns gorm.ErrInvalidTransaction when no transaction is active and
// ports.ErrConflict when Postgres aborts the commit with a serialization
// failure.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return translateSerializationFailure(err)
}

// Rollback discards all changes made within the current transaction.
// Returns gorm.ErrInvalidTransaction when no transaction is active, which
// is what the deferred rollback after a successful commit hits.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// SerialUnitRepository returns a serial unit repository bound to the
// current transaction, or to the main connection when none is active.
func (uow *GormUnitOfWork) SerialUnitRepository() ports.SerialUnitRepository {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return serialunitrepo.NewGormSerialUnitRepository(db, uow)
}

// OrderItemRepository returns an order item repository bound to the
// current transaction, or to the main connection when none is active.
func (uow *GormUnitOfWork) OrderItemRepository() ports.OrderItemRepository {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return orderitemrepo.NewGormOrderItemRepository(db, uow)
}

// TrackAggregate registers a domain aggregate as written within this unit
// of work. Repository implementations call it on Add and on successful
// compare-and-set writes.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// translateSerializationFailure maps a Postgres serialization failure
// (SQLSTATE 40001) to the retryable ports.ErrConflict of the repository
// contract.
func translateSerializationFailure(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "40001" {
		return fmt.Errorf("%w: %s", ports.ErrConflict, pgErr.Message)
	}
	return err
}
