package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each
// request/command. This ensures proper isolation between concurrent
// operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary around one
// transition batch. Repositories obtained from it operate within the
// transaction started by Begin, which is what gives batches their
// all-or-nothing semantics: when a compare-and-set fails halfway through a
// batch, rolling back the transaction reverts the units already written in
// that batch.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// SerialUnitRepository returns a SerialUnitRepository bound to the
	// current transaction.
	SerialUnitRepository() SerialUnitRepository

	// OrderItemRepository returns an OrderItemRepository bound to the
	// current transaction.
	OrderItemRepository() OrderItemRepository
}
