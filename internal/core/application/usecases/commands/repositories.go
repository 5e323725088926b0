// Package commands contains the transition engine: business operations
// that change serial unit state. Implements the Command pattern for write
// operations in the CQRS architecture. All commands follow a consistent
// pattern: validation, transaction management, per-unit compare-and-set
// writes, status re-projection, and post-commit event publication.
package commands

import (
	"context"

	"allocation/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command
// handlers. These abstractions ensure the all-or-nothing semantics of
// transition batches.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// SerialUnitRepoFactory provides access to the serial unit repository
	// within a transaction.
	SerialUnitRepoFactory interface {
		SerialUnitRepository() ports.SerialUnitRepository
	}

	// OrderItemRepoFactory provides access to the order item repository
	// within a transaction.
	OrderItemRepoFactory interface {
		OrderItemRepository() ports.OrderItemRepository
	}

	// SerialUnitUoW manages transactions for operations touching serial
	// units only (intake, write-off).
	SerialUnitUoW interface {
		TxManager
		SerialUnitRepoFactory
	}

	// SerialUnitUoWFactory creates new serial-unit unit of work instances.
	SerialUnitUoWFactory interface {
		Create() SerialUnitUoW
	}

	// UoW manages transactions spanning serial units and the owning order
	// item. Used by assign, unassign and allocate, which re-project the
	// order item's status in the same transaction as the unit writes.
	UoW interface {
		TxManager
		SerialUnitRepoFactory
		OrderItemRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate
	// operations.
	UoWFactory interface {
		Create() UoW
	}
)
