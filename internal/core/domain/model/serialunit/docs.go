// Package serialunit provides the domain model for serialized inventory
// units. It implements the SerialUnit aggregate root with its lifecycle
// state machine (intake, reservation against an order item, handover to a
// dealer, write-off) and the transition events emitted on every state
// change.
//
// The package owns the allocation error taxonomy for per-unit failures:
// ErrNotInStock, ErrNotAssigned, ErrAllocationIsTerminal and
// ErrProductMismatch. Aggregate-level quantity enforcement lives in the
// domain services package; optimistic-concurrency failures surface from the
// ports package as ErrConflict.
package serialunit
