package ports

import (
	"context"

	"allocation/internal/core/domain/model/serialunit"
)

// EventPublisher delivers committed transition events to their consumers
// (audit trail, observability). The engine publishes after a successful
// commit only; events for rolled-back batches are discarded with the
// aggregates that recorded them.
type EventPublisher interface {
	// Publish delivers the transitions performed by one batch, attributed
	// to the acting admin.
	Publish(ctx context.Context, actor string, events []serialunit.TransitionEvent)
}
