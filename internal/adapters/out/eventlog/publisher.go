// Package eventlog provides the production EventPublisher: committed
// transition events are written to the structured log, forming the
// engine's audit trail of who moved which unit where.
package eventlog

import (
	"context"
	"log/slog"

	"allocation/internal/core/domain/model/serialunit"
)

// SlogEventPublisher logs transition events through a slog.Logger.
type SlogEventPublisher struct {
	logger *slog.Logger
}

// NewSlogEventPublisher creates a publisher writing to the given logger.
// A nil logger falls back to slog.Default.
func NewSlogEventPublisher(logger *slog.Logger) *SlogEventPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogEventPublisher{logger: logger}
}

// Publish writes one log record per transition, attributed to the acting
// admin. Publication happens after commit; a failed batch never reaches
// this point.
func (p *SlogEventPublisher) Publish(ctx context.Context, actor string, events []serialunit.TransitionEvent) {
	for _, event := range events {
		attrs := []any{
			slog.String("unit_id", event.UnitID.String()),
			slog.String("serial_number", event.SerialNumber),
			slog.String("from", event.From.String()),
			slog.String("to", event.To.String()),
			slog.String("actor", actor),
			slog.Time("occurred_at", event.OccurredAt),
		}
		if event.OrderItemID != nil {
			attrs = append(attrs, slog.String("order_item_id", event.OrderItemID.String()))
		}
		if event.DealerAccountID != nil {
			attrs = append(attrs, slog.String("dealer_account_id", event.DealerAccountID.String()))
		}

		p.logger.InfoContext(ctx, "serial unit transition", attrs...)
	}
}
