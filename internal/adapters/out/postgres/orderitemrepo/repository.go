package orderitemrepo

import (
	"context"
	"errors"
	"fmt"

	"allocation/internal/core/domain/model/kernel"
	"allocation/internal/core/domain/model/orderitem"
	"allocation/internal/core/ports"
	"allocation/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// GormOrderItemRepository implements OrderItemRepository using GORM.
type GormOrderItemRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderItemRepository creates a new GORM order item repository.
func NewGormOrderItemRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderItemRepository {
	return &GormOrderItemRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves an order item reference to the database. The order domain is
// the source of these rows; Add exists for mirroring them into the
// engine's store and for test fixtures.
func (r *GormOrderItemRepository) Add(ctx context.Context, aggregate *orderitem.OrderItem) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order item reference by ID.
func (r *GormOrderItemRepository) Get(ctx context.Context, id kernel.UUID) (*orderitem.OrderItem, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderItemDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order item", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// UpdateStatus records a freshly projected fulfillment status. Concurrent
// batches touching the same order item collide on this row; under the unit
// of work's SERIALIZABLE transaction the loser's statement aborts with a
// serialization failure, returned as ports.ErrConflict.
func (r *GormOrderItemRepository) UpdateStatus(
	ctx context.Context,
	id kernel.UUID,
	status orderitem.Status,
) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if err := status.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&OrderItemDTO{}).
		Where("id = ?", id.Bytes()).
		Update("status", int(status))
	if result.Error != nil {
		return translateSerializationFailure(result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order item", id.String())
	}

	return nil
}

// translateSerializationFailure maps a Postgres serialization failure
// (SQLSTATE 40001) aborting the surrounding SERIALIZABLE transaction to
// the retryable ports.ErrConflict.
func translateSerializationFailure(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "40001" {
		return fmt.Errorf("%w: %s", ports.ErrConflict, pgErr.Message)
	}
	return err
}
