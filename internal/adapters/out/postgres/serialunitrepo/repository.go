package serialunitrepo

import (
	"context"
	"errors"
	"fmt"

	"allocation/internal/core/domain/model/kernel"
	"allocation/internal/core/domain/model/serialunit"
	"allocation/internal/core/ports"
	"allocation/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// GormSerialUnitRepository implements SerialUnitRepository using GORM.
type GormSerialUnitRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormSerialUnitRepository creates a new GORM serial unit repository.
func NewGormSerialUnitRepository(db *gorm.DB, tracker aggregateTracker) *GormSerialUnitRepository {
	return &GormSerialUnitRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a newly received unit to the database.
// Returns ports.ErrDuplicateSerialNumber when the serial number is already
// registered.
func (r *GormSerialUnitRepository) Add(ctx context.Context, aggregate *serialunit.SerialUnit) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ports.ErrDuplicateSerialNumber
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a unit by ID.
func (r *GormSerialUnitRepository) Get(ctx context.Context, id kernel.UUID) (*serialunit.SerialUnit, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto SerialUnitDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("serial unit", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByProduct retrieves all units of a product in the given state, ordered
// by serial number.
func (r *GormSerialUnitRepository) GetByProduct(
	ctx context.Context,
	productID kernel.UUID,
	state serialunit.State,
) ([]*serialunit.SerialUnit, error) {
	if err := productID.Validate(); err != nil {
		return nil, err
	}

	var dtos []SerialUnitDTO
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND state = ?", productID.Bytes(), int(state)).
		Order("serial_number").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetByOrderItem retrieves all units owned by an order item in any of the
// given states, ordered by serial number. With no states given, all owned
// units are returned.
func (r *GormSerialUnitRepository) GetByOrderItem(
	ctx context.Context,
	orderItemID kernel.UUID,
	states ...serialunit.State,
) ([]*serialunit.SerialUnit, error) {
	if err := orderItemID.Validate(); err != nil {
		return nil, err
	}

	tx := r.db.WithContext(ctx).Where("order_item_id = ?", orderItemID.Bytes())
	if len(states) > 0 {
		tx = tx.Where("state IN ?", stateInts(states))
	}

	var dtos []SerialUnitDTO
	if err := tx.Order("serial_number").Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// CountByOrderItem counts units owned by an order item in any of the given
// states.
func (r *GormSerialUnitRepository) CountByOrderItem(
	ctx context.Context,
	orderItemID kernel.UUID,
	states ...serialunit.State,
) (int, error) {
	if err := orderItemID.Validate(); err != nil {
		return 0, err
	}

	tx := r.db.WithContext(ctx).Model(&SerialUnitDTO{}).Where("order_item_id = ?", orderItemID.Bytes())
	if len(states) > 0 {
		tx = tx.Where("state IN ?", stateInts(states))
	}

	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return 0, translateSerializationFailure(err)
	}

	return int(count), nil
}

// UpdateWithStateCheck persists the aggregate's mutable fields if and only
// if the stored row's state still equals expectedState. Returns
// ports.ErrConflict when the guard fails, whether another writer moved the
// unit or deleted it; either way the caller's view was stale.
func (r *GormSerialUnitRepository) UpdateWithStateCheck(
	ctx context.Context,
	aggregate *serialunit.SerialUnit,
	expectedState serialunit.State,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	// Updates with a map so cleared ownership columns are written as NULL.
	result := r.db.WithContext(ctx).Model(&SerialUnitDTO{}).
		Where("id = ? AND state = ?", dto.ID, int(expectedState)).
		Updates(map[string]any{
			"state":             dto.State,
			"order_item_id":     dto.OrderItemID,
			"dealer_account_id": dto.DealerAccountID,
			"updated_at":        dto.UpdatedAt,
		})
	if result.Error != nil {
		return translateSerializationFailure(result.Error)
	}

	if result.RowsAffected == 0 {
		return ports.ErrConflict
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
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

func toDomainSlice(dtos []SerialUnitDTO) ([]*serialunit.SerialUnit, error) {
	units := make([]*serialunit.SerialUnit, 0, len(dtos))
	for _, dto := range dtos {
		unit, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		units = append(units, unit)
	}
	return units, nil
}

func stateInts(states []serialunit.State) []int {
	ints := make([]int, 0, len(states))
	for _, state := range states {
		ints = append(ints, int(state))
	}
	return ints
}
