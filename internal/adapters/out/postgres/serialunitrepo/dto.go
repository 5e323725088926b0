// Package serialunitrepo provides data transfer objects and mapping
// functions for serial unit persistence. It implements the repository
// pattern for the serial unit aggregate, including the compare-and-set
// write primitive the transition engine builds its batches on.
package serialunitrepo

import (
	"time"

	"allocation/internal/core/domain/model/kernel"
	"allocation/internal/core/domain/model/serialunit"

	"github.com/google/uuid"
)

// SerialUnitDTO represents the database structure for persisting serial
// unit aggregates. The unique index on serial_number enforces global
// serial uniqueness; the state and ownership columns are indexed for the
// picking queries.
type SerialUnitDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	SerialNumber    string     `gorm:"uniqueIndex;not null"`
	ProductID       uuid.UUID  `gorm:"type:uuid;index:idx_serial_units_product_state"`
	State           int        `gorm:"index:idx_serial_units_product_state"`
	OrderItemID     *uuid.UUID `gorm:"type:uuid;index"`
	DealerAccountID *uuid.UUID `gorm:"type:uuid"`
	UpdatedAt       time.Time
}

// TableName specifies the database table name for serial unit entities.
func (SerialUnitDTO) TableName() string {
	return "serial_units"
}

// fromDomain converts a serial unit aggregate to its database
// representation.
func fromDomain(unit *serialunit.SerialUnit) SerialUnitDTO {
	var orderItemID *uuid.UUID
	if id := unit.OrderItemID(); id != nil {
		raw := id.Bytes()
		orderItemID = &raw
	}

	var dealerAccountID *uuid.UUID
	if id := unit.DealerAccountID(); id != nil {
		raw := id.Bytes()
		dealerAccountID = &raw
	}

	return SerialUnitDTO{
		ID:              unit.ID().Bytes(),
		SerialNumber:    unit.SerialNumber(),
		ProductID:       unit.ProductID().Bytes(),
		State:           int(unit.State()),
		OrderItemID:     orderItemID,
		DealerAccountID: dealerAccountID,
		UpdatedAt:       unit.UpdatedAt(),
	}
}

// toDomain converts a database DTO back to a serial unit aggregate.
// RestoreSerialUnit re-validates the ownership invariants, so corrupt rows
// surface here as errors instead of leaking into the engine.
func toDomain(dto SerialUnitDTO) (*serialunit.SerialUnit, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}

	var orderItemID *kernel.UUID
	if dto.OrderItemID != nil {
		oID, itemErr := kernel.UUIDFromBytes((*dto.OrderItemID)[:])
		if itemErr != nil {
			return nil, itemErr
		}
		orderItemID = &oID
	}

	var dealerAccountID *kernel.UUID
	if dto.DealerAccountID != nil {
		dID, dealerErr := kernel.UUIDFromBytes((*dto.DealerAccountID)[:])
		if dealerErr != nil {
			return nil, dealerErr
		}
		dealerAccountID = &dID
	}

	return serialunit.RestoreSerialUnit(
		id,
		dto.SerialNumber,
		productID,
		serialunit.State(dto.State),
		orderItemID,
		dealerAccountID,
		dto.UpdatedAt,
	)
}
