// Package orderitemrepo provides data transfer objects and mapping
// functions for the engine's view of order items. The order domain owns
// the rows; this package reads the required quantity and writes back the
// projected fulfillment status.
package orderitemrepo

import (
	"allocation/internal/core/domain/model/kernel"
	"allocation/internal/core/domain/model/orderitem"

	"github.com/google/uuid"
)

// OrderItemDTO represents the database structure for order item references.
type OrderItemDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	ProductID uuid.UUID `gorm:"type:uuid;index"`
	Quantity  int
	Status    int
}

// TableName specifies the database table name for order item entities.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order item reference to its database
// representation.
func fromDomain(item *orderitem.OrderItem) OrderItemDTO {
	return OrderItemDTO{
		ID:        item.ID().Bytes(),
		OrderID:   item.OrderID().Bytes(),
		ProductID: item.ProductID().Bytes(),
		Quantity:  item.Quantity(),
		Status:    int(item.Status()),
	}
}

// toDomain converts a database DTO back to an order item reference.
func toDomain(dto OrderItemDTO) (*orderitem.OrderItem, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}

	return orderitem.RestoreOrderItem(id, orderID, productID, dto.Quantity, orderitem.Status(dto.Status))
}
