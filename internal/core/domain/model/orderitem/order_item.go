package orderitem

import (
	"errors"
	"fmt"

	"allocation/internal/core/domain/model/kernel"
	"allocation/internal/pkg/errs"
)

// ErrOrderItemIsNotConstructed is returned when an OrderItem instance was
// not created through NewOrderItem or RestoreOrderItem.
var ErrOrderItemIsNotConstructed = errors.New("OrderItem must be created via NewOrderItem or RestoreOrderItem")

// OrderItem is the engine's view of one line within an order: which product
// it requires and how many serialized units must be reserved and handed to
// a dealer before the line is fulfilled.
//
// The order domain owns the entity; this model only carries the fields the
// allocation engine validates against (product, required quantity) plus the
// projected fulfillment status it reports back.
type OrderItem struct {
	// id is the order item's unique identifier
	id kernel.UUID

	// orderID is the owning order
	orderID kernel.UUID

	// productID is the product the line requires
	productID kernel.UUID

	// quantity is the required number of serial units (positive)
	quantity int

	// status is the projected fulfillment status
	status Status

	// isConstructed ensures the item was created via a constructor
	isConstructed bool
}

// NewOrderItem creates an order item reference in Pending status.
// Quantity must be positive.
func NewOrderItem(id, orderID, productID kernel.UUID, quantity int) (*OrderItem, error) {
	return RestoreOrderItem(id, orderID, productID, quantity, Pending)
}

// RestoreOrderItem reconstructs an order item reference from persistence.
func RestoreOrderItem(id, orderID, productID kernel.UUID, quantity int, status Status) (*OrderItem, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	if err := productID.Validate(); err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is not greater than 0", quantity))
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}

	return &OrderItem{
		id:            id,
		orderID:       orderID,
		productID:     productID,
		quantity:      quantity,
		status:        status,
		isConstructed: true,
	}, nil
}

// Validate ensures the OrderItem instance was properly constructed.
func (o *OrderItem) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderItemIsNotConstructed
	}
	return nil
}

// ID returns the order item's unique identifier.
func (o *OrderItem) ID() kernel.UUID {
	return o.id
}

// OrderID returns the owning order's identifier.
func (o *OrderItem) OrderID() kernel.UUID {
	return o.orderID
}

// ProductID returns the required product's identifier.
func (o *OrderItem) ProductID() kernel.UUID {
	return o.productID
}

// Quantity returns the required number of serial units.
func (o *OrderItem) Quantity() int {
	return o.quantity
}

// Status returns the projected fulfillment status.
func (o *OrderItem) Status() Status {
	return o.status
}

// ApplyProjection records a freshly projected fulfillment status on the
// item. The projector is the only caller; the status is never edited
// independently of the serial counts it derives from.
func (o *OrderItem) ApplyProjection(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}
