package queries

import (
	"context"
	"time"

	"allocation/internal/core/domain/model/kernel"
	"allocation/internal/core/domain/model/serialunit"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAllocatedSerialsQueryHandler lists the units of an order item already
// handed to a dealer.
type GetAllocatedSerialsQueryHandler struct {
	db *gorm.DB
}

// NewGetAllocatedSerialsQueryHandler creates a handler for allocated
// serial queries. Requires a GORM database connection.
func NewGetAllocatedSerialsQueryHandler(db *gorm.DB) GetAllocatedSerialsQueryHandler {
	return GetAllocatedSerialsQueryHandler{db: db}
}

// Handle executes the query and returns the order item's allocated units,
// ordered by serial number.
func (h GetAllocatedSerialsQueryHandler) Handle(
	ctx context.Context,
	query GetAllocatedSerialsQuery,
) ([]GetAllocatedSerialsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	serials := make([]GetAllocatedSerialsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			serial_number,
			dealer_account_id,
			updated_at
		FROM serial_units
		WHERE order_item_id = ? AND state = ?
		ORDER BY serial_number
	`, query.OrderItemID().Bytes(), serialunit.AllocatedToDealer).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id, dealerID uuid.UUID
		var serialNumber string
		var allocatedAt time.Time

		if err = rows.Scan(&id, &serialNumber, &dealerID, &allocatedAt); err != nil {
			return nil, err
		}

		unitID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		dealerAccountID, idErr := kernel.UUIDFromBytes(dealerID[:])
		if idErr != nil {
			return nil, idErr
		}

		serials = append(serials, GetAllocatedSerialsQueryResponse{
			ID:              unitID,
			SerialNumber:    serialNumber,
			DealerAccountID: dealerAccountID,
			AllocatedAt:     allocatedAt,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return serials, nil
}
