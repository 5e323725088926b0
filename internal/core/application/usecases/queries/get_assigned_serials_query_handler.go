package queries

import (
	"context"
	"time"

	"allocation/internal/core/domain/model/kernel"
	"allocation/internal/core/domain/model/serialunit"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAssignedSerialsQueryHandler lists the units reserved against one
// order item.
type GetAssignedSerialsQueryHandler struct {
	db *gorm.DB
}

// NewGetAssignedSerialsQueryHandler creates a handler for assigned serial
// queries. Requires a GORM database connection.
func NewGetAssignedSerialsQueryHandler(db *gorm.DB) GetAssignedSerialsQueryHandler {
	return GetAssignedSerialsQueryHandler{db: db}
}

// Handle executes the query and returns the order item's reserved units,
// ordered by serial number.
func (h GetAssignedSerialsQueryHandler) Handle(
	ctx context.Context,
	query GetAssignedSerialsQuery,
) ([]GetAssignedSerialsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	serials := make([]GetAssignedSerialsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			serial_number,
			updated_at
		FROM serial_units
		WHERE order_item_id = ? AND state = ?
		ORDER BY serial_number
	`, query.OrderItemID().Bytes(), serialunit.AssignedToOrderItem).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var serialNumber string
		var assignedAt time.Time

		if err = rows.Scan(&id, &serialNumber, &assignedAt); err != nil {
			return nil, err
		}

		unitID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		serials = append(serials, GetAssignedSerialsQueryResponse{
			ID:           unitID,
			SerialNumber: serialNumber,
			AssignedAt:   assignedAt,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return serials, nil
}
