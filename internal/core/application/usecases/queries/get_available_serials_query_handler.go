package queries

import (
	"context"

	"allocation/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAvailableSerialsQueryHandler lists the units of a product in the
// queried lifecycle state, in-stock by default. Results are ordered by
// serial number so repeated fetches between picks stay stable for the
// admin console.
type GetAvailableSerialsQueryHandler struct {
	db *gorm.DB
}

// NewGetAvailableSerialsQueryHandler creates a handler for available
// serial queries. Requires a GORM database connection.
func NewGetAvailableSerialsQueryHandler(db *gorm.DB) GetAvailableSerialsQueryHandler {
	return GetAvailableSerialsQueryHandler{db: db}
}

// Handle executes the query and returns the product's units in the
// queried state.
func (h GetAvailableSerialsQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableSerialsQuery,
) ([]GetAvailableSerialsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	serials := make([]GetAvailableSerialsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			serial_number
		FROM serial_units
		WHERE product_id = ? AND state = ?
		ORDER BY serial_number
	`, query.ProductID().Bytes(), query.State()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var serialNumber string

		if err = rows.Scan(&id, &serialNumber); err != nil {
			return nil, err
		}

		unitID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		serials = append(serials, GetAvailableSerialsQueryResponse{
			ID:           unitID,
			SerialNumber: serialNumber,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return serials, nil
}
