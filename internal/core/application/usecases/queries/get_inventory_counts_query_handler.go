package queries

import (
	"context"

	"allocation/internal/core/domain/model/serialunit"

	"gorm.io/gorm"
)

// GetInventoryCountsQueryHandler computes the per-state unit counts of one
// product in a single grouped scan.
type GetInventoryCountsQueryHandler struct {
	db *gorm.DB
}

// NewGetInventoryCountsQueryHandler creates a handler for inventory count
// queries. Requires a GORM database connection.
func NewGetInventoryCountsQueryHandler(db *gorm.DB) GetInventoryCountsQueryHandler {
	return GetInventoryCountsQueryHandler{db: db}
}

// Handle executes the query and returns the product's per-state counts.
// A product with no registered units reports all zeroes rather than an
// error; the admin console renders that as an empty inventory.
func (h GetInventoryCountsQueryHandler) Handle(
	ctx context.Context,
	query GetInventoryCountsQuery,
) (GetInventoryCountsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetInventoryCountsQueryResponse{}, err
	}

	var counts GetInventoryCountsQueryResponse

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			state,
			COUNT(*)
		FROM serial_units
		WHERE product_id = ?
		GROUP BY state
	`, query.ProductID().Bytes()).Rows()
	if err != nil {
		return GetInventoryCountsQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var state serialunit.State
		var count int

		if err = rows.Scan(&state, &count); err != nil {
			return GetInventoryCountsQueryResponse{}, err
		}

		switch state {
		case serialunit.InStock:
			counts.InStock = count
		case serialunit.AssignedToOrderItem:
			counts.Assigned = count
		case serialunit.AllocatedToDealer:
			counts.Allocated = count
		case serialunit.Sold:
			counts.Sold = count
		case serialunit.Damaged:
			counts.Damaged = count
		case serialunit.Unknown:
			// unreachable for rows written through the engine
		}
	}

	if err = rows.Err(); err != nil {
		return GetInventoryCountsQueryResponse{}, err
	}

	return counts, nil
}
