package queries

import (
	"errors"

	"allocation/internal/core/domain/model/kernel"
	"allocation/internal/pkg/guard"
)

var ErrGetInventoryCountsQueryIsNotConstructed = errors.New(
	"GetInventoryCountsQuery must be created via NewGetInventoryCountsQuery constructor",
)

// GetInventoryCountsQuery retrieves a per-state breakdown of one product's
// serialized inventory: how many units sit in stock, are reserved, went to
// dealers or were written off.
type GetInventoryCountsQuery struct {
	productID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetInventoryCountsQuery creates a query for a product's inventory
// breakdown. Validates that the product ID is valid.
func NewGetInventoryCountsQuery(productID kernel.UUID) (GetInventoryCountsQuery, error) {
	if err := productID.Validate(); err != nil {
		return GetInventoryCountsQuery{}, err
	}

	return GetInventoryCountsQuery{
		productID: productID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetInventoryCountsQueryIsNotConstructed if validation fails.
func (q GetInventoryCountsQuery) Validate() error {
	return q.guard.Validate(ErrGetInventoryCountsQueryIsNotConstructed)
}

// ProductID returns the product whose inventory breakdown is requested.
func (q GetInventoryCountsQuery) ProductID() kernel.UUID {
	return q.productID
}

// GetInventoryCountsQueryResponse represents the per-state unit counts of
// one product. States with no units report zero.
type GetInventoryCountsQueryResponse struct {
	InStock   int
	Assigned  int
	Allocated int
	Sold      int
	Damaged   int
}

// Total returns the number of units ever received for the product.
func (r GetInventoryCountsQueryResponse) Total() int {
	return r.InStock + r.Assigned + r.Allocated + r.Sold + r.Damaged
}
