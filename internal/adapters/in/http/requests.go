package http

import "time"

// ErrorResponse is the uniform error body returned by the API.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ReceiveSerialsRequest registers a batch of received units of one product.
type ReceiveSerialsRequest struct {
	ProductID     string   `json:"productId"     validate:"required,uuid"`
	SerialNumbers []string `json:"serialNumbers" validate:"required,min=1,dive,required"`
	Actor         string   `json:"actor"         validate:"required"`
}

// AssignSerialsRequest reserves units against the order item named in the
// path. ProductID names the product the caller believes the item sells.
type AssignSerialsRequest struct {
	ProductID string   `json:"productId" validate:"required,uuid"`
	SerialIDs []string `json:"serialIds" validate:"required,min=1,dive,uuid"`
	Actor     string   `json:"actor"     validate:"required"`
}

// UnassignSerialsRequest releases units from the order item named in the
// path back into stock.
type UnassignSerialsRequest struct {
	SerialIDs []string `json:"serialIds" validate:"required,min=1,dive,uuid"`
	Actor     string   `json:"actor"     validate:"required"`
}

// AllocateSerialsRequest hands reserved units over to a dealer account.
type AllocateSerialsRequest struct {
	SerialIDs       []string `json:"serialIds"       validate:"required,min=1,dive,uuid"`
	DealerAccountID string   `json:"dealerAccountId" validate:"required,uuid"`
	Actor           string   `json:"actor"           validate:"required"`
}

// MarkUnavailableRequest writes in-stock units off as sold or damaged.
type MarkUnavailableRequest struct {
	SerialIDs []string `json:"serialIds" validate:"required,min=1,dive,uuid"`
	Reason    string   `json:"reason"    validate:"required,oneof=SOLD DAMAGED"`
	Actor     string   `json:"actor"     validate:"required"`
}

// AvailableSerialResponse is one in-stock unit eligible for assignment.
type AvailableSerialResponse struct {
	ID           string `json:"id"`
	SerialNumber string `json:"serialNumber"`
}

// AssignedSerialResponse is one unit reserved against an order item.
type AssignedSerialResponse struct {
	ID           string    `json:"id"`
	SerialNumber string    `json:"serialNumber"`
	AssignedAt   time.Time `json:"assignedAt"`
}

// AllocatedSerialResponse is one unit whose custody moved to a dealer.
type AllocatedSerialResponse struct {
	ID              string    `json:"id"`
	SerialNumber    string    `json:"serialNumber"`
	DealerAccountID string    `json:"dealerAccountId"`
	AllocatedAt     time.Time `json:"allocatedAt"`
}

// InventoryCountsResponse is the per-state breakdown of one product's
// serialized inventory.
type InventoryCountsResponse struct {
	InStock   int `json:"inStock"`
	Assigned  int `json:"assigned"`
	Allocated int `json:"allocated"`
	Sold      int `json:"sold"`
	Damaged   int `json:"damaged"`
	Total     int `json:"total"`
}
