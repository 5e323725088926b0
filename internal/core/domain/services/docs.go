// Package services provides domain services for the allocation engine:
// logic that spans multiple serial units or derives order-item level facts
// and therefore does not belong to a single aggregate.
//
// QuantityChecker validates proposed reservation changes against an order
// item's required quantity; OrderItemProjector derives the item's
// fulfillment status from its serial counts.
package services
