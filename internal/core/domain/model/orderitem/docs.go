// Package orderitem provides the allocation engine's read model of an
// order line: the product it requires, the quantity of serialized units it
// needs, and the projected fulfillment status (PENDING, PARTIAL,
// COMPLETED) reported back to the order domain.
//
// The order domain owns the entity; the engine never creates or deletes
// order items and only writes the projected status.
package orderitem
