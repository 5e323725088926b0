// Package kernel provides core domain primitives shared across the
// allocation engine's domain model. It currently carries the UUID value
// object used to identify serial units, products, order items and dealer
// accounts.
//
// Types in this package are immutable value objects: their zero values are
// invalid and construction goes through factory functions that validate
// their inputs.
package kernel
