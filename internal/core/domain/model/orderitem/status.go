package orderitem

import (
	"fmt"

	"allocation/internal/pkg/errs"
)

// Status is the derived fulfillment status of an order item. It is a pure
// projection of the item's serial assignments and is never stored as an
// independently-mutable field, so it cannot drift from the underlying
// serial counts.
//
// Projection rule:
//   - Completed: every required unit is allocated to the dealer
//   - Partial: at least one unit is assigned or allocated, but the item is
//     not fully allocated (full assignment alone is not completion)
//   - Pending: no unit is assigned or allocated
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Pending means no serial unit is reserved for the item yet.
	Pending

	// Partial means some units are reserved or allocated, but dealer
	// allocation is not complete.
	Partial

	// Completed means every required unit reached ALLOCATED_TO_DEALER.
	Completed
)

func statusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Pending:   "PENDING",
		Partial:   "PARTIAL",
		Completed: "COMPLETED",
	}
}

func validStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "PENDING",
		Partial:   "PARTIAL",
		Completed: "COMPLETED",
	}
}

// StatusFromString parses a wire representation ("PENDING", ...) into a
// Status.
func StatusFromString(s string) (Status, error) {
	for status, str := range validStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if _, ok := validStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status, or "UNKNOWN" for invalid
// values. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := statusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}
