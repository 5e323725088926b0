package commands

import (
	"errors"

	"allocation/internal/core/domain/model/kernel"
	"allocation/internal/pkg/errs"
)

// ErrSerialIDsAreRequired is returned when a transition command names no
// serial units.
var ErrSerialIDsAreRequired = errors.New("at least one serial unit is required")

// validateSerialIDs checks a transition batch's unit list: non-empty,
// every ID valid, no unit listed twice.
func validateSerialIDs(serialIDs []kernel.UUID) error {
	if len(serialIDs) == 0 {
		return ErrSerialIDsAreRequired
	}

	seen := make(map[kernel.UUID]struct{}, len(serialIDs))
	for _, id := range serialIDs {
		if err := id.Validate(); err != nil {
			return err
		}
		if _, ok := seen[id]; ok {
			return errs.NewValueIsInvalidError("serial unit " + id.String() + " is listed twice")
		}
		seen[id] = struct{}{}
	}

	return nil
}
