// Package guard provides the constructor-guard pattern used by commands,
// queries and value objects to detect zero-value instances that bypassed
// their designated constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific
// validation error is supplied and the guarded object was not constructed.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as created through its constructor.
// Embedding a ConstructorGuard in a struct makes zero-value instances
// detectable: the guard of a zero value fails Validate, while a guard
// obtained from NewConstructorGuard passes.
//
// Example:
//
//	type AssignSerialsCommand struct {
//	    // ...
//	    guard guard.ConstructorGuard
//	}
//
//	func NewAssignSerialsCommand(...) (AssignSerialsCommand, error) {
//	    return AssignSerialsCommand{guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (c AssignSerialsCommand) Validate() error {
//	    return c.guard.Validate(ErrAssignSerialsCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard marking the owning object as
// properly constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil if the guarded object was created through its
// constructor. Otherwise it returns validationError, or
// ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
