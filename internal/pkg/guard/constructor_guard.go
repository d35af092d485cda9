// Package guard detects zero-value commands, queries and entities that bypassed
// their constructors.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in value objects that must be built through a
// constructor. Its zero value fails validation.
//
// Example:
//
//	type TransitionOrderStatusCommand struct {
//	    orderID order.ID
//	    guard   guard.ConstructorGuard
//	}
//
//	func (c TransitionOrderStatusCommand) Validate() error {
//	    return c.guard.Validate(ErrTransitionOrderStatusCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when nil)
// if the guard is a zero value.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
