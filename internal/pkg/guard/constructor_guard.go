// Package guard implements the constructor-guard pattern used by domain
// objects and commands to reject zero-value instances that bypassed their
// constructor. A guard created via NewConstructorGuard validates cleanly;
// the zero value fails validation with the caller-supplied error.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the guard is a
// zero value and the caller did not supply a specific error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as properly constructed.
// Embed one as a private field and set it with NewConstructorGuard inside
// the constructor; Validate then distinguishes constructed instances from
// zero values.
type ConstructorGuard struct {
	constructed bool
}

// NewConstructorGuard returns a guard marking its holder as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{constructed: true}
}

// Validate returns nil for a constructed guard. For a zero-value guard it
// returns notConstructed, or ErrDefaultConstructorGuard when notConstructed
// is nil.
func (g ConstructorGuard) Validate(notConstructed error) error {
	if g.constructed {
		return nil
	}
	if notConstructed != nil {
		return notConstructed
	}
	return ErrDefaultConstructorGuard
}
