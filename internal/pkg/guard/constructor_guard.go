// Package guard provides a defensive pattern that ensures value objects and
// entities are only created through their designated constructor functions.
package guard

import "errors"

// ErrDefaultConstructorGuard is the default error returned by ConstructorGuard.Validate()
// when a nil error is passed as the validation error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard detects whether a struct was properly initialized through its
// constructor or created as a zero value. Embed it in commands, queries, and value
// objects whose invariants are established at construction time.
//
// Example usage:
//
//	type TrackOrderQuery struct {
//	    orderNumber string
//	    guard       guard.ConstructorGuard
//	}
//
//	func NewTrackOrderQuery(orderNumber string) (TrackOrderQuery, error) {
//	    if orderNumber == "" {
//	        return TrackOrderQuery{}, errs.NewValueIsRequiredError("orderNumber")
//	    }
//	    return TrackOrderQuery{orderNumber: orderNumber, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (q TrackOrderQuery) Validate() error {
//	    return q.guard.Validate(ErrTrackOrderQueryIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a ConstructorGuard that marks an object as
// properly constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil when the guarded object was built through its constructor.
// Zero-value guards fail with validationError, or ErrDefaultConstructorGuard when
// validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
