package queries

import (
	"errors"

	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

var ErrTrackOrderQueryIsNotConstructed = errors.New(
	"TrackOrderQuery must be created via NewTrackOrderQuery constructor",
)

// TrackOrderQuery retrieves one order by its human-readable order number.
// This is the public tracking lookup: no actor identity is required.
type TrackOrderQuery struct {
	number string

	guard guard.ConstructorGuard
}

// NewTrackOrderQuery creates a tracking query for the given order number.
func NewTrackOrderQuery(number string) (TrackOrderQuery, error) {
	if number == "" {
		return TrackOrderQuery{}, errs.NewValueIsRequiredError("orderNumber")
	}

	return TrackOrderQuery{
		number: number,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q TrackOrderQuery) Validate() error {
	return q.guard.Validate(ErrTrackOrderQueryIsNotConstructed)
}

// Number returns the order number being tracked.
func (q TrackOrderQuery) Number() string {
	return q.number
}
