package order

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// numberPrefix is the human-readable marker on every order number.
const numberPrefix = "ORD"

// NewNumber generates a human-readable order number of the form
// ORD-<unix milliseconds>-<4 random digits>.
//
// The timestamp component makes collisions between different moments
// impossible and the random suffix makes them negligible within the same
// millisecond. A collision still surfaces as a unique-constraint violation on
// insert and is retried with a fresh number, so uniqueness never depends on a
// shared counter.
func NewNumber(now time.Time) string {
	return fmt.Sprintf("%s-%d-%04d", numberPrefix, now.UnixMilli(), 1000+rand.IntN(9000))
}
