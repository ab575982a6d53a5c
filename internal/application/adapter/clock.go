package adapter

import "time"

// Clock abstracts the current time so recurrence scheduling is deterministic
// in tests.
type Clock interface {
	// Now returns the current time in UTC.
	Now() time.Time
}
