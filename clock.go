// Tideland Go GenServer
//
// Copyright (C) 2019-2025 Frank Mueller / Tideland / Germany
//
// All rights reserved. Use of this source code is governed
// by the new BSD license.

package genserver // import "tideland.dev/go/genserver"

//--------------------
// IMPORTS
//--------------------

import (
	"time"
)

//--------------------
// CLOCK
//--------------------

// Clock is the time source the run loop computes and compares timeout
// deadlines with. It is injectable via the Builder so that tests can
// drive deadlines with a virtual clock instead of waiting on the wall
// clock.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// After returns a channel delivering the current time once the
	// given duration has elapsed.
	After(d time.Duration) <-chan time.Time
}

// systemClock implements Clock on top of the runtime clock. Go's
// time.Time carries a monotonic reading, so deadline comparisons are
// immune to wall-clock adjustments.
type systemClock struct{}

// SystemClock returns the default Clock based on the runtime clock.
func SystemClock() Clock {
	return systemClock{}
}

// Now implements the Clock interface.
func (systemClock) Now() time.Time {
	return time.Now()
}

// After implements the Clock interface.
func (systemClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}

// EOF
