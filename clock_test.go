// Tideland Go GenServer - Unit Tests
//
// Copyright (C) 2019-2025 Frank Mueller / Tideland / Germany
//
// All rights reserved. Use of this source code is governed
// by the new BSD license.

package genserver_test

//--------------------
// IMPORTS
//--------------------

import (
	"sync"
	"time"
)

//--------------------
// FAKE CLOCK
//--------------------

// fakeClock implements genserver.Clock for deterministic timeout
// tests. Time only moves when the test advances it, pending waiters
// fire once the advanced time reaches them.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

type fakeTimer struct {
	at time.Time
	ch chan time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{
		now: time.Unix(0, 0),
	}
}

// Now implements the Clock interface.
func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// After implements the Clock interface.
func (c *fakeClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	ch := make(chan time.Time, 1)
	c.timers = append(c.timers, &fakeTimer{at: c.now.Add(d), ch: ch})
	return ch
}

// advance moves the clock forward and fires all timers that are due.
func (c *fakeClock) advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	now := c.now
	var due, left []*fakeTimer
	for _, timer := range c.timers {
		if !timer.at.After(now) {
			due = append(due, timer)
		} else {
			left = append(left, timer)
		}
	}
	c.timers = left
	c.mu.Unlock()
	for _, timer := range due {
		timer.ch <- now
	}
}

// waiters returns the number of pending timers.
func (c *fakeClock) waiters() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

// EOF
