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
	"sync"
)

//--------------------
// MAILBOX
//--------------------

// mailbox is the unbounded queue carrying envelopes towards the run
// loop. Enqueueing never blocks, so Notify, Signal, and Request keep
// their send-and-return semantics regardless of how busy the loop is.
// A closed mailbox rejects further envelopes but still hands out the
// already queued ones, so a disconnect never loses accepted messages.
type mailbox[T any] struct {
	mu     sync.Mutex
	queue  []envelope[T]
	closed bool
	wakes  chan struct{}
}

// newMailbox creates a mailbox with the given initial capacity of the
// backing storage.
func newMailbox[T any](capacity int) *mailbox[T] {
	return &mailbox[T]{
		queue: make([]envelope[T], 0, capacity),
		wakes: make(chan struct{}, 1),
	}
}

// enqueue appends an envelope and wakes a possibly waiting dequeuer.
// It reports false once the mailbox is closed.
func (mb *mailbox[T]) enqueue(env envelope[T]) bool {
	mb.mu.Lock()
	if mb.closed {
		mb.mu.Unlock()
		return false
	}
	mb.queue = append(mb.queue, env)
	mb.mu.Unlock()
	select {
	case mb.wakes <- struct{}{}:
	default:
	}
	return true
}

// dequeue pops the oldest envelope. ok reports whether an envelope
// was there, open whether the caller may expect more, i.e. the
// mailbox is not yet both closed and drained.
func (mb *mailbox[T]) dequeue() (env envelope[T], ok bool, open bool) {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	if len(mb.queue) == 0 {
		return env, false, !mb.closed
	}
	env = mb.queue[0]
	var zero envelope[T]
	mb.queue[0] = zero
	mb.queue = mb.queue[1:]
	if len(mb.queue) == 0 {
		mb.queue = nil
	}
	return env, true, true
}

// wake returns the channel signalling new envelopes to a dequeuer
// that found the mailbox empty. The signal is a token, a woken
// dequeuer simply retries.
func (mb *mailbox[T]) wake() <-chan struct{} {
	return mb.wakes
}

// close rejects all future envelopes. It is idempotent and wakes a
// possibly waiting dequeuer so it can observe the disconnect.
func (mb *mailbox[T]) close() {
	mb.mu.Lock()
	mb.closed = true
	mb.mu.Unlock()
	select {
	case mb.wakes <- struct{}{}:
	default:
	}
}

// EOF
