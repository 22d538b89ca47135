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
	"errors"
	"fmt"
	"log/slog"
)

//--------------------
// CONSTANTS
//--------------------

const (
	// defaultName is the diagnostic identifier of unnamed servers.
	defaultName = "genserver"

	// defaultQueueCap is the default initial capacity of the
	// mailbox storage.
	defaultQueueCap = 256
)

//--------------------
// BUILDER
//--------------------

// Builder binds a behavior and configures a server before starting
// it. The setters validate their arguments and accumulate errors, a
// final Start reports them collected. So the fluent chain needs no
// error checking in between.
type Builder[T, S any] struct {
	behavior  Behavior[T, S]
	name      string
	clock     Clock
	queueCap  int
	logger    *slog.Logger
	finalizer Finalizer
	err       error
}

// NewBuilder creates a Builder for the given behavior.
func NewBuilder[T, S any](behavior Behavior[T, S]) *Builder[T, S] {
	b := &Builder[T, S]{
		behavior: behavior,
		name:     defaultName,
		clock:    SystemClock(),
		queueCap: defaultQueueCap,
		logger:   slog.New(slog.DiscardHandler),
	}
	if behavior == nil {
		b.wrapError(fmt.Errorf("behavior cannot be nil"))
	}
	return b
}

// Name sets the diagnostic identifier of the server. It has no
// behavioral effect and only shows up in logging and Server.Name.
func (b *Builder[T, S]) Name(name string) *Builder[T, S] {
	if name == "" {
		b.wrapError(fmt.Errorf("name cannot be empty"))
		return b
	}
	b.name = name
	return b
}

// Clock sets the time source for timeout deadlines, e.g. a virtual
// clock in tests. Default is the system clock.
func (b *Builder[T, S]) Clock(clock Clock) *Builder[T, S] {
	if clock == nil {
		b.wrapError(fmt.Errorf("clock cannot be nil"))
		return b
	}
	b.clock = clock
	return b
}

// QueueCap sets the initial capacity of the mailbox storage. The
// mailbox itself is unbounded and grows on demand, so sends never
// block; the capacity only pre-allocates. Must be positive.
func (b *Builder[T, S]) QueueCap(cap int) *Builder[T, S] {
	if cap < 1 {
		b.wrapError(fmt.Errorf("queue capacity must be positive: %d", cap))
		return b
	}
	b.queueCap = cap
	return b
}

// Logger sets the structured logger of the server. Default is a
// discarding logger, so the package stays silent unless configured.
func (b *Builder[T, S]) Logger(logger *slog.Logger) *Builder[T, S] {
	if logger == nil {
		b.wrapError(fmt.Errorf("logger cannot be nil"))
		return b
	}
	b.logger = logger
	return b
}

// Finalizer sets a function called with the terminal error when the
// server stops. Its return value replaces the terminal error.
func (b *Builder[T, S]) Finalizer(finalizer Finalizer) *Builder[T, S] {
	if finalizer == nil {
		b.wrapError(fmt.Errorf("finalizer cannot be nil"))
		return b
	}
	b.finalizer = finalizer
	return b
}

// Start runs the behavior's Init synchronously and, on success,
// spawns the run loop owning the behavior and the state. It returns
// the handle of the running server. On an Init error no goroutine is
// created and the error is returned directly.
func (b *Builder[T, S]) Start(state S) (*Server[T], error) {
	if b.err != nil {
		return nil, NewError("Start", b.err, ErrInvalid)
	}
	initial, err := b.behavior.Init(&state)
	if err != nil {
		return nil, NewError("Init", err, ErrInit)
	}
	srv := &Server[T]{
		name:      b.name,
		mailbox:   newMailbox[T](b.queueCap),
		replies:   make(chan envelope[T], 1),
		done:      make(chan struct{}),
		finalizer: b.finalizer,
	}
	l := &loop[T, S]{
		behavior: b.behavior,
		state:    &state,
		server:   srv,
		replier:  &Replier[T]{replies: srv.replies},
		clock:    b.clock,
		logger:   b.logger,
	}
	go l.run(initial)
	return srv, nil
}

// wrapError adds an error to the accumulated errors.
func (b *Builder[T, S]) wrapError(err error) {
	if b.err == nil {
		b.err = err
	} else {
		b.err = errors.Join(b.err, err)
	}
}

// EOF
