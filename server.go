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
	"sync"
)

//--------------------
// HELPER
//--------------------

// Finalizer is called with the terminal error status when the server
// stops. Its return value replaces the terminal error.
type Finalizer func(err error) error

// errTerminated is the detail error of sends and receives on a handle
// whose server has already terminated.
var errTerminated = errors.New("server has terminated")

//--------------------
// SERVER
//--------------------

// Server is the caller-facing handle of one running gen-server. It
// hides the channel endpoints towards the run loop and exposes the
// blocking request, the non-blocking notification and signal sends,
// and the join token for terminal-status inspection.
//
// A handle supports one in-flight request at a time. Callers wanting
// to issue requests from multiple goroutines concurrently have to
// serialize them externally.
type Server[T any] struct {
	mu        sync.Mutex
	name      string
	mailbox   *mailbox[T]
	replies   chan envelope[T]
	done      chan struct{}
	finalizer Finalizer
	err       error
}

// Name returns the diagnostic identifier given to the Builder.
func (srv *Server[T]) Name() string {
	return srv.name
}

// Notify sends a fire-and-forget message to the server. The mailbox
// is unbounded, so Notify never blocks; it fails only if the server
// has already terminated or the handle has been stopped.
func (srv *Server[T]) Notify(msg T) error {
	return srv.send("Notify", envelope[T]{kind: kindNotification, msg: msg})
}

// Signal sends an out-of-band message to the server. It behaves like
// Notify but is dispatched to HandleSignal, keeping external events
// apart from caller-initiated notifications.
func (srv *Server[T]) Signal(msg T) error {
	return srv.send("Signal", envelope[T]{kind: kindSignal, msg: msg})
}

// Request sends a request to the server and blocks until the reply
// arrives. It returns the payload produced by the matching
// HandleRequest invocation. If the server terminates before replying,
// Request fails with an ErrReceive error.
func (srv *Server[T]) Request(msg T) (T, error) {
	var none T
	if err := srv.send("Request", envelope[T]{kind: kindRequest, msg: msg}); err != nil {
		return none, err
	}
	env, ok := <-srv.replies
	if !ok {
		return none, NewError("Request", errTerminated, ErrReceive)
	}
	if env.kind != kindReply {
		// Unreachable while the loop honors the mailbox protocol.
		return none, NewError("Request", errors.New("unexpected "+env.kind.String()+" envelope"), ErrProtocol)
	}
	return env.msg, nil
}

// Stop disconnects the handle from the server. The run loop drains
// the remaining mailbox content and then terminates as ordinary
// shutdown without error. Stop is idempotent and does not wait for
// the termination; combine it with Wait when needed.
func (srv *Server[T]) Stop() {
	srv.mailbox.close()
}

// Done returns a channel that is closed once the run loop has
// terminated.
func (srv *Server[T]) Done() <-chan struct{} {
	return srv.done
}

// Err returns the terminal error of the server, nil while it is still
// running or after a graceful termination. Only here the caller can
// distinguish a normal stop from an abnormal one or a violated
// contract.
func (srv *Server[T]) Err() error {
	srv.mu.Lock()
	defer srv.mu.Unlock()
	return srv.err
}

// Wait blocks until the run loop has terminated and returns its
// terminal error.
func (srv *Server[T]) Wait() error {
	<-srv.done
	return srv.Err()
}

// send transfers an envelope into the mailbox without blocking. It
// fails once the handle is stopped or the run loop has terminated.
func (srv *Server[T]) send(op string, env envelope[T]) error {
	if !srv.mailbox.enqueue(env) {
		return NewError(op, errTerminated, ErrSend)
	}
	return nil
}

// terminate closes the mailbox against future sends, stores the
// terminal error after passing it through a possible finalizer, then
// closes the reply channel and the done channel. It is called exactly
// once by the run loop.
func (srv *Server[T]) terminate(err error) {
	srv.mailbox.close()
	srv.mu.Lock()
	if srv.finalizer != nil {
		err = srv.finalizer(err)
	}
	srv.err = err
	srv.mu.Unlock()
	close(srv.replies)
	close(srv.done)
}

// EOF
