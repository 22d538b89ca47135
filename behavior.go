// Tideland Go GenServer
//
// Copyright (C) 2019-2025 Frank Mueller / Tideland / Germany
//
// All rights reserved. Use of this source code is governed
// by the new BSD license.

package genserver // import "tideland.dev/go/genserver"

//--------------------
// BEHAVIOR
//--------------------

// Behavior is the contract a user implements to run a generic server.
// T is the message type travelling between caller and server, S the
// state type exclusively owned and mutated by the run loop. All
// callbacks are invoked sequentially by the run loop, never by the
// caller, so they need no synchronization of their own.
//
// Behaviors not interested in all message kinds embed StubBehavior and
// override only the callbacks they need. Note that the stub defaults
// for HandleRequest and HandleNotification terminate the server with
// ErrNotImplemented: a behavior must not receive message kinds it does
// not handle.
type Behavior[T, S any] interface {
	// Init runs once and synchronously inside Builder.Start, before
	// the run loop goroutine exists. It prepares the state and may arm
	// an initial timeout deadline. An error aborts the start, no
	// goroutine is spawned.
	Init(state *S) (Timeout, error)

	// HandleRequest processes a request sent via Server.Request. The
	// blocked caller receives the reply of the returned outcome. The
	// replier allows pushing the reply early, e.g. before returning a
	// replyless StopRequest.
	HandleRequest(msg T, replier *Replier[T], state *S) RequestOutcome[T]

	// HandleNotification processes a fire-and-forget message sent via
	// Server.Notify.
	HandleNotification(msg T, state *S) Outcome[T]

	// HandleSignal processes an out-of-band message sent via
	// Server.Signal. It is dispatched like a notification but kept
	// semantically distinct, e.g. for external events.
	HandleSignal(msg T, state *S) Outcome[T]

	// HandleTimeout runs when an armed timeout deadline has been
	// reached or passed.
	HandleTimeout(state *S) Outcome[T]
}

//--------------------
// STUB BEHAVIOR
//--------------------

// StubBehavior provides the default callbacks of the Behavior
// contract. It is intended to be embedded into own behaviors.
//
// Defaults: Init prepares nothing and arms no timeout; HandleSignal
// and HandleTimeout continue unchanged; HandleRequest and
// HandleNotification report the respective callback as unimplemented,
// terminating the server.
type StubBehavior[T, S any] struct{}

// Init implements the Behavior interface.
func (StubBehavior[T, S]) Init(state *S) (Timeout, error) {
	return NoTimeout, nil
}

// HandleRequest implements the Behavior interface.
func (StubBehavior[T, S]) HandleRequest(msg T, replier *Replier[T], state *S) RequestOutcome[T] {
	return unhandledRequestOutcome[T]()
}

// HandleNotification implements the Behavior interface.
func (StubBehavior[T, S]) HandleNotification(msg T, state *S) Outcome[T] {
	return unhandledOutcome[T]()
}

// HandleSignal implements the Behavior interface.
func (StubBehavior[T, S]) HandleSignal(msg T, state *S) Outcome[T] {
	return Continue[T]()
}

// HandleTimeout implements the Behavior interface.
func (StubBehavior[T, S]) HandleTimeout(state *S) Outcome[T] {
	return Continue[T]()
}

//--------------------
// REPLIER
//--------------------

// Replier is handed to HandleRequest and wraps the endpoint towards
// the caller. It can only emit reply envelopes, so a behavior cannot
// break the mailbox protocol through it.
type Replier[T any] struct {
	replies chan<- envelope[T]
}

// Reply delivers the given message to the caller blocked in
// Server.Request. Usually the reply travels in the returned
// RequestOutcome; replying here directly is only needed when the
// handler answers early and then stops without a final reply.
func (r *Replier[T]) Reply(msg T) {
	r.replies <- envelope[T]{
		kind: kindReply,
		msg:  msg,
	}
}

// EOF
