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
// OUTCOME KINDS
//--------------------

// outcomeKind tags the variants of the outcome types. The zero value
// is deliberately invalid so that an accidentally returned zero-value
// outcome is detected as a protocol violation instead of silently
// continuing.
type outcomeKind int

const (
	outcomeContinue outcomeKind = iota + 1
	outcomeReply
	outcomeStop
	outcomeUnhandled
)

//--------------------
// OUTCOME
//--------------------

// Outcome is the result of HandleNotification, HandleSignal, and
// HandleTimeout. It is created with Continue, ContinueTimeout, Stop,
// or StopWithReply; replying is not expressible here, so a handler
// cannot answer where no caller is waiting.
type Outcome[T any] struct {
	kind     outcomeKind
	timeout  Timeout
	reason   StopReason
	reply    T
	hasReply bool
}

// Continue lets the server keep running and leaves the timeout
// deadline untouched.
func Continue[T any]() Outcome[T] {
	return Outcome[T]{
		kind: outcomeContinue,
	}
}

// ContinueTimeout lets the server keep running and arms the timeout
// deadline at now plus the given duration. A duration of zero makes
// HandleTimeout fire again on the next iteration without waiting for
// any message, usable for run-as-fast-as-possible background work.
func ContinueTimeout[T any](after time.Duration) Outcome[T] {
	return Outcome[T]{
		kind:    outcomeContinue,
		timeout: TimeoutAfter(after),
	}
}

// Stop terminates the server with the given reason.
func Stop[T any](reason StopReason) Outcome[T] {
	return Outcome[T]{
		kind:   outcomeStop,
		reason: reason,
	}
}

// StopWithReply terminates the server with the given reason after a
// best-effort delivery of a final reply to the caller side.
func StopWithReply[T any](reason StopReason, reply T) Outcome[T] {
	return Outcome[T]{
		kind:     outcomeStop,
		reason:   reason,
		reply:    reply,
		hasReply: true,
	}
}

// unhandledOutcome marks a callback the behavior never implemented.
// Only the stub defaults produce it.
func unhandledOutcome[T any]() Outcome[T] {
	return Outcome[T]{
		kind: outcomeUnhandled,
	}
}

//--------------------
// REQUEST OUTCOME
//--------------------

// RequestOutcome is the result of HandleRequest. It is created with
// Reply, ReplyTimeout, StopRequest, or StopRequestWithReply; a plain
// continue is not expressible here, so a request can never be left
// dangling without an answer or a termination.
type RequestOutcome[T any] struct {
	kind     outcomeKind
	timeout  Timeout
	reason   StopReason
	reply    T
	hasReply bool
}

// Reply answers the pending request with the given message and leaves
// the timeout deadline untouched.
func Reply[T any](msg T) RequestOutcome[T] {
	return RequestOutcome[T]{
		kind:     outcomeReply,
		reply:    msg,
		hasReply: true,
	}
}

// ReplyTimeout answers the pending request with the given message and
// arms the timeout deadline at now plus the given duration.
func ReplyTimeout[T any](msg T, after time.Duration) RequestOutcome[T] {
	return RequestOutcome[T]{
		kind:     outcomeReply,
		timeout:  TimeoutAfter(after),
		reply:    msg,
		hasReply: true,
	}
}

// StopRequest terminates the server with the given reason without
// answering the request. The blocked caller observes a receive
// failure.
func StopRequest[T any](reason StopReason) RequestOutcome[T] {
	return RequestOutcome[T]{
		kind:   outcomeStop,
		reason: reason,
	}
}

// StopRequestWithReply answers the pending request with a final reply
// and then terminates the server with the given reason.
func StopRequestWithReply[T any](reason StopReason, reply T) RequestOutcome[T] {
	return RequestOutcome[T]{
		kind:     outcomeStop,
		reason:   reason,
		reply:    reply,
		hasReply: true,
	}
}

// unhandledRequestOutcome marks a request callback the behavior never
// implemented. Only the stub defaults produce it.
func unhandledRequestOutcome[T any]() RequestOutcome[T] {
	return RequestOutcome[T]{
		kind: outcomeUnhandled,
	}
}

// EOF
