// Tideland Go GenServer
//
// Copyright (C) 2019-2025 Frank Mueller / Tideland / Germany
//
// All rights reserved. Use of this source code is governed
// by the new BSD license.

/*
Package genserver provides a generic behavior-driven server in the manner of
Erlang/OTP's gen_server. A user implements a set of message-handling callbacks
together with an owned mutable state; the package runs one goroutine per server
instance that sequentially processes requests, fire-and-forget notifications,
out-of-band signals, and timeout deadlines. Since the state is owned by that
one goroutine and reached only through serialized message passing, concurrent
access becomes impossible by design.

# Behavior and Outcomes

A behavior implements the Behavior interface, usually by embedding StubBehavior
and overriding only the needed callbacks. Each callback returns an outcome that
tells the run loop how to proceed. The outcome types are specific per callback
kind: HandleRequest returns a RequestOutcome, which can only reply or stop, the
other callbacks return an Outcome, which can only continue or stop. So a wrong
combination, like replying to a timeout, is not even expressible.

	type counterState struct {
		value int
	}

	type counterMessage struct {
		op    string
		value int
	}

	type counterBehavior struct {
		genserver.StubBehavior[counterMessage, counterState]
	}

	func (counterBehavior) Init(state *counterState) (genserver.Timeout, error) {
		state.value = 0
		return genserver.NoTimeout, nil
	}

	func (counterBehavior) HandleNotification(
		msg counterMessage,
		state *counterState) genserver.Outcome[counterMessage] {
		switch msg.op {
		case "add":
			state.value += msg.value
			return genserver.Continue[counterMessage]()
		case "quit":
			return genserver.Stop[counterMessage](genserver.ReasonNormal)
		}
		return genserver.Stop[counterMessage](genserver.ReasonOther("unknown op " + msg.op))
	}

	func (counterBehavior) HandleRequest(
		msg counterMessage,
		replier *genserver.Replier[counterMessage],
		state *counterState) genserver.RequestOutcome[counterMessage] {
		return genserver.Reply(counterMessage{op: "value", value: state.value})
	}

# Starting and Talking

The Builder binds a behavior, runs its Init synchronously, and spawns the run
loop. It returns an opaque handle exposing the blocking Request, the
non-blocking Notify and Signal, and the join token of the loop goroutine.

	srv, err := genserver.NewBuilder[counterMessage, counterState](counterBehavior{}).
		Name("counter").
		Start(counterState{})
	if err != nil {
		log.Fatal(err)
	}

	srv.Notify(counterMessage{op: "add", value: 5})
	reply, err := srv.Request(counterMessage{op: "value"})

	srv.Stop()
	if err := srv.Wait(); err != nil {
		log.Printf("counter terminated abnormally: %v", err)
	}

Messages sent by one caller are processed in send order. A handle supports one
in-flight request at a time; concurrent requesters have to serialize
externally.

# Timeouts

Init and the continue/reply outcomes may arm a timeout deadline. Once the
deadline has been reached or passed the run loop invokes HandleTimeout. A
deadline of zero re-arms immediately, so HandleTimeout keeps firing without
waiting for any message, usable for run-as-fast-as-possible background work.
An armed deadline can be replaced by a later outcome but not cleared.

Deadlines are computed against an injectable Clock, so tests can drive them
with a virtual clock instead of sleeping.

# Termination

A server terminates when a callback returns a stop outcome or when the handle
is stopped. The terminal status is observable only through the join token:
Done, Err, and Wait. A stop with ReasonOther surfaces as an ErrAbnormal error
carrying the diagnostic description; violated contracts, unimplemented
callbacks, and callback panics terminate the loop the same way with
ErrProtocol, ErrNotImplemented, and ErrPanic. Once the server has terminated,
Notify and Signal fail with ErrSend and Request with ErrReceive.
*/

package genserver // import "tideland.dev/go/genserver"

// EOF
