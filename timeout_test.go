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
	"testing"
	"time"

	"tideland.dev/go/asserts/verify"

	"tideland.dev/go/genserver"
)

//--------------------
// TESTS
//--------------------

// TestInitialTimeout verifies an initial deadline armed by Init
// firing once elapsed and the timeout handler stopping the server.
func TestInitialTimeout(t *testing.T) {
	begin := time.Now()
	srv, err := genserver.NewBuilder[timeoutMessage, timeoutState](stopOnTimeoutBehavior{initial: 50 * time.Millisecond}).
		Name("initial-timeout").
		Start(timeoutState{})
	verify.NoError(t, err)

	verify.NoError(t, srv.Wait())
	verify.True(t, time.Since(begin) >= 50*time.Millisecond)
	verify.ErrorMatch(t, srv.Notify(timeoutMessage{op: "noop"}), ".*send failure.*")
}

// TestBusyTimeout verifies that a zero re-arm keeps the timeout
// handler firing without any external message.
func TestBusyTimeout(t *testing.T) {
	counts := make(chan int, 1)
	srv, err := genserver.NewBuilder[timeoutMessage, timeoutState](busyTimeoutBehavior{counts: counts}).
		Start(timeoutState{})
	verify.NoError(t, err)

	verify.NoError(t, srv.Wait())
	verify.Equal(t, <-counts, 100)
}

// TestFakeClockDeadline verifies the deadline scheduling against a
// virtual clock: no firing before the deadline, firing once reached.
func TestFakeClockDeadline(t *testing.T) {
	clock := newFakeClock()
	probe := make(chan struct{})
	srv, err := genserver.NewBuilder[timeoutMessage, timeoutState](probeTimeoutBehavior{probe: probe}).
		Clock(clock).
		Start(timeoutState{})
	verify.NoError(t, err)

	// Wait until the loop blocks on the armed deadline.
	for clock.waiters() == 0 {
		time.Sleep(time.Millisecond)
	}

	// One millisecond before the deadline nothing fires.
	clock.advance(99 * time.Millisecond)
	select {
	case <-probe:
		t.Fatal("timeout fired before deadline")
	case <-time.After(50 * time.Millisecond):
	}

	// Passing the deadline fires.
	clock.advance(2 * time.Millisecond)
	select {
	case <-probe:
	case <-time.After(time.Second):
		t.Fatal("timeout did not fire after deadline")
	}

	verify.NoError(t, srv.Wait())
}

// TestRearmTimeout verifies arming a deadline from a notification
// handler and that a plain continue leaves it untouched.
func TestRearmTimeout(t *testing.T) {
	srv, err := genserver.NewBuilder[timeoutMessage, timeoutState](rearmBehavior{}).
		Start(timeoutState{})
	verify.NoError(t, err)

	verify.NoError(t, srv.Notify(timeoutMessage{op: "arm"}))
	verify.NoError(t, srv.Notify(timeoutMessage{op: "noop"}))

	verify.ErrorMatch(t, srv.Wait(), ".*timed out.*abnormal shutdown.*")
}

// TestReplyTimeout verifies arming a deadline together with a reply.
func TestReplyTimeout(t *testing.T) {
	srv, err := genserver.NewBuilder[timeoutMessage, timeoutState](replyTimeoutBehavior{}).
		Start(timeoutState{})
	verify.NoError(t, err)

	reply, err := srv.Request(timeoutMessage{op: "echo", value: 3})
	verify.NoError(t, err)
	verify.Equal(t, reply.value, 3)

	verify.NoError(t, srv.Wait())
}

//--------------------
// TEST BEHAVIORS
//--------------------

// timeoutMessage and timeoutState belong to the deadline-driven test
// behaviors.
type timeoutMessage struct {
	op    string
	value int
}

type timeoutState struct {
	fired int
}

// stopOnTimeoutBehavior arms an initial deadline and stops on its
// first firing.
type stopOnTimeoutBehavior struct {
	genserver.StubBehavior[timeoutMessage, timeoutState]

	initial time.Duration
}

func (b stopOnTimeoutBehavior) Init(state *timeoutState) (genserver.Timeout, error) {
	return genserver.TimeoutAfter(b.initial), nil
}

func (b stopOnTimeoutBehavior) HandleTimeout(state *timeoutState) genserver.Outcome[timeoutMessage] {
	return genserver.Stop[timeoutMessage](genserver.ReasonNormal)
}

// busyTimeoutBehavior re-arms a zero deadline a hundred times and
// reports the count before stopping.
type busyTimeoutBehavior struct {
	genserver.StubBehavior[timeoutMessage, timeoutState]

	counts chan int
}

func (b busyTimeoutBehavior) Init(state *timeoutState) (genserver.Timeout, error) {
	return genserver.TimeoutAfter(0), nil
}

func (b busyTimeoutBehavior) HandleTimeout(state *timeoutState) genserver.Outcome[timeoutMessage] {
	state.fired++
	if state.fired == 100 {
		b.counts <- state.fired
		return genserver.Stop[timeoutMessage](genserver.ReasonNormal)
	}
	return genserver.ContinueTimeout[timeoutMessage](0)
}

// probeTimeoutBehavior reports the firing of its initial deadline on
// a probe channel and stops.
type probeTimeoutBehavior struct {
	genserver.StubBehavior[timeoutMessage, timeoutState]

	probe chan struct{}
}

func (b probeTimeoutBehavior) Init(state *timeoutState) (genserver.Timeout, error) {
	return genserver.TimeoutAfter(100 * time.Millisecond), nil
}

func (b probeTimeoutBehavior) HandleTimeout(state *timeoutState) genserver.Outcome[timeoutMessage] {
	close(b.probe)
	return genserver.Stop[timeoutMessage](genserver.ReasonNormal)
}

// rearmBehavior arms a deadline on demand and stops abnormally once
// it fires.
type rearmBehavior struct {
	genserver.StubBehavior[timeoutMessage, timeoutState]
}

func (rearmBehavior) HandleNotification(msg timeoutMessage, state *timeoutState) genserver.Outcome[timeoutMessage] {
	if msg.op == "arm" {
		return genserver.ContinueTimeout[timeoutMessage](30 * time.Millisecond)
	}
	return genserver.Continue[timeoutMessage]()
}

func (rearmBehavior) HandleTimeout(state *timeoutState) genserver.Outcome[timeoutMessage] {
	return genserver.Stop[timeoutMessage](genserver.ReasonOther("timed out"))
}

// replyTimeoutBehavior echoes requests while arming a deadline and
// stops once it fires.
type replyTimeoutBehavior struct {
	genserver.StubBehavior[timeoutMessage, timeoutState]
}

func (replyTimeoutBehavior) HandleRequest(
	msg timeoutMessage,
	replier *genserver.Replier[timeoutMessage],
	state *timeoutState) genserver.RequestOutcome[timeoutMessage] {
	return genserver.ReplyTimeout(timeoutMessage{op: msg.op, value: msg.value}, 20*time.Millisecond)
}

func (replyTimeoutBehavior) HandleTimeout(state *timeoutState) genserver.Outcome[timeoutMessage] {
	return genserver.Stop[timeoutMessage](genserver.ReasonNormal)
}

// EOF
