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
	"time"
)

//--------------------
// LOOP
//--------------------

// loop is the per-server execution context. It exclusively owns the
// behavior, the state, and the timeout deadline, and it is the only
// reader of the mailbox as well as the only writer of the reply
// channel.
type loop[T, S any] struct {
	behavior Behavior[T, S]
	state    *S
	server   *Server[T]
	replier  *Replier[T]
	clock    Clock
	logger   *slog.Logger
	deadline time.Time
	armed    bool
}

// run processes mailbox envelopes and timeout deadlines until a stop
// outcome, a disconnected mailbox, or a violated contract terminates
// it. It runs as the one goroutine of the server.
func (l *loop[T, S]) run(initial Timeout) {
	var err error
	defer func() {
		if reason := recover(); reason != nil {
			err = NewError("Run", fmt.Errorf("callback panic: %v", reason), ErrPanic)
		}
		l.server.terminate(err)
		l.logger.Debug("genserver stopped", "name", l.server.name, "error", err)
	}()
	l.logger.Debug("genserver started", "name", l.server.name)
	l.applyTimeout(initial)
	for {
		goon, lerr := l.iterate()
		if lerr != nil {
			err = lerr
			return
		}
		if !goon {
			return
		}
	}
}

// iterate performs one scheduling step. An elapsed deadline is
// serviced before the mailbox is looked at, so a zero re-arm from
// HandleTimeout keeps firing without consuming messages. Otherwise
// the loop blocks on the mailbox, bounded by the time remaining to
// an armed deadline.
func (l *loop[T, S]) iterate() (bool, error) {
	if l.armed {
		remaining := l.deadline.Sub(l.clock.Now())
		if remaining <= 0 {
			return l.applyOutcome("HandleTimeout", l.behavior.HandleTimeout(l.state))
		}
		env, ok, open := l.server.mailbox.dequeue()
		if ok {
			return l.dispatch(env)
		}
		if !open {
			return false, nil
		}
		select {
		case <-l.server.mailbox.wake():
			return true, nil
		case <-l.clock.After(remaining):
			return l.applyOutcome("HandleTimeout", l.behavior.HandleTimeout(l.state))
		}
	}
	env, ok, open := l.server.mailbox.dequeue()
	if ok {
		return l.dispatch(env)
	}
	if !open {
		return false, nil
	}
	<-l.server.mailbox.wake()
	return true, nil
}

// dispatch routes one envelope to the matching behavior callback and
// interprets its outcome.
func (l *loop[T, S]) dispatch(env envelope[T]) (bool, error) {
	switch env.kind {
	case kindRequest:
		outcome := l.behavior.HandleRequest(env.msg, l.replier, l.state)
		switch outcome.kind {
		case outcomeReply:
			l.server.replies <- envelope[T]{kind: kindReply, msg: outcome.reply}
			l.applyTimeout(outcome.timeout)
			return true, nil
		case outcomeStop:
			return false, l.shutdown(outcome.reason, outcome.reply, outcome.hasReply)
		case outcomeUnhandled:
			return false, l.unimplemented("HandleRequest")
		default:
			return false, l.violation("HandleRequest", "zero request outcome")
		}
	case kindNotification:
		return l.applyOutcome("HandleNotification", l.behavior.HandleNotification(env.msg, l.state))
	case kindSignal:
		return l.applyOutcome("HandleSignal", l.behavior.HandleSignal(env.msg, l.state))
	default:
		// Reply envelopes never travel towards the server.
		return false, l.violation("Dispatch", env.kind.String()+" envelope on server mailbox")
	}
}

// applyOutcome interprets the outcome of a replyless callback.
func (l *loop[T, S]) applyOutcome(op string, outcome Outcome[T]) (bool, error) {
	switch outcome.kind {
	case outcomeContinue:
		l.applyTimeout(outcome.timeout)
		return true, nil
	case outcomeStop:
		return false, l.shutdown(outcome.reason, outcome.reply, outcome.hasReply)
	case outcomeUnhandled:
		return false, l.unimplemented(op)
	default:
		return false, l.violation(op, "zero outcome")
	}
}

// applyTimeout re-arms the deadline if the given Timeout is armed and
// leaves the deadline state untouched otherwise. Once armed a
// deadline can only be replaced, not cleared.
func (l *loop[T, S]) applyTimeout(t Timeout) {
	if !t.armed {
		return
	}
	l.deadline = l.clock.Now().Add(t.after)
	l.armed = true
}

// shutdown performs the stop sequence: a best-effort delivery of a
// possible final reply, then the translation of the stop reason into
// the terminal error.
func (l *loop[T, S]) shutdown(reason StopReason, reply T, hasReply bool) error {
	if hasReply {
		select {
		case l.server.replies <- envelope[T]{kind: kindReply, msg: reply}:
		default:
		}
	}
	if reason.abnormal {
		return NewError("Stop", errors.New(reason.description), ErrAbnormal)
	}
	return nil
}

// unimplemented terminates the loop for a message kind the behavior
// provides no handler for.
func (l *loop[T, S]) unimplemented(op string) error {
	l.logger.Warn("genserver callback not implemented", "name", l.server.name, "callback", op)
	return NewError(op, errors.New("callback not implemented"), ErrNotImplemented)
}

// violation terminates the loop for a broken mailbox or outcome
// contract.
func (l *loop[T, S]) violation(op, detail string) error {
	l.logger.Warn("genserver protocol violation", "name", l.server.name, "detail", detail)
	return NewError(op, errors.New(detail), ErrProtocol)
}

// EOF
