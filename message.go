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
// TIMEOUT
//--------------------

// Timeout expresses an optional relative deadline for the invocation
// of HandleTimeout. The zero value NoTimeout arms nothing and leaves
// an already armed deadline untouched.
type Timeout struct {
	armed bool
	after time.Duration
}

// NoTimeout is the unarmed Timeout.
var NoTimeout = Timeout{}

// TimeoutAfter returns a Timeout arming the deadline at now plus the
// given duration. A duration of zero re-arms the deadline immediately,
// so that HandleTimeout fires again on the very next loop iteration.
func TimeoutAfter(after time.Duration) Timeout {
	if after < 0 {
		after = 0
	}
	return Timeout{
		armed: true,
		after: after,
	}
}

//--------------------
// STOP REASON
//--------------------

// StopReason describes why a behavior terminates its server. The zero
// value ReasonNormal signals a graceful termination, a reason created
// with ReasonOther signals an abnormal one carrying a diagnostic
// description.
type StopReason struct {
	abnormal    bool
	description string
}

// ReasonNormal signals a graceful termination.
var ReasonNormal = StopReason{}

// ReasonOther creates an abnormal stop reason with a diagnostic
// description. The description surfaces in the terminal error of the
// server, observable via Err() or Wait().
func ReasonOther(description string) StopReason {
	return StopReason{
		abnormal:    true,
		description: description,
	}
}

// String implements the Stringer interface.
func (sr StopReason) String() string {
	if sr.abnormal {
		return "other: " + sr.description
	}
	return "normal"
}

//--------------------
// ENVELOPE
//--------------------

// envelopeKind tags the payloads flowing between caller and server.
type envelopeKind int

const (
	kindRequest envelopeKind = iota + 1
	kindNotification
	kindSignal
	kindReply
)

// String implements the Stringer interface.
func (ek envelopeKind) String() string {
	switch ek {
	case kindRequest:
		return "request"
	case kindNotification:
		return "notification"
	case kindSignal:
		return "signal"
	case kindReply:
		return "reply"
	default:
		return "invalid"
	}
}

// envelope is the tagged union travelling on the two channels between
// caller and server. Request, Notification, and Signal envelopes flow
// only towards the loop, Reply envelopes only towards the caller. The
// kinds are produced exclusively by Server and loop, never by user
// code, which keeps the protocol invariants structural.
type envelope[T any] struct {
	kind envelopeKind
	msg  T
}

// EOF
