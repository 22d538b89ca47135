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
	"fmt"
)

//--------------------
// ERROR TYPES
//--------------------

// ErrorCode defines the type of error that occurred.
type ErrorCode int

const (
	// ErrNone signals no error.
	ErrNone ErrorCode = iota
	// ErrInvalid signals invalid builder parameters.
	ErrInvalid
	// ErrInit signals that the behavior's Init callback failed.
	ErrInit
	// ErrAbnormal signals that a callback stopped the server with an
	// abnormal reason.
	ErrAbnormal
	// ErrSend signals a send on a handle whose server has terminated.
	ErrSend
	// ErrReceive signals a receive that found the reply channel closed
	// before an answer arrived.
	ErrReceive
	// ErrProtocol signals a violated mailbox or outcome contract.
	ErrProtocol
	// ErrNotImplemented signals the dispatch of a message kind the
	// behavior never implemented a handler for.
	ErrNotImplemented
	// ErrPanic signals that a callback panicked.
	ErrPanic
)

// String implements the Stringer interface.
func (ec ErrorCode) String() string {
	switch ec {
	case ErrNone:
		return "no error"
	case ErrInvalid:
		return "invalid"
	case ErrInit:
		return "init failure"
	case ErrAbnormal:
		return "abnormal shutdown"
	case ErrSend:
		return "send failure"
	case ErrReceive:
		return "receive failure"
	case ErrProtocol:
		return "protocol violation"
	case ErrNotImplemented:
		return "not implemented"
	case ErrPanic:
		return "panic"
	default:
		return "unknown error"
	}
}

// ServerError contains detailed information about a gen-server error.
type ServerError struct {
	Op   string
	Err  error
	Code ErrorCode
}

// Error implements the error interface.
func (e *ServerError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("genserver %s: %v (%v)", e.Op, e.Err, e.Code)
	}
	return fmt.Sprintf("genserver %s: %v", e.Op, e.Code)
}

// Unwrap implements error unwrapping.
func (e *ServerError) Unwrap() error {
	return e.Err
}

// NewError creates a new gen-server error.
func NewError(op string, err error, code ErrorCode) *ServerError {
	return &ServerError{
		Op:   op,
		Err:  err,
		Code: code,
	}
}

// EOF
