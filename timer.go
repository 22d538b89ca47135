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
	"context"
	"fmt"
	"time"
)

//--------------------
// TIMER
//--------------------

// SendEveryWithContext delivers the given message as notification in
// the given interval. It runs until the context is canceled, the
// returned stopper function is called, or the server is stopped.
func (srv *Server[T]) SendEveryWithContext(
	ctx context.Context,
	interval time.Duration,
	msg T) (func(), error) {
	if interval <= 0 {
		return nil, NewError("SendEvery", fmt.Errorf("interval must be positive: %v", interval), ErrInvalid)
	}
	if err := srv.Err(); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(ctx)
	// Goroutine to run the interval.
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-srv.done:
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
				if srv.Notify(msg) != nil {
					return
				}
			}
		}
	}()
	return cancel, nil
}

// SendEvery delivers the given message as notification in the given
// interval until the returned stopper function is called or the
// server is stopped.
func (srv *Server[T]) SendEvery(
	interval time.Duration,
	msg T) (func(), error) {
	return srv.SendEveryWithContext(context.Background(), interval, msg)
}

// SendAfter delivers the given message as notification once after the
// given delay. The returned stopper function cancels the delivery as
// long as the delay has not elapsed.
func (srv *Server[T]) SendAfter(
	delay time.Duration,
	msg T) (func(), error) {
	if delay < 0 {
		return nil, NewError("SendAfter", fmt.Errorf("delay cannot be negative: %v", delay), ErrInvalid)
	}
	if err := srv.Err(); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(context.Background())
	// Goroutine to run the delay.
	go func() {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-srv.done:
		case <-ctx.Done():
		case <-timer.C:
			srv.Notify(msg)
		}
	}()
	return cancel, nil
}

// EOF
