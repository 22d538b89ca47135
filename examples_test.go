// Tideland Go GenServer - Examples
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
	"fmt"

	"tideland.dev/go/genserver"
)

//--------------------
// EXAMPLES
//--------------------

// Example_inventory demonstrates a small inventory server built on a
// behavior: notifications change the stock, requests read it, and a
// final request stops the server with a last reply.
func Example_inventory() {
	srv, err := genserver.NewBuilder[inventoryMessage, inventoryState](inventoryBehavior{}).
		Name("inventory").
		Start(inventoryState{})
	if err != nil {
		panic(err)
	}

	srv.Notify(inventoryMessage{op: "put", amount: 3})
	srv.Notify(inventoryMessage{op: "put", amount: 4})

	reply, err := srv.Request(inventoryMessage{op: "stock"})
	if err != nil {
		panic(err)
	}
	fmt.Printf("stock: %d\n", reply.amount)

	reply, err = srv.Request(inventoryMessage{op: "close"})
	if err != nil {
		panic(err)
	}
	fmt.Printf("final stock: %d\n", reply.amount)

	if err := srv.Wait(); err != nil {
		panic(err)
	}
	fmt.Println("inventory closed")

	// Output:
	// stock: 7
	// final stock: 7
	// inventory closed
}

//--------------------
// EXAMPLE BEHAVIOR
//--------------------

// inventoryMessage and inventoryState belong to the example
// inventory server.
type inventoryMessage struct {
	op     string
	amount int
}

type inventoryState struct {
	stock int
}

type inventoryBehavior struct {
	genserver.StubBehavior[inventoryMessage, inventoryState]
}

func (inventoryBehavior) HandleNotification(
	msg inventoryMessage,
	state *inventoryState) genserver.Outcome[inventoryMessage] {
	switch msg.op {
	case "put":
		state.stock += msg.amount
		return genserver.Continue[inventoryMessage]()
	case "take":
		state.stock -= msg.amount
		return genserver.Continue[inventoryMessage]()
	}
	return genserver.Stop[inventoryMessage](genserver.ReasonOther("unknown op " + msg.op))
}

func (inventoryBehavior) HandleRequest(
	msg inventoryMessage,
	replier *genserver.Replier[inventoryMessage],
	state *inventoryState) genserver.RequestOutcome[inventoryMessage] {
	switch msg.op {
	case "stock":
		return genserver.Reply(inventoryMessage{op: msg.op, amount: state.stock})
	case "close":
		return genserver.StopRequestWithReply(genserver.ReasonNormal, inventoryMessage{op: msg.op, amount: state.stock})
	}
	return genserver.StopRequest[inventoryMessage](genserver.ReasonOther("unknown op " + msg.op))
}

// EOF
