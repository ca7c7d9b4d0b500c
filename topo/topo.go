//
// Copyright (c) 2019-2022 Markku Rossi
//
// All rights reserved.
//

// Package topo implements iterative, stack-based depth-first search
// and topological sorting over a circuit.Circuit.
package topo

import "github.com/markkurossi/circsimplify/circuit"

// State is a gate's DFS coloring.
type State byte

// DFS colorings.
const (
	Unvisited State = iota
	Entered
	Visited
)

// Hooks customizes a DFS walk. Any field may be nil.
type Hooks struct {
	// Reverse walks along user edges (towards outputs) instead of
	// operand edges (towards inputs).
	Reverse bool
	// Previsit fires when a gate transitions Unvisited -> Entered.
	Previsit func(circuit.GateID)
	// Postvisit fires when a gate transitions Entered -> Visited,
	// i.e. after all of its (operand or user) neighbors have been
	// fully visited.
	Postvisit func(circuit.GateID)
	// Unvisited fires once per gate that DFS never reaches from the
	// given start set.
	Unvisited func(circuit.GateID)
}

func neighbors(c *circuit.Circuit, id circuit.GateID, reverse bool) []circuit.GateID {
	if reverse {
		return c.Users(id)
	}
	return c.Operands(id)
}

// DFS runs an iterative depth-first search from start, invoking the
// hooks in h. It returns the final State of every gate in the
// circuit.
func DFS(c *circuit.Circuit, start []circuit.GateID, h Hooks) []State {
	n := c.N()
	state := make([]State, n)
	// pushed sits beside state and records whether a
	// gate's children have already been pushed, so postvisit fires
	// exactly once per gate without a second traversal.
	pushed := make([]bool, n)

	var stack []circuit.GateID
	for _, s := range start {
		if state[s] == Unvisited {
			stack = append(stack, s)
		}
	}

	for len(stack) > 0 {
		id := stack[len(stack)-1]

		if state[id] == Unvisited {
			state[id] = Entered
			if h.Previsit != nil {
				h.Previsit(id)
			}
		}

		if !pushed[id] {
			pushed[id] = true
			for _, next := range neighbors(c, id, h.Reverse) {
				if state[next] == Unvisited {
					stack = append(stack, next)
				}
			}
			continue
		}

		stack = stack[:len(stack)-1]
		if state[id] != Visited {
			state[id] = Visited
			if h.Postvisit != nil {
				h.Postvisit(id)
			}
		}
	}

	if h.Unvisited != nil {
		for id := 0; id < n; id++ {
			if state[id] == Unvisited {
				h.Unvisited(circuit.GateID(id))
			}
		}
	}

	return state
}

// TopSort returns a topological ordering of c's gates, from inputs
// toward outputs: for every gate g, every operand of g precedes g in
// the result. Gates unreachable from any sink (a gate with no users)
// are appended at the end in ID order.
func TopSort(c *circuit.Circuit) []circuit.GateID {
	n := c.N()
	var sinks []circuit.GateID
	for id := 0; id < n; id++ {
		if len(c.Users(circuit.GateID(id))) == 0 {
			sinks = append(sinks, circuit.GateID(id))
		}
	}

	// DFS along operand edges means a gate's operands -- its DFS
	// descendants -- always finish (postvisit) before the gate
	// itself, so the postorder sequence is already input-to-output
	// order; no reversal is needed.
	var order []circuit.GateID
	seen := make([]bool, n)
	DFS(c, sinks, Hooks{
		Postvisit: func(id circuit.GateID) {
			order = append(order, id)
			seen[id] = true
		},
	})

	for id := 0; id < n; id++ {
		if !seen[id] {
			order = append(order, circuit.GateID(id))
		}
	}
	return order
}
