//
// Copyright (c) 2019-2022 Markku Rossi
//
// All rights reserved.
//

// Package eval implements the circuit evaluator: given a partial
// input assignment, it forward-propagates every gate value that
// assignment implies. Traversal is iterative and stack based, never
// native recursion, per the simplification engine's binding
// evaluation policy.
package eval

import (
	"github.com/markkurossi/circsimplify/assign"
	"github.com/markkurossi/circsimplify/circuit"
	"github.com/markkurossi/circsimplify/gate"
)

// visitState tracks the three-state DFS coloring used by Evaluate's
// explicit stack walk.
type visitState byte

const (
	unvisited visitState = iota
	entered
	evaluated
)

// Evaluate computes every gate value implied by in. The returned
// Assignment contains exactly the gates whose value was derived; it
// never overlaps with in, and in's own entries are not copied into
// it.
func Evaluate(c *circuit.Circuit, in *assign.Assignment) *assign.Assignment {
	n := c.N()
	out := assign.New(n)
	state := make([]visitState, n)

	get := func(id circuit.GateID) gate.State {
		if in.IsSet(id) {
			return in.Get(id)
		}
		return out.Get(id)
	}

	var stack []circuit.GateID
	for _, o := range c.Outputs() {
		if state[o] == unvisited {
			stack = append(stack, o)
		}
	}

	for len(stack) > 0 {
		id := stack[len(stack)-1]

		if state[id] == evaluated {
			stack = stack[:len(stack)-1]
			continue
		}

		if in.IsSet(id) || c.Type(id) == gate.Input {
			state[id] = evaluated
			stack = stack[:len(stack)-1]
			continue
		}

		if state[id] == entered {
			// All operands have been visited; combine.
			out.Set(id, combine(c, id, get))
			state[id] = evaluated
			stack = stack[:len(stack)-1]
			continue
		}

		state[id] = entered
		allResolved := true
		for _, op := range c.Operands(id) {
			if state[op] == unvisited {
				stack = append(stack, op)
				allResolved = false
			}
		}
		if allResolved {
			out.Set(id, combine(c, id, get))
			state[id] = evaluated
			stack = stack[:len(stack)-1]
		}
	}

	return out
}

// combine evaluates a single gate's operator given a value lookup
// for already-resolved operands.
func combine(c *circuit.Circuit, id circuit.GateID, get func(circuit.GateID) gate.State) gate.State {
	t := c.Type(id)
	ops := c.Operands(id)

	switch t {
	case gate.Input:
		return gate.Undefined
	case gate.ConstFalse, gate.ConstTrue:
		return t.ConstValue()
	case gate.Not, gate.Iff, gate.Buff:
		return gate.EvalUnary(t, get(ops[0]))
	case gate.Mux:
		return gate.EvalMux(get(ops[0]), get(ops[1]), get(ops[2]))
	case gate.And, gate.Nand, gate.Or, gate.Nor, gate.Xor, gate.Nxor:
		return gate.FoldEvalFunc(t, idsToInts(ops), func(i int) gate.State {
			return get(circuit.GateID(i))
		})
	default:
		panic("eval: unsupported gate type " + t.String())
	}
}

func idsToInts(ids []circuit.GateID) []int {
	out := make([]int, len(ids))
	for i, id := range ids {
		out[i] = int(id)
	}
	return out
}
