//
// Copyright (c) 2019-2022 Markku Rossi
//
// All rights reserved.
//

// Package assign implements a three-valued assignment over a
// circuit's GateID space, the state vector the evaluator (package
// eval) reads from and writes to.
package assign

import (
	"fmt"

	"github.com/markkurossi/circsimplify/circuit"
	"github.com/markkurossi/circsimplify/gate"
)

// Assignment is a dense mapping from GateID to gate.State. Unset
// entries read as gate.Undefined.
type Assignment struct {
	states []gate.State
}

// New creates an Assignment sized for n gates, all Undefined.
func New(n int) *Assignment {
	a := &Assignment{states: make([]gate.State, n)}
	for i := range a.states {
		a.states[i] = gate.Undefined
	}
	return a
}

// Get returns the state assigned to id.
func (a *Assignment) Get(id circuit.GateID) gate.State {
	return a.states[id]
}

// Set assigns state to id.
func (a *Assignment) Set(id circuit.GateID, state gate.State) {
	a.states[id] = state
}

// IsSet reports whether id has a definite (non-Undefined) state.
func (a *Assignment) IsSet(id circuit.GateID) bool {
	return a.states[id] != gate.Undefined
}

// Len returns the size of the assignment's GateID space.
func (a *Assignment) Len() int {
	return len(a.states)
}

// Merge copies every definite state from other into a. It panics if
// a and other both have a definite, differing state for the same
// GateID; an overlap with equal states is accepted.
func (a *Assignment) Merge(other *Assignment) {
	if len(a.states) != len(other.states) {
		panic("assign: Merge called with mismatched assignment sizes")
	}
	for id, s := range other.states {
		if s == gate.Undefined {
			continue
		}
		if a.states[id] != gate.Undefined && a.states[id] != s {
			panic(fmt.Sprintf("assign: Merge conflict at gate %d: %v vs %v", id, a.states[id], s))
		}
		a.states[id] = s
	}
}

// Clone returns a deep copy of a.
func (a *Assignment) Clone() *Assignment {
	out := &Assignment{states: make([]gate.State, len(a.states))}
	copy(out.states, a.states)
	return out
}
