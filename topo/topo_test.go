//
// Copyright (c) 2019-2022 Markku Rossi
//
// All rights reserved.
//

package topo

import (
	"testing"

	"github.com/markkurossi/circsimplify/circuit"
	"github.com/markkurossi/circsimplify/gate"
)

// TestTopSortValidity verifies every operand of a gate precedes that
// gate in the returned order, the topological-validity property.
func TestTopSortValidity(t *testing.T) {
	gates := []circuit.GateInfo{
		0: circuit.NewGateInfo(gate.Input, nil),
		1: circuit.NewGateInfo(gate.Input, nil),
		2: circuit.NewGateInfo(gate.And, []circuit.GateID{0, 1}),
		3: circuit.NewGateInfo(gate.Not, []circuit.GateID{2}),
		4: circuit.NewGateInfo(gate.Xor, []circuit.GateID{0, 3}),
	}
	c := circuit.New(gates, []circuit.GateID{4})

	order := topoSortOK(t, c)
	position := make(map[circuit.GateID]int)
	for i, id := range order {
		position[id] = i
	}
	for id := 0; id < c.N(); id++ {
		for _, op := range c.Operands(circuit.GateID(id)) {
			if position[op] >= position[circuit.GateID(id)] {
				t.Fatalf("operand %d does not precede gate %d in topo order", op, id)
			}
		}
	}
}

func topoSortOK(t *testing.T, c *circuit.Circuit) []circuit.GateID {
	order := TopSort(c)
	if len(order) != c.N() {
		t.Fatalf("TopSort returned %d gates, want %d", len(order), c.N())
	}
	return order
}

// TestDFSDisconnectedGates verifies DFS visits every gate including
// ones unreachable from the start set, via the Unvisited hook.
func TestDFSDisconnectedGates(t *testing.T) {
	gates := []circuit.GateInfo{
		0: circuit.NewGateInfo(gate.Input, nil),
		1: circuit.NewGateInfo(gate.Input, nil),
	}
	c := circuit.New(gates, nil)

	var unvisited []circuit.GateID
	DFS(c, []circuit.GateID{0}, Hooks{
		Unvisited: func(id circuit.GateID) {
			unvisited = append(unvisited, id)
		},
	})
	if len(unvisited) != 1 || unvisited[0] != 1 {
		t.Fatalf("expected gate 1 reported unvisited, got %v", unvisited)
	}
}
