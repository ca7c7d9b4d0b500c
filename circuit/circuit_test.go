//
// Copyright (c) 2022 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"testing"

	"github.com/markkurossi/circsimplify/gate"
)

// buildXORAND builds x0 XOR (x0 AND x1) with a single output, used
// by several package tests below.
func buildXORAND() *Circuit {
	gates := []GateInfo{
		0: NewGateInfo(gate.Input, nil),
		1: NewGateInfo(gate.Input, nil),
		2: NewGateInfo(gate.And, []GateID{0, 1}),
		3: NewGateInfo(gate.Xor, []GateID{0, 2}),
	}
	return New(gates, []GateID{3})
}

// TestUsersDuality verifies that Users(i) contains j iff i is one of
// j's operands, the duality invariant every pass depends on.
func TestUsersDuality(t *testing.T) {
	c := buildXORAND()
	for id := 0; id < c.N(); id++ {
		for _, op := range c.Operands(GateID(id)) {
			found := false
			for _, u := range c.Users(op) {
				if u == GateID(id) {
					found = true
				}
			}
			if !found {
				t.Fatalf("gate %d operand %d missing reciprocal user edge", id, op)
			}
		}
	}
}

// TestOutOfRangeOperandPanics verifies malformed circuits panic
// rather than silently constructing an inconsistent graph.
func TestOutOfRangeOperandPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on out-of-range operand")
		}
	}()
	gates := []GateInfo{
		0: NewGateInfo(gate.Input, nil),
		1: NewGateInfo(gate.Not, []GateID{5}),
	}
	New(gates, []GateID{1})
}

// TestEqual verifies structurally identical circuits compare equal
// and a gate-count difference does not.
func TestEqual(t *testing.T) {
	a := buildXORAND()
	b := buildXORAND()
	if !Equal(a, b) {
		t.Fatalf("expected structurally identical circuits to be Equal")
	}
	gates := []GateInfo{0: NewGateInfo(gate.Input, nil)}
	c := New(gates, []GateID{0})
	if Equal(a, c) {
		t.Fatalf("expected circuits of different size to differ")
	}
}

// TestSymmetricOperandsSorted verifies NewGateInfo canonicalizes
// operand order for symmetric gate kinds only.
func TestSymmetricOperandsSorted(t *testing.T) {
	g := NewGateInfo(gate.And, []GateID{3, 1, 2})
	want := []GateID{1, 2, 3}
	for i, w := range want {
		if g.Operands[i] != w {
			t.Fatalf("AND operands not sorted: got %v, want %v", g.Operands, want)
		}
	}
	m := NewGateInfo(gate.Mux, []GateID{3, 1, 2})
	if m.Operands[0] != 3 || m.Operands[1] != 1 || m.Operands[2] != 2 {
		t.Fatalf("MUX operand order must be preserved, got %v", m.Operands)
	}
}
