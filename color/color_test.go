//
// Copyright (c) 2019-2022 Markku Rossi
//
// All rights reserved.
//

package color

import (
	"testing"

	"github.com/markkurossi/circsimplify/circuit"
	"github.com/markkurossi/circsimplify/gate"
)

// TestTwoColoringSharedParents verifies two gates built from the
// same ordered parent pair receive the same two-color.
func TestTwoColoringSharedParents(t *testing.T) {
	gates := []circuit.GateInfo{
		0: circuit.NewGateInfo(gate.Input, nil),
		1: circuit.NewGateInfo(gate.Input, nil),
		2: circuit.NewGateInfo(gate.And, []circuit.GateID{0, 1}),
		3: circuit.NewGateInfo(gate.Or, []circuit.GateID{0, 1}),
	}
	c := circuit.New(gates, []circuit.GateID{2, 3})

	tc := NewTwoColoring(c)
	col2, ok2 := tc.GateColor[2]
	col3, ok3 := tc.GateColor[3]
	if !ok2 || !ok3 || col2 != col3 {
		t.Fatalf("expected gates 2 and 3 to share a two-color, got %v/%v (%v/%v)", col2, col3, ok2, ok3)
	}
}

// TestTwoColoringUnaryInherits verifies a NOT gate inherits its
// operand's color.
func TestTwoColoringUnaryInherits(t *testing.T) {
	gates := []circuit.GateInfo{
		0: circuit.NewGateInfo(gate.Input, nil),
		1: circuit.NewGateInfo(gate.Input, nil),
		2: circuit.NewGateInfo(gate.And, []circuit.GateID{0, 1}),
		3: circuit.NewGateInfo(gate.Not, []circuit.GateID{2}),
	}
	c := circuit.New(gates, []circuit.GateID{3})

	tc := NewTwoColoring(c)
	col2 := tc.GateColor[2]
	col3, ok := tc.GateColor[3]
	if !ok || col2 != col3 {
		t.Fatalf("expected NOT gate to inherit operand's color")
	}
}

// TestThreeColoringAssignsColor verifies a three-input subcircuit
// produces at least one three-color.
func TestThreeColoringAssignsColor(t *testing.T) {
	gates := []circuit.GateInfo{
		0: circuit.NewGateInfo(gate.Input, nil),
		1: circuit.NewGateInfo(gate.Input, nil),
		2: circuit.NewGateInfo(gate.Input, nil),
		3: circuit.NewGateInfo(gate.And, []circuit.GateID{0, 1}),
		4: circuit.NewGateInfo(gate.Or, []circuit.GateID{3, 2}),
	}
	c := circuit.New(gates, []circuit.GateID{4})

	two := NewTwoColoring(c)
	three := NewThreeColoring(c, two)
	if len(three.GateColors[4]) == 0 {
		t.Fatalf("expected gate 4 to receive at least one three-color")
	}
}
