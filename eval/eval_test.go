//
// Copyright (c) 2019-2022 Markku Rossi
//
// All rights reserved.
//

package eval

import (
	"testing"

	"github.com/markkurossi/circsimplify/assign"
	"github.com/markkurossi/circsimplify/circuit"
	"github.com/markkurossi/circsimplify/gate"
)

// TestEvaluateFullyDetermined verifies an AND gate with both inputs
// fixed evaluates to a definite value.
func TestEvaluateFullyDetermined(t *testing.T) {
	gates := []circuit.GateInfo{
		0: circuit.NewGateInfo(gate.Input, nil),
		1: circuit.NewGateInfo(gate.Input, nil),
		2: circuit.NewGateInfo(gate.And, []circuit.GateID{0, 1}),
	}
	c := circuit.New(gates, []circuit.GateID{2})

	in := assign.New(c.N())
	in.Set(0, gate.True)
	in.Set(1, gate.True)

	out := Evaluate(c, in)
	if out.Get(2) != gate.True {
		t.Fatalf("AND(1,1) = %v, want True", out.Get(2))
	}
}

// TestEvaluatePartial verifies that an undetermined operand leaves
// the dependent gate Undefined rather than guessing.
func TestEvaluatePartial(t *testing.T) {
	gates := []circuit.GateInfo{
		0: circuit.NewGateInfo(gate.Input, nil),
		1: circuit.NewGateInfo(gate.Input, nil),
		2: circuit.NewGateInfo(gate.And, []circuit.GateID{0, 1}),
	}
	c := circuit.New(gates, []circuit.GateID{2})

	in := assign.New(c.N())
	in.Set(0, gate.True)

	out := Evaluate(c, in)
	if out.Get(2) != gate.Undefined {
		t.Fatalf("AND(1,?) = %v, want Undefined", out.Get(2))
	}
}

// TestEvaluateShortCircuit verifies AND resolves to False when any
// operand is False, even if another operand is unresolved.
func TestEvaluateShortCircuit(t *testing.T) {
	gates := []circuit.GateInfo{
		0: circuit.NewGateInfo(gate.Input, nil),
		1: circuit.NewGateInfo(gate.Input, nil),
		2: circuit.NewGateInfo(gate.And, []circuit.GateID{0, 1}),
	}
	c := circuit.New(gates, []circuit.GateID{2})

	in := assign.New(c.N())
	in.Set(0, gate.False)

	out := Evaluate(c, in)
	if out.Get(2) != gate.False {
		t.Fatalf("AND(0,?) = %v, want False", out.Get(2))
	}
}

// TestEvaluateConstantOnlyCircuit verifies a circuit with no
// unresolved inputs derives every gate's value under the empty
// assignment -- the basis for the constant-gate reducer.
func TestEvaluateConstantOnlyCircuit(t *testing.T) {
	gates := []circuit.GateInfo{
		0: circuit.NewGateInfo(gate.ConstTrue, nil),
		1: circuit.NewGateInfo(gate.ConstFalse, nil),
		2: circuit.NewGateInfo(gate.Or, []circuit.GateID{0, 1}),
	}
	c := circuit.New(gates, []circuit.GateID{2})

	out := Evaluate(c, assign.New(c.N()))
	if out.Get(2) != gate.True {
		t.Fatalf("OR(1,0) = %v, want True", out.Get(2))
	}
}
