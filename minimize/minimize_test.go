//
// Copyright (c) 2019-2022 Markku Rossi
//
// All rights reserved.
//

package minimize

import (
	"strings"
	"testing"

	"github.com/markkurossi/circsimplify/circuit"
	"github.com/markkurossi/circsimplify/gate"
	"github.com/markkurossi/circsimplify/patterndb"
)

// threeAndDB encodes AND(AND(i0,i1),i2), realized identically (two
// AND gates), which is already minimal; the test using it checks
// only that a sweep never increases the real-operator count.
const threeAndDB = `3 1
0x80
4
AND
0 1
AND
3 2
`

func mustDB(t *testing.T, text string) *patterndb.DB {
	t.Helper()
	db, err := patterndb.Parse(patterndb.AIG, strings.NewReader(text))
	if err != nil {
		t.Fatalf("parsing pattern db: %v", err)
	}
	return db
}

// TestPrimitiveOfRecognizesPassthroughAndConstants checks the eight
// special-pattern classifications used by the fast path.
func TestPrimitiveOfRecognizesPassthroughAndConstants(t *testing.T) {
	parents := [3]circuit.GateID{10, 11, 12}

	if _, _, ok := primitiveOf(0x00, parents); !ok {
		t.Fatalf("expected 0x00 to be primitive (const false)")
	}
	ty, ops, ok := primitiveOf(0xF0, parents)
	if !ok || ty != gate.Iff || len(ops) != 1 || ops[0] != parents[0] {
		t.Fatalf("expected 0xF0 to pass through parent 0, got %v %v %v", ty, ops, ok)
	}
	ty, ops, ok = primitiveOf(0x33, parents)
	if !ok || ty != gate.Not || ops[0] != parents[1] {
		t.Fatalf("expected 0x33 to negate parent 1, got %v %v %v", ty, ops, ok)
	}
	if _, _, ok := primitiveOf(0x69, parents); ok {
		t.Fatalf("expected a non-special pattern to be rejected")
	}
}

func threeInputAndChain() (*circuit.Circuit, *circuit.Encoder[string]) {
	gates := []circuit.GateInfo{
		0: circuit.NewGateInfo(gate.Input, nil),
		1: circuit.NewGateInfo(gate.Input, nil),
		2: circuit.NewGateInfo(gate.Input, nil),
		3: circuit.NewGateInfo(gate.And, []circuit.GateID{0, 1}),
		4: circuit.NewGateInfo(gate.And, []circuit.GateID{2, 3}),
	}
	c := circuit.New(gates, []circuit.GateID{4})
	enc := circuit.NewEncoder[string]()
	for _, n := range []string{"i0", "i1", "i2", "and0", "out"} {
		enc.Add(n)
	}
	return c, enc
}

// TestMinimizerDoesNotGrowOptimalAndChain runs a sweep against a
// database that already realizes AND(AND(i0,i1),i2) optimally and
// checks the minimizer never regresses the real-operator count,
// regardless of whether it finds an improving rewrite.
func TestMinimizerDoesNotGrowOptimalAndChain(t *testing.T) {
	c, enc := threeInputAndChain()

	db := mustDB(t, threeAndDB)
	m := New(patterndb.AIG, db)

	result, _, _, stats := m.Run(c, enc)
	if stats.ColorsExamined == 0 {
		t.Fatalf("expected at least one three-color to be examined")
	}
	if result.RealOperatorCount() > c.RealOperatorCount() {
		t.Fatalf("minimizer must never increase real-operator count: before=%d after=%d",
			c.RealOperatorCount(), result.RealOperatorCount())
	}
}

// TestMinimizerNeverRewritesWithoutImprovement verifies that a
// circuit whose database entry has the same operator count is left
// untouched, since Run requires a strict improvement.
func TestMinimizerNeverRewritesWithoutImprovement(t *testing.T) {
	c, enc := threeInputAndChain()

	db := mustDB(t, threeAndDB)
	m := New(patterndb.AIG, db)

	before := c.RealOperatorCount()
	result, _, changed, _ := m.Run(c, enc)
	if changed && result.RealOperatorCount() >= before {
		t.Fatalf("a reported rewrite must strictly reduce the real-operator count")
	}
}
