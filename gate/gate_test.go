//
// Copyright (c) 2019-2022 Markku Rossi
//
// All rights reserved.
//

package gate

import "testing"

// TestNot verifies the three-valued negation table.
func TestNot(t *testing.T) {
	cases := []struct {
		in, out State
	}{
		{False, True},
		{True, False},
		{Undefined, Undefined},
	}
	for _, c := range cases {
		if got := c.in.Not(); got != c.out {
			t.Fatalf("Not(%v) = %v, want %v", c.in, got, c.out)
		}
	}
}

// TestFoldEvalAnd verifies AND short circuits on False and yields
// Undefined only when no operand is definitely False.
func TestFoldEvalAnd(t *testing.T) {
	cases := []struct {
		in  []State
		out State
	}{
		{[]State{True, True, True}, True},
		{[]State{True, False, Undefined}, False},
		{[]State{True, Undefined}, Undefined},
	}
	for _, c := range cases {
		if got := FoldEval(And, c.in); got != c.out {
			t.Fatalf("FoldEval(And, %v) = %v, want %v", c.in, got, c.out)
		}
	}
}

// TestFoldEvalNand verifies NAND applies AND's fold then negates.
func TestFoldEvalNand(t *testing.T) {
	if got := FoldEval(Nand, []State{True, True}); got != False {
		t.Fatalf("FoldEval(Nand, [T,T]) = %v, want False", got)
	}
	if got := FoldEval(Nand, []State{True, False}); got != True {
		t.Fatalf("FoldEval(Nand, [T,F]) = %v, want True", got)
	}
}

// TestFoldEvalXor verifies XOR has no absorbing element and
// propagates Undefined.
func TestFoldEvalXor(t *testing.T) {
	if got := FoldEval(Xor, []State{True, True}); got != False {
		t.Fatalf("FoldEval(Xor, [T,T]) = %v, want False", got)
	}
	if got := FoldEval(Xor, []State{True, Undefined}); got != Undefined {
		t.Fatalf("FoldEval(Xor, [T,?]) = %v, want Undefined", got)
	}
}

// TestEvalMux verifies MUX routes by the selector state.
func TestEvalMux(t *testing.T) {
	if got := EvalMux(False, True, False); got != True {
		t.Fatalf("EvalMux(F, T, F) = %v, want True", got)
	}
	if got := EvalMux(True, True, False); got != False {
		t.Fatalf("EvalMux(T, T, F) = %v, want False", got)
	}
	if got := EvalMux(Undefined, True, False); got != Undefined {
		t.Fatalf("EvalMux(?, T, F) = %v, want Undefined", got)
	}
}

// TestParseType round-trips the BENCH operator names this module
// recognizes, including the XNOR/BUFF aliases.
func TestParseType(t *testing.T) {
	for _, name := range []string{"AND", "NAND", "OR", "NOR", "XOR", "NXOR", "XNOR", "NOT", "IFF", "BUFF", "MUX"} {
		if _, ok := ParseType(name); !ok {
			t.Fatalf("ParseType(%q) unexpectedly failed", name)
		}
	}
	if _, ok := ParseType("BOGUS"); ok {
		t.Fatalf("ParseType(BOGUS) unexpectedly succeeded")
	}
}

// TestArityAndSymmetric spot-checks a handful of type facts used by
// the cleaner passes.
func TestArityAndSymmetric(t *testing.T) {
	if And.Arity() != 2 || !And.Symmetric() || !And.Expandable() {
		t.Fatalf("AND arity/symmetry/expandable facts wrong")
	}
	if Mux.Arity() != 3 || Mux.Symmetric() {
		t.Fatalf("MUX arity/symmetry facts wrong")
	}
	if Not.Arity() != 1 || Not.Symmetric() {
		t.Fatalf("NOT arity/symmetry facts wrong")
	}
}
