//
// Copyright (c) 2019-2022 Markku Rossi
//
// All rights reserved.
//

package benchfmt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/markkurossi/circsimplify/gate"
)

const sample = `# a tiny majority-style circuit
INPUT(a)
INPUT(b)
INPUT(c)
ab = AND(a, b)
bc = AND(b, c)
OUTPUT(ab)
OUTPUT(bc)
`

func TestParseBasic(t *testing.T) {
	c, enc, err := Parse(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(c.Inputs()) != 3 {
		t.Fatalf("expected 3 inputs, got %d", len(c.Inputs()))
	}
	if len(c.Outputs()) != 2 {
		t.Fatalf("expected 2 outputs, got %d", len(c.Outputs()))
	}
	abID, ok := enc.ID("ab")
	if !ok || c.Type(abID) != gate.And {
		t.Fatalf("expected gate \"ab\" to be an AND gate")
	}
}

func TestParseConstLiterals(t *testing.T) {
	const text = `INPUT(a)
one = vdd
zero = gnd
legacy = CONST(1)
OUTPUT(one)
OUTPUT(zero)
OUTPUT(legacy)
`
	c, enc, err := Parse(strings.NewReader(text))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	oneID, _ := enc.ID("one")
	zeroID, _ := enc.ID("zero")
	legacyID, _ := enc.ID("legacy")
	if c.Type(oneID) != gate.ConstTrue {
		t.Fatalf("expected \"one\" to be CONST_TRUE")
	}
	if c.Type(zeroID) != gate.ConstFalse {
		t.Fatalf("expected \"zero\" to be CONST_FALSE")
	}
	if c.Type(legacyID) != gate.ConstTrue {
		t.Fatalf("expected legacy CONST(1) to parse as CONST_TRUE")
	}
}

func TestWriteRoundTrip(t *testing.T) {
	c, enc, err := Parse(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	var buf bytes.Buffer
	if err := Write(&buf, c, enc); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	c2, enc2, err := Parse(&buf)
	if err != nil {
		t.Fatalf("re-parsing written output failed: %v", err)
	}
	if c2.N() != c.N() {
		t.Fatalf("round trip changed gate count: %d vs %d", c.N(), c2.N())
	}
	if len(c2.Outputs()) != len(c.Outputs()) {
		t.Fatalf("round trip changed output count")
	}
	if _, ok := enc2.ID("ab"); !ok {
		t.Fatalf("round trip lost gate name \"ab\"")
	}
}

func TestParseMissingEqualsFails(t *testing.T) {
	if _, _, err := Parse(strings.NewReader("this is not a bench line\n")); err == nil {
		t.Fatalf("expected a parse error for a malformed line")
	}
}
