//
// Copyright (c) 2019-2022 Markku Rossi
//
// All rights reserved.
//

// Package benchfmt implements the BENCH circuit text format: the
// line-oriented, human-readable wire format this engine reads
// circuits from and writes simplified circuits back out as.
//
// A BENCH file is a sequence of lines of the forms
//
//	INPUT(name)
//	OUTPUT(name)
//	name = OP(op1, op2, ...)
//	name = CONST(0|1)
//	name = vdd
//	name = gnd
//	# comment
//
// vdd/gnd are bare constant-literal lines with no parentheses;
// CONST(0)/CONST(1) are the historical equivalent this format also
// accepts on read.
package benchfmt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/markkurossi/circsimplify/circuit"
	"github.com/markkurossi/circsimplify/gate"
)

// Parse reads a BENCH-format circuit from r.
func Parse(r io.Reader) (*circuit.Circuit, *circuit.Encoder[string], error) {
	enc := circuit.NewEncoder[string]()
	var infos []circuit.GateInfo
	var outputs []string

	ensure := func(id circuit.GateID) {
		for circuit.GateID(len(infos)) <= id {
			infos = append(infos, circuit.GateInfo{})
		}
	}
	encode := func(name string) circuit.GateID {
		if id, ok := enc.ID(name); ok {
			return id
		}
		id := enc.Add(name)
		ensure(id)
		return id
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		switch {
		case strings.HasPrefix(line, "INPUT("):
			name, err := bracketedArg(line, "INPUT(")
			if err != nil {
				return nil, nil, parseErr(lineNo, err)
			}
			id := encode(name)
			infos[id] = circuit.NewGateInfo(gate.Input, nil)

		case strings.HasPrefix(line, "OUTPUT("):
			name, err := bracketedArg(line, "OUTPUT(")
			if err != nil {
				return nil, nil, parseErr(lineNo, err)
			}
			encode(name)
			outputs = append(outputs, name)

		default:
			name, rhs, ok := strings.Cut(line, "=")
			if !ok {
				return nil, nil, parseErr(lineNo, fmt.Errorf("missing '=' in %q", line))
			}
			name = strings.TrimSpace(name)
			rhs = strings.TrimSpace(rhs)
			id := encode(name)

			t, operands, err := parseRHS(rhs, encode)
			if err != nil {
				return nil, nil, parseErr(lineNo, err)
			}
			infos[id] = circuit.NewGateInfo(t, operands)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, nil, fmt.Errorf("benchfmt: scanning: %w", err)
	}

	outIDs := make([]circuit.GateID, len(outputs))
	for i, name := range outputs {
		id, _ := enc.ID(name)
		outIDs[i] = id
	}

	c := circuit.New(infos, outIDs)
	return c, enc, nil
}

func parseErr(lineNo int, err error) error {
	return fmt.Errorf("benchfmt: line %d: %w", lineNo, err)
}

// bracketedArg extracts the single argument of a "KEYWORD(arg)"
// line, given the keyword's opening prefix including the '('.
func bracketedArg(line, prefix string) (string, error) {
	rest := line[len(prefix):]
	idx := strings.IndexByte(rest, ')')
	if idx < 0 {
		return "", fmt.Errorf("missing ')' in %q", line)
	}
	return strings.TrimSpace(rest[:idx]), nil
}

// parseRHS parses the right-hand side of a "name = ..." line: a bare
// "vdd"/"gnd" literal, or an "OP(operands...)" expression.
func parseRHS(rhs string, encode func(string) circuit.GateID) (gate.Type, []circuit.GateID, error) {
	switch rhs {
	case "vdd":
		return gate.ConstTrue, nil, nil
	case "gnd":
		return gate.ConstFalse, nil, nil
	}

	op, rest, ok := strings.Cut(rhs, "(")
	if !ok {
		return 0, nil, fmt.Errorf("malformed gate expression %q", rhs)
	}
	op = strings.TrimSpace(op)
	rest = strings.TrimSpace(rest)
	if !strings.HasSuffix(rest, ")") {
		return 0, nil, fmt.Errorf("missing ')' in gate expression %q", rhs)
	}
	rest = strings.TrimSuffix(rest, ")")

	if op == "CONST" {
		switch strings.TrimSpace(rest) {
		case "0":
			return gate.ConstFalse, nil, nil
		case "1":
			return gate.ConstTrue, nil, nil
		default:
			return 0, nil, fmt.Errorf("unsupported CONST operand %q", rest)
		}
	}

	t, ok := gate.ParseType(op)
	if !ok {
		return 0, nil, fmt.Errorf("unknown operator %q", op)
	}

	var operands []circuit.GateID
	if strings.TrimSpace(rest) != "" {
		for _, part := range strings.Split(rest, ",") {
			operands = append(operands, encode(strings.TrimSpace(part)))
		}
	}
	return t, operands, nil
}

// Write emits c in BENCH format to w, using enc to recover each
// gate's original or synthesized name. Gates are written in ID
// order: INPUT declarations first, then OUTPUT declarations, then
// every gate's defining line.
func Write(w io.Writer, c *circuit.Circuit, enc *circuit.Encoder[string]) error {
	bw := bufio.NewWriter(w)

	for _, id := range c.Inputs() {
		if _, err := fmt.Fprintf(bw, "INPUT(%s)\n", enc.Name(id)); err != nil {
			return err
		}
	}
	if _, err := bw.WriteString("\n"); err != nil {
		return err
	}
	for _, id := range c.Outputs() {
		if _, err := fmt.Fprintf(bw, "OUTPUT(%s)\n", enc.Name(id)); err != nil {
			return err
		}
	}
	if _, err := bw.WriteString("\n"); err != nil {
		return err
	}

	for id := 0; id < c.N(); id++ {
		gid := circuit.GateID(id)
		t := c.Type(gid)
		if t == gate.Input {
			continue
		}
		name := enc.Name(gid)

		var line string
		switch t {
		case gate.ConstTrue:
			line = fmt.Sprintf("%s = vdd\n", name)
		case gate.ConstFalse:
			line = fmt.Sprintf("%s = gnd\n", name)
		default:
			line = fmt.Sprintf("%s = %s(%s)\n", name, t.String(), operandNames(c.Operands(gid), enc))
		}
		if _, err := bw.WriteString(line); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func operandNames(ops []circuit.GateID, enc *circuit.Encoder[string]) string {
	names := make([]string, len(ops))
	for i, op := range ops {
		names[i] = enc.Name(op)
	}
	return strings.Join(names, ", ")
}

// ParseFile opens path and parses it, mirroring patterndb.Load's
// convenience wrapper around Parse.
func ParseFile(path string) (*circuit.Circuit, *circuit.Encoder[string], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("benchfmt: opening %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// WriteFile creates path and writes c to it.
func WriteFile(path string, c *circuit.Circuit, enc *circuit.Encoder[string]) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("benchfmt: creating %s: %w", path, err)
	}
	defer f.Close()
	return Write(f, c, enc)
}
