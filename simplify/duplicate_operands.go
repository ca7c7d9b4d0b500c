//
// Copyright (c) 2019-2022 Markku Rossi
//
// All rights reserved.
//

package simplify

import (
	"math/rand"

	"github.com/markkurossi/circsimplify/circuit"
	"github.com/markkurossi/circsimplify/gate"
	"github.com/markkurossi/circsimplify/topo"
)

// DuplicateOperands normalizes repeated and complementary operands
// within a single gate: AND/NAND/OR/NOR operands are deduplicated to
// a set; XOR/NXOR operands are reduced modulo 2. Complementary pairs
// (x together with NOT(x)) collapse further, per the degeneracy
// rules in SPEC_FULL.md 5.7. It synthesizes CONST_TRUE/CONST_FALSE
// and NOT helper gates as needed.
type DuplicateOperands struct{}

// NewDuplicateOperandsCleanerPass builds the bare C11 rewrite (not
// the full DuplicateOperandsCleaner strategy preset, which also
// sandwiches it with cleanup passes -- see Strategy in strategy.go).
func NewDuplicateOperandsCleanerPass() *DuplicateOperands {
	return &DuplicateOperands{}
}

type buildState struct {
	gates   []circuit.GateInfo
	types   []gate.Type
	resolve map[circuit.GateID]circuit.GateID

	hasConstFalse, hasConstTrue bool
	constFalse, constTrue       circuit.GateID
}

func (b *buildState) append(t gate.Type, operands []circuit.GateID) circuit.GateID {
	id := circuit.GateID(len(b.gates))
	b.gates = append(b.gates, circuit.NewGateInfo(t, operands))
	b.types = append(b.types, t)
	return id
}

func (b *buildState) constFalseID() circuit.GateID {
	if !b.hasConstFalse {
		b.constFalse = b.append(gate.ConstFalse, nil)
		b.hasConstFalse = true
	}
	return b.constFalse
}

func (b *buildState) constTrueID() circuit.GateID {
	if !b.hasConstTrue {
		b.constTrue = b.append(gate.ConstTrue, nil)
		b.hasConstTrue = true
	}
	return b.constTrue
}

// notOperandOf reports whether id's gate is NOT and, if so, its
// single operand.
func (b *buildState) notOperandOf(id circuit.GateID) (circuit.GateID, bool) {
	if int(id) >= len(b.types) || b.types[id] != gate.Not {
		return 0, false
	}
	return b.gates[id].Operands[0], true
}

// dedupeUnique returns ids with duplicates removed, preserving first
// occurrence order.
func dedupeUnique(ids []circuit.GateID) []circuit.GateID {
	seen := make(map[circuit.GateID]bool, len(ids))
	var out []circuit.GateID
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// reduceMod2 returns ids whose occurrence count is odd, preserving
// first occurrence order.
func reduceMod2(ids []circuit.GateID) []circuit.GateID {
	count := make(map[circuit.GateID]int, len(ids))
	var order []circuit.GateID
	for _, id := range ids {
		if count[id] == 0 {
			order = append(order, id)
		}
		count[id]++
	}
	var out []circuit.GateID
	for _, id := range order {
		if count[id]%2 == 1 {
			out = append(out, id)
		}
	}
	return out
}

// complementPair finds the first pair (i, j) in ids where ids[j] is
// NOT(ids[i]) or vice versa.
func (b *buildState) complementPair(ids []circuit.GateID) (int, int, bool) {
	present := make(map[circuit.GateID]int, len(ids))
	for i, id := range ids {
		present[id] = i
	}
	for i, id := range ids {
		if base, ok := b.notOperandOf(id); ok {
			if j, ok := present[base]; ok && j != i {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}

func removeIndices(ids []circuit.GateID, a, b int) []circuit.GateID {
	out := make([]circuit.GateID, 0, len(ids)-2)
	for i, id := range ids {
		if i == a || i == b {
			continue
		}
		out = append(out, id)
	}
	return out
}

// Apply implements Transformer.
func (d *DuplicateOperands) Apply(c *circuit.Circuit, enc *circuit.Encoder[string]) (*circuit.Circuit, *circuit.Encoder[string]) {
	b := &buildState{resolve: make(map[circuit.GateID]circuit.GateID, c.N())}
	namegen := circuit.NewNameGenerator(rand.New(rand.NewSource(int64(c.N())+1)), "dupop")
	syntheticNames := make(map[circuit.GateID]string)

	order := topo.TopSort(c)
	for _, old := range order {
		info := c.Info(old)
		resolved := make([]circuit.GateID, len(info.Operands))
		for i, op := range info.Operands {
			resolved[i] = b.resolve[op]
		}

		switch info.Type {
		case gate.And, gate.Nand, gate.Or, gate.Nor:
			b.resolve[old] = d.rewriteAndOr(b, info.Type, resolved)
		case gate.Xor, gate.Nxor:
			b.resolve[old] = d.rewriteXor(b, info.Type, resolved)
		default:
			id := b.append(info.Type, resolved)
			b.resolve[old] = id
		}
	}

	newOutputs := make([]circuit.GateID, len(c.Outputs()))
	for i, o := range c.Outputs() {
		newOutputs[i] = b.resolve[o]
	}

	newToOld := make(map[circuit.GateID]circuit.GateID, len(b.resolve))
	for old, n := range b.resolve {
		newToOld[n] = old
	}

	newCircuit := circuit.New(b.gates, newOutputs)
	newEnc := circuit.Rebuild(len(b.gates), func(id circuit.GateID) string {
		if old, ok := newToOld[id]; ok {
			return enc.Name(old)
		}
		if name, ok := syntheticNames[id]; ok {
			return name
		}
		name := namegen.Next()
		for {
			if _, taken := enc.ID(name); !taken {
				break
			}
			name = namegen.Next()
		}
		syntheticNames[id] = name
		return name
	})
	return newCircuit, newEnc
}

func (d *DuplicateOperands) rewriteAndOr(b *buildState, t gate.Type, operands []circuit.GateID) circuit.GateID {
	unique := dedupeUnique(operands)

	if i, j, ok := b.complementPair(unique); ok {
		_ = i
		_ = j
		switch t {
		case gate.And, gate.Nor:
			return b.constFalseID()
		default: // Nand, Or
			return b.constTrueID()
		}
	}

	switch len(unique) {
	case 0:
		// Does not arise for well-formed circuits (AND/OR always
		// start with arity >= 2); fall back to the type's identity.
		switch t {
		case gate.And, gate.Nand:
			return b.constTrueID()
		default:
			return b.constFalseID()
		}
	case 1:
		x := unique[0]
		switch t {
		case gate.And, gate.Or:
			return x
		default: // Nand, Nor
			return b.append(gate.Not, []circuit.GateID{x})
		}
	default:
		return b.append(t, unique)
	}
}

func (d *DuplicateOperands) rewriteXor(b *buildState, t gate.Type, operands []circuit.GateID) circuit.GateID {
	reduced := reduceMod2(operands)

	pairs := 0
	for {
		i, j, ok := b.complementPair(reduced)
		if !ok {
			break
		}
		reduced = removeIndices(reduced, i, j)
		pairs++
	}
	if pairs%2 == 1 {
		reduced = append(reduced, b.constTrueID())
		// A freshly appended CONST_TRUE operand could itself form a
		// complementary pair with something already in reduced; run
		// the search once more to stay canonical.
		if i, j, ok := b.complementPair(reduced); ok {
			reduced = removeIndices(reduced, i, j)
		}
	}

	switch len(reduced) {
	case 0:
		if t == gate.Xor {
			return b.constFalseID()
		}
		return b.constTrueID()
	case 1:
		x := reduced[0]
		if t == gate.Xor {
			return x
		}
		return b.append(gate.Not, []circuit.GateID{x})
	default:
		return b.append(t, reduced)
	}
}
