//
// Copyright (c) 2019-2022 Markku Rossi
//
// All rights reserved.
//

package simplify

import (
	"math/rand"

	"github.com/markkurossi/circsimplify/assign"
	"github.com/markkurossi/circsimplify/circuit"
	"github.com/markkurossi/circsimplify/eval"
	"github.com/markkurossi/circsimplify/gate"
	"github.com/markkurossi/circsimplify/topo"
)

// ConstantGates evaluates the circuit under the empty input
// assignment and replaces every gate whose value is thereby implied
// with the matching constant. For symmetric operators it also
// strips operands whose value is the operator's identity element
// before checking whether the gate itself became fully determined,
// turning XOR into NXOR (and back) when an odd number of TRUE
// operands was stripped (SPEC_FULL.md 5.9). Determined outputs are
// replaced by a tiny gadget anchored at the circuit's first input,
// so every output keeps referencing a real input even after folding.
//
// A circuit with no INPUT gate has nothing to anchor a gadget to;
// its determined outputs are left pointing at the folded constant.
// The DuplicateOperandsCleaner preset runs RedundantGates with
// PreserveInputs before this pass, so inputs are kept.
type ConstantGates struct{}

// NewConstantGateReducerPass builds the bare C13 rewrite.
func NewConstantGateReducerPass() *ConstantGates {
	return &ConstantGates{}
}

// Apply implements Transformer.
func (cg *ConstantGates) Apply(c *circuit.Circuit, enc *circuit.Encoder[string]) (*circuit.Circuit, *circuit.Encoder[string]) {
	known := eval.Evaluate(c, assign.New(c.N()))

	order := topo.TopSort(c)
	newGates := make([]circuit.GateInfo, c.N())
	determined := make([]gate.State, c.N())
	for i := range determined {
		determined[i] = gate.Undefined
	}

	// alias records gates that degenerated into a pure pass-through
	// of one of their operands (the AND/OR/XOR/MUX branch-routing
	// cases of SPEC_FULL.md 5.9): every later reference to the
	// aliased gate is redirected straight to its target instead of
	// through the now-dead gate, so RedundantGatesCleaner can drop it
	// entirely rather than leaving a spurious pass-through gate
	// behind in the final circuit.
	alias := make(map[circuit.GateID]circuit.GateID)
	resolve := func(id circuit.GateID) circuit.GateID {
		for {
			target, ok := alias[id]
			if !ok {
				return id
			}
			id = target
		}
	}

	for _, id := range order {
		info := c.Info(id)
		resolvedOperands := make([]circuit.GateID, len(info.Operands))
		for i, op := range info.Operands {
			resolvedOperands[i] = resolve(op)
		}
		info.Operands = resolvedOperands

		if info.Type.Symmetric() {
			trimmed, flip := trimIdentityOperands(info.Type, resolvedOperands, determined)
			t := info.Type
			if flip {
				t = flipPolarity(t)
			}
			info = circuit.GateInfo{Type: t, Operands: trimmed}
			if len(trimmed) == 1 {
				var target circuit.GateID
				var isAlias bool
				info, target, isAlias = collapseUnaryOperator(t, trimmed[0])
				if isAlias {
					alias[id] = target
				}
			}
		} else if info.Type == gate.Mux {
			var target circuit.GateID
			var isAlias bool
			info, target, isAlias = routeKnownSelector(info, determined)
			if isAlias {
				alias[id] = target
			}
		}
		newGates[id] = info

		if s := known.Get(id); s != gate.Undefined {
			determined[id] = s
		} else if info.Type.IsConst() {
			determined[id] = info.Type.ConstValue()
		}
	}

	// Fold every gate whose value became determined into a constant.
	for id := range newGates {
		if determined[id] != gate.Undefined && !newGates[id].Type.IsConst() {
			t := gate.ConstFalse
			if determined[id] == gate.True {
				t = gate.ConstTrue
			}
			newGates[id] = circuit.GateInfo{Type: t, Operands: nil}
		}
	}

	rng := rand.New(rand.NewSource(int64(c.N()) + 7))
	namegen := circuit.NewNameGenerator(rng, "constgadget")

	var firstInput circuit.GateID
	haveInput := len(c.Inputs()) > 0
	if haveInput {
		firstInput = c.Inputs()[0]
	}

	gadgetFor := make(map[circuit.GateID]circuit.GateID)
	newOutputs := make([]circuit.GateID, len(c.Outputs()))
	for i, o := range c.Outputs() {
		o = resolve(o)
		if determined[o] == gate.Undefined {
			newOutputs[i] = o
			continue
		}
		if !haveInput {
			// No input exists to anchor a gadget; leave the output
			// pointing at the folded constant directly.
			newOutputs[i] = o
			continue
		}
		if g, ok := gadgetFor[o]; ok {
			newOutputs[i] = g
			continue
		}
		notID := circuit.GateID(len(newGates))
		newGates = append(newGates, circuit.GateInfo{Type: gate.Not, Operands: []circuit.GateID{firstInput}})
		determined = append(determined, gate.Undefined)

		var gadgetID circuit.GateID
		if determined[o] == gate.True {
			gadgetID = circuit.GateID(len(newGates))
			newGates = append(newGates, circuit.GateInfo{Type: gate.Or, Operands: circuit.NewGateInfo(gate.Or, []circuit.GateID{firstInput, notID}).Operands})
		} else {
			gadgetID = circuit.GateID(len(newGates))
			newGates = append(newGates, circuit.GateInfo{Type: gate.And, Operands: circuit.NewGateInfo(gate.And, []circuit.GateID{firstInput, notID}).Operands})
		}
		determined = append(determined, gate.Undefined)
		gadgetFor[o] = gadgetID
		newOutputs[i] = gadgetID
	}

	newCircuit := circuit.New(newGates, newOutputs)
	newEnc := circuit.Rebuild(len(newGates), func(id circuit.GateID) string {
		if int(id) < c.N() {
			return enc.Name(id)
		}
		for {
			name := namegen.Next()
			if _, taken := enc.ID(name); !taken {
				return name
			}
		}
	})
	return newCircuit, newEnc
}

// trimIdentityOperands strips operands whose determined value is the
// operator's identity element (True for AND-class, False for
// OR-class). XOR/NXOR drop both False and True operands and report a
// polarity flip when an odd number of True operands was dropped,
// since x XOR TRUE = NOT(x).
func trimIdentityOperands(t gate.Type, operands []circuit.GateID, determined []gate.State) ([]circuit.GateID, bool) {
	var kept []circuit.GateID
	trueCount := 0
	for _, op := range operands {
		s := determined[op]
		switch t {
		case gate.And, gate.Nand:
			if s == gate.True {
				continue
			}
		case gate.Or, gate.Nor:
			if s == gate.False {
				continue
			}
		case gate.Xor, gate.Nxor:
			if s == gate.True {
				trueCount++
				continue
			}
			if s == gate.False {
				continue
			}
		}
		kept = append(kept, op)
	}
	if len(kept) == 0 {
		kept = operands
		return kept, false
	}
	if (t == gate.Xor || t == gate.Nxor) && trueCount%2 == 1 {
		return kept, true
	}
	return kept, false
}

// collapseUnaryOperator rewrites a symmetric gate that trimming left
// with exactly one operand: AND/OR/XOR degenerate to a pure
// pass-through of that operand, reported as an alias so every other
// reference to this gate is redirected straight to the operand; their
// negated counterparts NAND/NOR/NXOR degenerate to a synthesized
// NOT(operand), which stays a real gate since negation cannot be
// represented by aliasing alone (SPEC_FULL.md 5.9). The returned
// GateInfo is always a well-formed filler for this gate's own slot,
// even in the alias case, where it is left for RedundantGatesCleaner
// to discover is unreachable and drop.
func collapseUnaryOperator(t gate.Type, operand circuit.GateID) (circuit.GateInfo, circuit.GateID, bool) {
	switch t {
	case gate.Nand, gate.Nor, gate.Nxor:
		return circuit.GateInfo{Type: gate.Not, Operands: []circuit.GateID{operand}}, 0, false
	default:
		return circuit.GateInfo{Type: gate.Iff, Operands: []circuit.GateID{operand}}, operand, true
	}
}

// routeKnownSelector rewrites a MUX whose selector is determined but
// whose selected branch is not, aliasing it straight to that branch
// instead of surviving as an un-simplified MUX
// (SPEC_FULL.md 5.9, constant_gate_reducer.hpp's selector routing).
func routeKnownSelector(info circuit.GateInfo, determined []gate.State) (circuit.GateInfo, circuit.GateID, bool) {
	sel, ifFalse, ifTrue := info.Operands[0], info.Operands[1], info.Operands[2]
	switch determined[sel] {
	case gate.False:
		return circuit.GateInfo{Type: gate.Iff, Operands: []circuit.GateID{ifFalse}}, ifFalse, true
	case gate.True:
		return circuit.GateInfo{Type: gate.Iff, Operands: []circuit.GateID{ifTrue}}, ifTrue, true
	default:
		return info, 0, false
	}
}

func flipPolarity(t gate.Type) gate.Type {
	switch t {
	case gate.Xor:
		return gate.Nxor
	case gate.Nxor:
		return gate.Xor
	default:
		return t
	}
}
