//
// Copyright (c) 2019-2022 Markku Rossi
//
// All rights reserved.
//

package simplify

import (
	"github.com/markkurossi/circsimplify/circuit"
	"github.com/markkurossi/circsimplify/gate"
	"github.com/markkurossi/circsimplify/topo"
)

// ReduceNot collapses NOT-of-NOT chains: an operand that is the head
// of a chain of k NOT gates is rewritten to point directly at the
// chain's root if k is even, or at the single remaining NOT if k is
// odd. It never removes the NOT gates themselves (RedundantGates,
// always run immediately after this pass in the strategy presets,
// does that).
type ReduceNot struct{}

// NewReduceNotCompositionPass builds the bare C12 rewrite.
func NewReduceNotCompositionPass() *ReduceNot {
	return &ReduceNot{}
}

// Apply implements Transformer.
func (r *ReduceNot) Apply(c *circuit.Circuit, enc *circuit.Encoder[string]) (*circuit.Circuit, *circuit.Encoder[string]) {
	order := topo.TopSort(c)
	newGates := make([]circuit.GateInfo, c.N())
	// endpoint[id] is the fully-reduced target for id itself, used
	// when id is referenced as an operand further up the circuit.
	endpoint := make([]circuit.GateID, c.N())
	for i := range endpoint {
		endpoint[i] = circuit.GateID(i)
	}

	for _, id := range order {
		info := c.Info(id)
		ops := make([]circuit.GateID, len(info.Operands))
		for i, op := range info.Operands {
			ops[i] = endpoint[op]
		}
		newGates[id] = circuit.GateInfo{Type: info.Type, Operands: ops}

		if info.Type == gate.Not {
			target := ops[0]
			// Walk down the (already-reduced) chain rooted at
			// target, counting parity.
			parity := 1
			cur := target
			for newGates[cur].Type == gate.Not {
				parity ^= 1
				cur = newGates[cur].Operands[0]
			}
			if parity == 0 {
				endpoint[id] = cur
			} else {
				endpoint[id] = id
			}
		} else {
			endpoint[id] = id
		}
	}

	newOutputs := make([]circuit.GateID, len(c.Outputs()))
	for i, o := range c.Outputs() {
		newOutputs[i] = endpoint[o]
	}

	newCircuit := circuit.New(newGates, newOutputs)
	return newCircuit, enc
}
