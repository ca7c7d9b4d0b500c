//
// Copyright (c) 2019-2022 Markku Rossi
//
// All rights reserved.
//

package simplify

import (
	"github.com/markkurossi/circsimplify/circuit"
	"github.com/markkurossi/circsimplify/topo"
)

// RedundantGates removes every gate not reachable backward from an
// output, mark-and-sweep style. When preserveInputs is true, INPUT
// gates survive the sweep regardless of reachability -- needed
// before passes (ConstantGateReducer) that synthesize a gadget
// anchored at "the first input" and therefore require at least one
// to still exist.
type RedundantGates struct {
	PreserveInputs bool
}

// NewRedundantGatesCleaner builds the C9 pass.
func NewRedundantGatesCleaner() *RedundantGates {
	return &RedundantGates{}
}

// NewRedundantGatesCleanerPreserveInputs builds the C9 pass with
// input preservation enabled.
func NewRedundantGatesCleanerPreserveInputs() *RedundantGates {
	return &RedundantGates{PreserveInputs: true}
}

// Apply implements Transformer.
func (r *RedundantGates) Apply(c *circuit.Circuit, enc *circuit.Encoder[string]) (*circuit.Circuit, *circuit.Encoder[string]) {
	live := make([]bool, c.N())
	topo.DFS(c, c.Outputs(), topo.Hooks{
		Previsit: func(id circuit.GateID) { live[id] = true },
	})
	if r.PreserveInputs {
		for _, in := range c.Inputs() {
			live[in] = true
		}
	}

	oldToNew := make(map[circuit.GateID]circuit.GateID)
	var newGates []circuit.GateInfo
	for id := 0; id < c.N(); id++ {
		gid := circuit.GateID(id)
		if !live[gid] {
			continue
		}
		oldToNew[gid] = circuit.GateID(len(newGates))
		newGates = append(newGates, c.Info(gid))
	}
	for i := range newGates {
		ops := newGates[i].Operands
		remapped := make([]circuit.GateID, len(ops))
		for j, op := range ops {
			remapped[j] = oldToNew[op]
		}
		newGates[i] = circuit.GateInfo{Type: newGates[i].Type, Operands: remapped}
	}

	newOutputs := make([]circuit.GateID, len(c.Outputs()))
	for i, o := range c.Outputs() {
		newOutputs[i] = oldToNew[o]
	}

	newToOld := make(map[circuit.GateID]circuit.GateID, len(oldToNew))
	for old, n := range oldToNew {
		newToOld[n] = old
	}

	newCircuit := circuit.New(newGates, newOutputs)
	newEnc := circuit.Rebuild(len(newGates), func(id circuit.GateID) string {
		return enc.Name(newToOld[id])
	})
	return newCircuit, newEnc
}
