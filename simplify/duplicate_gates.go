//
// Copyright (c) 2019-2022 Markku Rossi
//
// All rights reserved.
//

package simplify

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/markkurossi/circsimplify/circuit"
	"github.com/markkurossi/circsimplify/gate"
	"github.com/markkurossi/circsimplify/topo"
)

// DuplicateGates merges gates that share an auxiliary key: same
// type, and the same operand identity after accounting for operand
// order (symmetric types) or position (MUX). It assumes the circuit
// has no dead gates -- it is always preceded by RedundantGates in
// the shipping strategy presets.
type DuplicateGates struct{}

// NewDuplicateGatesCleaner builds the C10 pass (without the leading
// redundant-gate sweep; use the Strategy constructors for the full
// preset).
func NewDuplicateGatesCleaner() *DuplicateGates {
	return &DuplicateGates{}
}

// Apply implements Transformer.
func (d *DuplicateGates) Apply(c *circuit.Circuit, enc *circuit.Encoder[string]) (*circuit.Circuit, *circuit.Encoder[string]) {
	order := topo.TopSort(c)

	canonical := make([]circuit.GateID, c.N())
	for i := range canonical {
		canonical[i] = circuit.GateID(-1)
	}
	keyToID := make(map[string]circuit.GateID)

	for _, id := range order {
		info := c.Info(id)
		remapped := make([]circuit.GateID, len(info.Operands))
		for i, op := range info.Operands {
			remapped[i] = resolve(canonical, op)
		}
		if info.Type.Symmetric() {
			sortIDs(remapped)
		}

		key := auxiliaryKey(info.Type, id, remapped)
		if existing, ok := keyToID[key]; ok {
			canonical[id] = existing
			continue
		}
		keyToID[key] = id
		canonical[id] = id
	}

	// Build the compacted gate list from only the surviving
	// (canonical) gates, renumbering as we go.
	oldToNew := make(map[circuit.GateID]circuit.GateID)
	var newGates []circuit.GateInfo
	for _, id := range order {
		if canonical[id] != id {
			continue
		}
		info := c.Info(id)
		ops := make([]circuit.GateID, len(info.Operands))
		for i, op := range info.Operands {
			ops[i] = resolve(canonical, op)
		}
		oldToNew[id] = circuit.GateID(len(newGates))
		newGates = append(newGates, circuit.GateInfo{Type: info.Type, Operands: ops})
	}
	for i := range newGates {
		ops := newGates[i].Operands
		for j, op := range ops {
			ops[j] = oldToNew[resolve(canonical, op)]
		}
	}

	newOutputs := make([]circuit.GateID, len(c.Outputs()))
	for i, o := range c.Outputs() {
		newOutputs[i] = oldToNew[resolve(canonical, o)]
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

// resolve follows the canonical chain until a self-mapped (surviving)
// gate is reached.
func resolve(canonical []circuit.GateID, id circuit.GateID) circuit.GateID {
	for canonical[id] != id {
		id = canonical[id]
	}
	return id
}

func sortIDs(ids []circuit.GateID) {
	for i := 1; i < len(ids); i++ {
		v := ids[i]
		j := i - 1
		for j >= 0 && ids[j] > v {
			ids[j+1] = ids[j]
			j--
		}
		ids[j+1] = v
	}
}

// auxiliaryKey builds the merge key for a gate. INPUT gates never
// merge with one another: each keeps its own original ID baked into
// the key.
func auxiliaryKey(t gate.Type, id circuit.GateID, operands []circuit.GateID) string {
	if t == gate.Input {
		return fmt.Sprintf("INPUT#%d", id)
	}
	var b strings.Builder
	b.WriteString(t.String())
	b.WriteByte('#')
	for i, op := range operands {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(int(op)))
	}
	return b.String()
}
