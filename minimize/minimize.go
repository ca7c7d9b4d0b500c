//
// Copyright (c) 2019-2022 Markku Rossi
//
// All rights reserved.
//

// Package minimize implements the three-input subcircuit minimizer:
// the flagship simplification pass. For every three-colored
// subcircuit it computes the subcircuit's truth table under each of
// the six parent permutations, classifies trivially-primitive gates,
// identifies the subcircuit's outputs, looks the canonical pattern
// up in a patterndb.DB, and splices in the database's smaller
// realization when it saves real operator gates.
package minimize

import (
	"github.com/markkurossi/circsimplify/circuit"
	"github.com/markkurossi/circsimplify/color"
	"github.com/markkurossi/circsimplify/gate"
	"github.com/markkurossi/circsimplify/logger"
	"github.com/markkurossi/circsimplify/patterndb"
)

// seedPatterns are the three canonical 8-bit truth tables used to
// seed a subcircuit's three parents before bitwise propagation:
// one input varies across the high nibble, one across pairs of two
// bits, one alternates every bit.
var seedPatterns = [3]byte{0xF0, 0xCC, 0xAA}

// perms enumerates the six permutations of three parent positions,
// matching the reference algorithm's exhaustive parent-order search.
var perms = [6][3]int{
	{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0},
}

// Stats accumulates per-call counters a caller can fold into a
// statistics report.
type Stats struct {
	ColorsExamined int
	SkippedStale   int
	SkippedTooManyOutputs int
	SkippedDBMiss  int
	Spliced        int
	GatesSaved     int
}

// Minimizer runs the three-input subcircuit minimization pass
// against a fixed pattern database and operator basis.
type Minimizer struct {
	basis patterndb.Basis
	db    *patterndb.DB
	log   *logger.Logger
}

// ThreeInputMinimizer is New under the name the shipping strategy
// presets reference; both construct the same value.
func ThreeInputMinimizer(basis patterndb.Basis, db *patterndb.DB) *Minimizer {
	return New(basis, db)
}

// New builds a Minimizer. db must have been loaded for basis; New
// panics otherwise, per this module's programmer-error policy for
// invariant mismatches.
func New(basis patterndb.Basis, db *patterndb.DB) *Minimizer {
	if db == nil {
		panic("minimize: New called with a nil pattern database")
	}
	if db.Basis() != basis {
		panic("minimize: pattern database basis does not match requested basis")
	}
	return &Minimizer{basis: basis, db: db, log: logger.NewStderr("minimize")}
}

// Apply implements simplify.Transformer. It runs exactly one
// minimization sweep and discards Run's rewrite flag; simplify.Nest
// repeats it a fixed number of times and does not stop early when a
// sweep makes no rewrite.
func (m *Minimizer) Apply(c *circuit.Circuit, enc *circuit.Encoder[string]) (*circuit.Circuit, *circuit.Encoder[string]) {
	out, outEnc, _, _ := m.Run(c, enc)
	return out, outEnc
}

// Run performs one minimization sweep and reports whether any
// subcircuit was rewritten, plus the sweep's statistics.
func (m *Minimizer) Run(c *circuit.Circuit, enc *circuit.Encoder[string]) (*circuit.Circuit, *circuit.Encoder[string], bool, Stats) {
	two := color.NewTwoColoring(c)
	three := color.NewThreeColoring(c, two)

	stale := make(map[circuit.GateID]bool)

	var stats Stats
	changed := false

	gates := append([]circuit.GateInfo(nil), snapshot(c)...)
	removed := make([]bool, len(gates))

	for idx := range three.Colors {
		colorID := color.ThreeColorID(idx)
		stats.ColorsExamined++
		parents := three.Colors[idx].Parents
		if stale[parents[0]] || stale[parents[1]] || stale[parents[2]] {
			stats.SkippedStale++
			continue
		}

		sub := gather(c, three, colorID, parents)
		if len(sub) == 0 {
			continue
		}
		subStale := false
		for _, g := range sub {
			if stale[g] {
				subStale = true
				break
			}
		}
		if subStale {
			stats.SkippedStale++
			continue
		}

		outputs, patternsByPerm, deduped, outputOK := m.computeOutputs(c, sub, parents)
		if !outputOK {
			stats.SkippedTooManyOutputs++
			continue
		}

		if len(outputs) == 1 {
			if t, ops, ok := primitiveOf(patternsByPerm[0][0], parents); ok {
				currentCost := countRealOperators(c, sub)
				if currentCost > 0 {
					splicePrimitive(&gates, &removed, sub, outputs[0], t, ops)
					spliceDeduped(&gates, &removed, deduped)
					for _, g := range sub {
						stale[g] = true
					}
					stats.Spliced++
					stats.GatesSaved += currentCost
					changed = true
					continue
				}
			}
		}

		rec, _, permIdx, ok := m.lookup(patternsByPerm)
		if !ok {
			stats.SkippedDBMiss++
			continue
		}

		currentCost := countRealOperators(c, sub)
		if rec.RealOperatorCount >= currentCost {
			continue
		}

		m.splice(&gates, &removed, sub, outputs, patternsByPerm[permIdx], parents, perms[permIdx], rec)
		spliceDeduped(&gates, &removed, deduped)
		for _, g := range sub {
			stale[g] = true
		}
		stats.Spliced++
		stats.GatesSaved += currentCost - rec.RealOperatorCount
		changed = true
	}

	newCircuit, newEnc := compact(gates, removed, c, enc)
	return newCircuit, newEnc, changed, stats
}

// snapshot copies c's gates into a slice indexed by GateID, for the
// in-place splice buffer Run mutates.
func snapshot(c *circuit.Circuit) []circuit.GateInfo {
	out := make([]circuit.GateInfo, c.N())
	for id := 0; id < c.N(); id++ {
		out[id] = c.Info(circuit.GateID(id))
	}
	return out
}

// gather collects a three-color's subcircuit: the color's own
// gates plus the immediate NOT users of any parent (SPEC_FULL.md
// 5.12 step 2). Two-parent exclusive gates are already folded into
// the three-color's own gate set by ThreeColoring's construction.
func gather(c *circuit.Circuit, three *color.ThreeColoring, colorID color.ThreeColorID, parents [3]circuit.GateID) []circuit.GateID {
	var out []circuit.GateID
	seen := make(map[circuit.GateID]bool)
	for gid, colors := range three.GateColors {
		for _, col := range colors {
			if col == colorID && !seen[gid] {
				seen[gid] = true
				out = append(out, gid)
			}
		}
	}
	for _, p := range parents {
		for _, u := range c.Users(p) {
			if c.Type(u) == gate.Not && !seen[u] {
				seen[u] = true
				out = append(out, u)
			}
		}
	}
	return out
}

// countRealOperators counts the non-NOT gates among sub.
func countRealOperators(c *circuit.Circuit, sub []circuit.GateID) int {
	n := 0
	for _, id := range sub {
		switch c.Type(id) {
		case gate.And, gate.Nand, gate.Or, gate.Nor, gate.Xor, gate.Nxor:
			n++
		}
	}
	return n
}

// propagate computes the 8-bit truth table of every gate in sub
// (plus the three parents) under one parent permutation, by a
// topologically-ordered bitwise evaluation. A gate with an operand
// outside sub and the parents gets no entry in the result.
func propagate(c *circuit.Circuit, sub []circuit.GateID, parents [3]circuit.GateID, perm [3]int) map[circuit.GateID]byte {
	pattern := make(map[circuit.GateID]byte, len(sub)+3)
	for i, p := range parents {
		pattern[p] = seedPatterns[perm[i]]
	}

	order := make([]circuit.GateID, len(sub))
	copy(order, sub)
	// Stable topological order within the subcircuit: a gate's
	// operands, if themselves in sub, must already have a pattern.
	// Repeated passes over the small subcircuit converge quickly
	// without a separate topo sort structure.
	resolved := make(map[circuit.GateID]bool)
	for p := range pattern {
		resolved[p] = true
	}
	for pass := 0; pass < len(order)+1; pass++ {
		progressed := false
		for _, id := range order {
			if resolved[id] {
				continue
			}
			ready := true
			for _, op := range c.Operands(id) {
				if _, ok := pattern[op]; !ok {
					ready = false
					break
				}
			}
			if !ready {
				continue
			}
			pattern[id] = evalByte(c, id, pattern)
			resolved[id] = true
			progressed = true
		}
		if !progressed {
			break
		}
	}
	return pattern
}

func evalByte(c *circuit.Circuit, id circuit.GateID, pattern map[circuit.GateID]byte) byte {
	t := c.Type(id)
	ops := c.Operands(id)
	switch t {
	case gate.Not:
		return 0xFF ^ pattern[ops[0]]
	case gate.Iff, gate.Buff:
		return pattern[ops[0]]
	case gate.And:
		v := pattern[ops[0]]
		for _, op := range ops[1:] {
			v &= pattern[op]
		}
		return v
	case gate.Nand:
		v := pattern[ops[0]]
		for _, op := range ops[1:] {
			v &= pattern[op]
		}
		return 0xFF ^ v
	case gate.Or:
		v := pattern[ops[0]]
		for _, op := range ops[1:] {
			v |= pattern[op]
		}
		return v
	case gate.Nor:
		v := pattern[ops[0]]
		for _, op := range ops[1:] {
			v |= pattern[op]
		}
		return 0xFF ^ v
	case gate.Xor:
		v := pattern[ops[0]]
		for _, op := range ops[1:] {
			v ^= pattern[op]
		}
		return v
	case gate.Nxor:
		v := pattern[ops[0]]
		for _, op := range ops[1:] {
			v ^= pattern[op]
		}
		return 0xFF ^ v
	case gate.ConstFalse:
		return 0x00
	case gate.ConstTrue:
		return 0xFF
	default:
		panic("minimize: unsupported gate type in propagation: " + t.String())
	}
}

// primitiveOf classifies a single byte pattern as directly
// expressible in terms of the three parents, per the eight special
// patterns in SPEC_FULL.md 5.12 step 4. ok is false if pattern is
// not primitive.
func primitiveOf(pattern byte, parents [3]circuit.GateID) (gate.Type, []circuit.GateID, bool) {
	switch pattern {
	case 0x00:
		return gate.ConstFalse, nil, true
	case 0xFF:
		return gate.ConstTrue, nil, true
	case 0xF0:
		return gate.Iff, []circuit.GateID{parents[0]}, true
	case 0xCC:
		return gate.Iff, []circuit.GateID{parents[1]}, true
	case 0xAA:
		return gate.Iff, []circuit.GateID{parents[2]}, true
	case 0x0F:
		return gate.Not, []circuit.GateID{parents[0]}, true
	case 0x33:
		return gate.Not, []circuit.GateID{parents[1]}, true
	case 0x55:
		return gate.Not, []circuit.GateID{parents[2]}, true
	default:
		return 0, nil, false
	}
}

// dedupedOutput records a boundary sub-gate whose truth table
// duplicated (or complemented) an already-collected output: id is
// not added to the output set the database is consulted with, but
// must still be rewired to read from target once the subcircuit is
// spliced, since gates outside the color may reference id directly.
type dedupedOutput struct {
	id         circuit.GateID
	target     circuit.GateID
	complement bool
}

// computeOutputs identifies sub's output gates -- a sub-gate that is
// a circuit output or has a user outside the color -- applying the
// dedup heuristic (exact-match pass-through, complement-match NOT)
// from SPEC_FULL.md 5.12 step 5, under the identity permutation, and
// then computes each output's truth table under every one of the six
// parent permutations for the DB lookup. ok is false if more than
// three distinct outputs remain, or if an output's truth table is
// not determined by the three parents. A duplicate boundary gate is not
// added to outputs but is reported in deduped so the caller can
// rewrite it in place to reference the output it duplicates, rather
// than drop it and leave its external users dangling
// (three_inputs_optimization.hpp's in-place AND(prev,prev)/NOT(prev)
// rewrite).
func (m *Minimizer) computeOutputs(c *circuit.Circuit, sub []circuit.GateID, parents [3]circuit.GateID) ([]circuit.GateID, [6][]byte, []dedupedOutput, bool) {
	var patternsByPerm [6][]byte

	inSub := make(map[circuit.GateID]bool, len(sub))
	for _, id := range sub {
		inSub[id] = true
	}

	pattern0 := propagate(c, sub, parents, perms[0])

	var outputs []circuit.GateID
	var outPatterns0 []byte
	var deduped []dedupedOutput
	for _, id := range sub {
		isBoundary := c.IsOutput(id)
		if !isBoundary {
			for _, u := range c.Users(id) {
				if !inSub[u] {
					isBoundary = true
					break
				}
			}
		}
		if !isBoundary {
			continue
		}
		p, ok := pattern0[id]
		if !ok {
			return nil, patternsByPerm, nil, false
		}

		matched := false
		for k, existing := range outPatterns0 {
			if existing == p {
				deduped = append(deduped, dedupedOutput{id: id, target: outputs[k], complement: false})
				matched = true
				break
			}
			if existing == 0xFF^p {
				deduped = append(deduped, dedupedOutput{id: id, target: outputs[k], complement: true})
				matched = true
				break
			}
		}
		if matched {
			continue
		}

		outputs = append(outputs, id)
		outPatterns0 = append(outPatterns0, p)
		if len(outputs) > 3 {
			return nil, patternsByPerm, nil, false
		}
	}

	for permIdx, perm := range perms {
		pat := propagate(c, sub, parents, perm)
		for _, id := range outputs {
			patternsByPerm[permIdx] = append(patternsByPerm[permIdx], pat[id])
		}
	}
	return outputs, patternsByPerm, deduped, true
}

// lookup tries every parent permutation until the database has a
// matching record.
func (m *Minimizer) lookup(patternsByPerm [6][]byte) (*patterndb.Record, int, int, bool) {
	for permIdx, patterns := range patternsByPerm {
		if len(patterns) == 0 {
			continue
		}
		if rec, idx, ok := m.db.Lookup(patterns); ok {
			return rec, idx, permIdx, true
		}
	}
	return nil, 0, 0, false
}

// splicePrimitive rewrites a single-output subcircuit directly to
// one of the eight trivially-primitive gates, bypassing the pattern
// database entirely -- the fast path in SPEC_FULL.md 5.12 step 4.
func splicePrimitive(gates *[]circuit.GateInfo, removed *[]bool, sub []circuit.GateID, output circuit.GateID, t gate.Type, ops []circuit.GateID) {
	(*gates)[output] = circuit.GateInfo{Type: t, Operands: append([]circuit.GateID(nil), ops...)}
	for _, id := range sub {
		if id != output {
			(*removed)[id] = true
		}
	}
}

// spliceDeduped rewrites every deduped boundary gate in place to
// reference the output it duplicates -- AND(target,target) for an
// exact match, NOT(target) for a complement -- and un-marks it
// removed, since splice/splicePrimitive's sweep over sub already
// marked every non-output gate removed before this runs.
func spliceDeduped(gates *[]circuit.GateInfo, removed *[]bool, deduped []dedupedOutput) {
	for _, d := range deduped {
		if d.complement {
			(*gates)[d.id] = circuit.GateInfo{Type: gate.Not, Operands: []circuit.GateID{d.target}}
		} else {
			(*gates)[d.id] = circuit.GateInfo{Type: gate.And, Operands: []circuit.GateID{d.target, d.target}}
		}
		(*removed)[d.id] = false
	}
}

// splice overwrites the subcircuit's gates in place with the
// database record's realization. Every database gate position is
// written exactly once before any gate that referenced the old
// subcircuit is repointed -- the deliberate fix to the reference
// implementation's documented placeholder-NOT quirk (SPEC_FULL.md
// 10).
func (m *Minimizer) splice(gates *[]circuit.GateInfo, removed *[]bool, sub []circuit.GateID, outputs []circuit.GateID, outputPatterns []byte, parents [3]circuit.GateID, perm [3]int, rec *patterndb.Record) {
	posToGate := make(map[int]circuit.GateID, len(rec.Gates)+3)
	for i, p := range perm {
		posToGate[i] = parents[p]
	}

	// outputs and outputPatterns are index-aligned (computeOutputs
	// builds them together); rec.OutputIDs/rec.OutputPatterns are
	// aligned with each other but in the database's own order, so
	// align the two lists by matching truth-table value rather than
	// position -- the sorted lookup key only guarantees the two
	// multisets match, not their order.
	used := make([]bool, len(outputs))
	for i, outID := range rec.OutputIDs {
		want := rec.OutputPatterns[i]
		matched := false
		for j, p := range outputPatterns {
			if !used[j] && p == want {
				posToGate[outID] = outputs[j]
				used[j] = true
				matched = true
				break
			}
		}
		if !matched {
			panic("minimize: database output pattern has no matching subcircuit output")
		}
	}

	for pos := rec.InputsCount; pos < rec.InputsCount+len(rec.Gates); pos++ {
		if _, already := posToGate[pos]; already {
			continue
		}
		id := circuit.GateID(len(*gates))
		*gates = append(*gates, circuit.GateInfo{})
		*removed = append(*removed, false)
		posToGate[pos] = id
	}

	for i, gr := range rec.Gates {
		pos := rec.InputsCount + i
		id := posToGate[pos]
		ops := make([]circuit.GateID, len(gr.Operands))
		for j, opPos := range gr.Operands {
			g, ok := posToGate[opPos]
			if !ok {
				panic("minimize: database gate references an unmapped position")
			}
			ops[j] = g
		}
		(*gates)[id] = circuit.GateInfo{Type: gr.Type, Operands: ops}
	}

	for _, id := range sub {
		isNewTarget := false
		for _, outID := range outputs {
			if id == outID {
				isNewTarget = true
			}
		}
		if !isNewTarget {
			(*removed)[id] = true
		}
	}
}

// compact drops every gate marked removed, renumbering the survivors
// and rewiring operand/output references accordingly.
func compact(gates []circuit.GateInfo, removed []bool, orig *circuit.Circuit, enc *circuit.Encoder[string]) (*circuit.Circuit, *circuit.Encoder[string]) {
	oldToNew := make(map[circuit.GateID]circuit.GateID, len(gates))
	var newGates []circuit.GateInfo
	for id, g := range gates {
		if removed[id] {
			continue
		}
		oldToNew[circuit.GateID(id)] = circuit.GateID(len(newGates))
		newGates = append(newGates, g)
	}
	for i := range newGates {
		ops := newGates[i].Operands
		for j, op := range ops {
			ops[j] = oldToNew[op]
		}
	}

	newOutputs := make([]circuit.GateID, len(orig.Outputs()))
	for i, o := range orig.Outputs() {
		newOutputs[i] = oldToNew[o]
	}

	newToOld := make(map[circuit.GateID]circuit.GateID, len(oldToNew))
	for old, n := range oldToNew {
		newToOld[n] = old
	}

	newCircuit := circuit.New(newGates, newOutputs)
	origN := orig.N()
	newEnc := circuit.Rebuild(len(newGates), func(id circuit.GateID) string {
		old := newToOld[id]
		if int(old) < origN {
			return enc.Name(old)
		}
		return "__minimize_" + old.String()
	})
	return newCircuit, newEnc
}
