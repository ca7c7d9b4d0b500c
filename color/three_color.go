//
// Copyright (c) 2019-2022 Markku Rossi
//
// All rights reserved.
//

package color

import (
	"sort"

	"github.com/markkurossi/circsimplify/circuit"
	"github.com/markkurossi/circsimplify/gate"
	"github.com/markkurossi/circsimplify/topo"
)

// ThreeColorID identifies a three-coloring color.
type ThreeColorID int

// ThreeColor is a color's defining ordered triple of parent gates.
type ThreeColor struct {
	Parents [3]circuit.GateID
}

// ThreeColoring extends TwoColoring to ordered triples of parents. A
// gate may carry up to two three-colors (SPEC_FULL.md 5.10): this
// happens when a gate's two two-colored children disagree on the
// third parent, so the gate plausibly belongs to two distinct
// minimizable triples.
type ThreeColoring struct {
	Two   *TwoColoring
	Colors []ThreeColor

	// GateColors maps a gate to the (up to two) three-colors it
	// belongs to.
	GateColors map[circuit.GateID][]ThreeColorID

	// NegationUsers records, for each gate, whether it has an
	// immediate NOT user -- information the minimizer needs when
	// deciding how far a subcircuit's output boundary extends.
	NegationUsers map[circuit.GateID]bool

	colorIndex map[ThreeColor]ThreeColorID
}

func orderedTriple(a, b, c circuit.GateID) ThreeColor {
	t := [3]circuit.GateID{a, b, c}
	sort.Slice(t[:], func(i, j int) bool { return t[i] < t[j] })
	return ThreeColor{Parents: t}
}

func (tc *ThreeColoring) colorFor(t ThreeColor) ThreeColorID {
	if id, ok := tc.colorIndex[t]; ok {
		return id
	}
	id := ThreeColorID(len(tc.Colors))
	tc.Colors = append(tc.Colors, t)
	tc.colorIndex[t] = id
	return id
}

func (tc *ThreeColoring) paint(id circuit.GateID, color ThreeColorID) {
	for _, existing := range tc.GateColors[id] {
		if existing == color {
			return
		}
	}
	if len(tc.GateColors[id]) >= 2 {
		return
	}
	tc.GateColors[id] = append(tc.GateColors[id], color)
}

// twoParents returns the two-color parent pair for id, or ok=false
// if id was not two-colored.
func (tc *ThreeColoring) twoParents(id circuit.GateID) (circuit.GateID, circuit.GateID, bool) {
	col, ok := tc.Two.GateColor[id]
	if !ok {
		return 0, 0, false
	}
	p := tc.Two.Colors[col]
	return p.Parent0, p.Parent1, true
}

// NewThreeColoring builds the three-coloring of c on top of an
// already-computed two-coloring.
func NewThreeColoring(c *circuit.Circuit, two *TwoColoring) *ThreeColoring {
	tc := &ThreeColoring{
		Two:           two,
		GateColors:    make(map[circuit.GateID][]ThreeColorID),
		NegationUsers: make(map[circuit.GateID]bool),
		colorIndex:    make(map[ThreeColor]ThreeColorID),
	}

	for id := 0; id < c.N(); id++ {
		gid := circuit.GateID(id)
		if c.Type(gid) != gate.Not {
			continue
		}
		ops := c.Operands(gid)
		if len(ops) == 1 {
			tc.NegationUsers[ops[0]] = true
		}
	}

	order := topo.TopSort(c)
	for _, id := range order {
		switch c.Type(id) {
		case gate.And, gate.Nand, gate.Or, gate.Nor, gate.Xor, gate.Nxor:
		default:
			continue
		}
		ops := c.Operands(id)
		if len(ops) != 2 {
			continue
		}
		c1 := collapseUnary(c, ops[0])
		c2 := collapseUnary(c, ops[1])

		p1a, p1b, ok1 := tc.twoParents(c1)
		p2a, p2b, ok2 := tc.twoParents(c2)

		switch {
		case ok1 && ok2:
			// 2-2: the gate's two children each carry a two-color
			// pair; form up to two ordered triples by combining one
			// child's pair with the other child's endpoint closest
			// to forming a fresh anchor.
			tc.paint(id, tc.colorFor(orderedTriple(p1a, p1b, c2)))
			tc.paint(id, tc.colorFor(orderedTriple(p2a, p2b, c1)))
		case ok1 && !ok2:
			// 2-1: one child is two-colored, the other is a bare
			// gate/input -- anchor the triple on the colored pair
			// plus the plain child.
			tc.paint(id, tc.colorFor(orderedTriple(p1a, p1b, c2)))
		case !ok1 && ok2:
			// 1-2, symmetric to the above.
			tc.paint(id, tc.colorFor(orderedTriple(p2a, p2b, c1)))
		default:
			// 1-1: neither child carries a two-color; the gate
			// itself becomes the anchor of a fresh triple candidate
			// rooted at its own two operands plus itself, so a
			// parent two levels up still has something to combine
			// with.
			tc.paint(id, tc.colorFor(orderedTriple(c1, c2, id)))
		}

		// Fold in colors already painted on c1/c2 themselves (the
		// cascades the reference algorithm calls 3-3/3-2/3-1/2-3/1-3):
		// a gate inherits every three-color its children already
		// carry, subject only to paint's cap.
		for _, col := range tc.GateColors[c1] {
			tc.paint(id, col)
		}
		for _, col := range tc.GateColors[c2] {
			tc.paint(id, col)
		}
	}

	return tc
}
