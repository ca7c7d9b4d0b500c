//
// Copyright (c) 2019-2022 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"fmt"
	"math/rand"
)

// NameGenerator mints gate names for passes that synthesize new
// gates (constant-output gadgets, duplicate-operand helpers). Names
// share a prefix drawn from the caller's rng and differ by a running
// counter, so one generator never repeats a name. Generators built
// from equally seeded rngs produce the same names; the passes skip
// any name their encoder already holds.
type NameGenerator struct {
	prefix string
	next   int
}

// NewNameGenerator creates a NameGenerator seeded from rng, tagged
// with tag (typically the pass name) for readability in dumps.
func NewNameGenerator(rng *rand.Rand, tag string) *NameGenerator {
	return &NameGenerator{
		prefix: fmt.Sprintf("__%s_%x", tag, rng.Uint32()),
	}
}

// Next returns the next fresh name from g.
func (g *NameGenerator) Next() string {
	name := fmt.Sprintf("%s_%d", g.prefix, g.next)
	g.next++
	return name
}

// LabelForID formats a GateID with a human-readable "<id> => <name>"
// annotation, the pretty-printed form the CLI's -o-less output mode
// uses (see apps/circsimplify).
func LabelForID[K comparable](id GateID, enc *Encoder[K]) string {
	return fmt.Sprintf("%d => %v", int(id), enc.Name(id))
}
