//
// Copyright (c) 2019-2022 Markku Rossi
//
// All rights reserved.
//

// Package simplify implements the circuit-rewriting pass ecosystem:
// the shared Transformer contract, sequencing combinators, and the
// cleaner passes that keep a circuit in normal form between
// heavier-weight optimization passes.
package simplify

import "github.com/markkurossi/circsimplify/circuit"

// Transformer is the capability every simplification pass
// implements: it consumes a circuit and its name encoder and
// produces a (possibly smaller, possibly renumbered) replacement
// pair. Implementations never mutate the circuit they are given.
type Transformer interface {
	Apply(c *circuit.Circuit, enc *circuit.Encoder[string]) (*circuit.Circuit, *circuit.Encoder[string])
}

// Func adapts a plain function to the Transformer interface.
type Func func(*circuit.Circuit, *circuit.Encoder[string]) (*circuit.Circuit, *circuit.Encoder[string])

// Apply implements Transformer.
func (f Func) Apply(c *circuit.Circuit, enc *circuit.Encoder[string]) (*circuit.Circuit, *circuit.Encoder[string]) {
	return f(c, enc)
}
