//
// Copyright (c) 2019-2022 Markku Rossi
//
// All rights reserved.
//

package simplify

import (
	"github.com/markkurossi/circsimplify/minimize"
	"github.com/markkurossi/circsimplify/patterndb"
)

// The named strategy presets below match the shipping CLI's
// applyPreprocessing pipeline: each builds a Transformer from the
// individual cleaner passes in the order the reference
// implementation's strategy.hpp composes them.

// RedundantGatesCleaner builds the standalone C9 preset.
func RedundantGatesCleaner() Transformer {
	return NewRedundantGatesCleaner()
}

// DuplicateGatesCleaner builds the C9 -> C10 preset: dead gates must
// be swept before auxiliary-key merging runs.
func DuplicateGatesCleaner() Transformer {
	return Compose(
		NewRedundantGatesCleaner(),
		NewDuplicateGatesCleaner(),
	)
}

// ReduceNotComposition builds the C12 -> C9 preset: collapsing
// NOT-of-NOT chains always leaves some NOT gates dead.
func ReduceNotComposition() Transformer {
	return Compose(
		NewReduceNotCompositionPass(),
		NewRedundantGatesCleaner(),
	)
}

// ConstantGateReducer builds the C13 -> C12 -> C9 -> C10 preset.
func ConstantGateReducer() Transformer {
	return Compose(
		NewConstantGateReducerPass(),
		NewReduceNotCompositionPass(),
		NewRedundantGatesCleaner(),
		NewDuplicateGatesCleaner(),
	)
}

// DuplicateOperandsCleaner builds the full normalization sweep used
// between every pass of the flagship minimizer: C9 -> C11 -> C9
// (preserving inputs) -> C13 -> C12 -> C9 -> C10.
func DuplicateOperandsCleaner() Transformer {
	return Compose(
		NewRedundantGatesCleaner(),
		NewDuplicateOperandsCleanerPass(),
		NewRedundantGatesCleanerPreserveInputs(),
		NewConstantGateReducerPass(),
		NewReduceNotCompositionPass(),
		NewRedundantGatesCleaner(),
		NewDuplicateGatesCleaner(),
	)
}

// EndToEnd builds the full shipping pipeline: five rounds of
// normalize-then-minimize, followed by one final normalization pass
// to sweep up whatever the last minimizer sweep left behind.
func EndToEnd(basis patterndb.Basis, db *patterndb.DB) Transformer {
	return Compose(
		NestTimes(5, DuplicateOperandsCleaner(), minimize.ThreeInputMinimizer(basis, db)),
		DuplicateOperandsCleaner(),
	)
}
