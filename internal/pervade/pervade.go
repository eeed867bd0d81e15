// Package pervade implements the shape-conformant binary broadcast rule
// each's two-argument form uses: bin_pervade_generic.
package pervade

import (
	"github.com/arraylang/loopmod/internal/array"
	"github.com/arraylang/loopmod/internal/interperr"
)

// Combine checks that shapeA and shapeB are rank-compatible by
// left-aligned broadcasting — the shorter shape (if any) must be an
// exact prefix of the longer one — and returns the combined shape: the
// longer of the two, or either when they are equal.
func Combine(shapeA, shapeB array.Shape) (array.Shape, error) {
	minLen := len(shapeA)
	if len(shapeB) < minLen {
		minLen = len(shapeB)
	}
	if !array.PrefixEqual(shapeA, shapeB, minLen) {
		return nil, interperr.Newf("shapes %s and %s are not pervasion-compatible", shapeA.Describe(), shapeB.Describe())
	}
	if len(shapeA) >= len(shapeB) {
		return shapeA.Clone(), nil
	}
	return shapeB.Clone(), nil
}

// BroadcastIndex maps a flat index in the combined (larger) shape back
// to the corresponding flat index in a possibly-shorter operand whose
// shape is a left-aligned prefix of the combined shape: each element of
// the shorter operand repeats over a contiguous block of
// combinedLen/operandLen positions.
func BroadcastIndex(flatIdx, combinedLen, operandLen int) int {
	if operandLen == combinedLen || operandLen == 0 {
		return flatIdx
	}
	block := combinedLen / operandLen
	return flatIdx / block
}

// Leaves returns v's leaves expanded to combinedLen entries: entry i is
// the leaf of v that combined-space flat index i maps to.
func Leaves(v array.Value, combinedLen int) []array.Value {
	leaves := array.Leaves(v)
	if len(leaves) == combinedLen {
		return leaves
	}
	out := make([]array.Value, combinedLen)
	for i := 0; i < combinedLen; i++ {
		out[i] = leaves[BroadcastIndex(i, combinedLen, len(leaves))]
	}
	return out
}
