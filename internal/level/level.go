// Package level implements the recursive depth-parametric descent
// engine behind spec.md §4.9: given K arrays and a per-argument
// effective descent depth, it iterates the leading axis common to the
// arguments still descending, recurses with depth-1 on those, reuses
// arguments that have already reached their target cell rank
// unchanged, and reassembles the per-iteration results back into one
// array as the recursion unwinds. each, rows, and level's own K=1/K=2
// shortcuts are all special cases of one depth assignment handed to
// Apply.
package level

import (
	"math"

	"golang.org/x/exp/slices"

	"github.com/arraylang/loopmod/internal/array"
)

// Caller is the minimal callable contract Apply needs — satisfied by
// machine.Machine's Call-family methods closed over a specific
// function value, so this package never imports package machine
// directly and stays a pure array-shape algorithm.
type Caller interface {
	// CallCatchBreak pushes args (in the order given) and invokes the
	// user function, reporting break instead of pushing a result.
	CallCatchBreak(args ...array.Value) (result array.Value, broke bool, err error)
}

// EffectiveRank clamps a raw rank-list entry to argRank, per spec.md
// §4.9: non-negative entries are capped at argRank; negative entries
// are offset from argRank and floored at 0; +Inf means "whole
// argument" (cell rank == argRank).
func EffectiveRank(entry float64, argRank int) int {
	if math.IsInf(entry, 1) {
		return argRank
	}
	r := int(entry)
	if r >= 0 {
		if r > argRank {
			return argRank
		}
		return r
	}
	cr := argRank + r
	if cr < 0 {
		return 0
	}
	return cr
}

// Depth is the descent depth n_k = argRank - EffectiveRank(entry, argRank).
func Depth(entry float64, argRank int) int {
	return argRank - EffectiveRank(entry, argRank)
}

// Apply descends args in lock-step according to depths, calling fn
// once every argument's remaining depth reaches 0, and reassembling
// results bottom-up. At every level, every argument whose remaining
// depth is still >0 is a descending argument: it is row-indexed and
// its depth decremented by one for the recursive call. Arguments
// already at depth 0 are non-descending and are cloned whole into
// every iteration of the level (front-aligned iteration, per §4.9's
// K>=3 rule and the K=2 "otherwise descend recursively" case).
//
// broke reports whether fn signaled break on some call; when it does,
// the returned result holds only the cells computed before the break,
// with the descended leading dimension shortened to the completed
// count — a genuine partial array, never a splice of raw remaining
// rows (level has no single well-defined "remainder shape" once more
// than one argument is involved, unlike reduce/scan's single-argument
// case).
func Apply(caller Caller, args []array.Value, depths []int) (result array.Value, broke bool, err error) {
	if len(args) == 0 {
		return nil, false, nil
	}

	descending := false
	for _, d := range depths {
		if d > 0 {
			descending = true
			break
		}
	}

	if !descending {
		return caller.CallCatchBreak(slices.Clone(args)...)
	}

	n := -1
	for i, d := range depths {
		if d > 0 {
			rc := args[i].RowCount()
			if n == -1 {
				n = rc
			} else if n != rc {
				return nil, false, prefixMismatch(args, depths)
			}
		}
	}

	cells := make([]array.Value, 0, n)
	for i := 0; i < n; i++ {
		nextArgs := make([]array.Value, len(args))
		nextDepths := make([]int, len(args))
		for k, d := range depths {
			if d > 0 {
				nextArgs[k] = args[k].Row(i)
				nextDepths[k] = d - 1
			} else {
				nextArgs[k] = args[k]
				nextDepths[k] = d
			}
		}
		cell, brokeHere, callErr := Apply(caller, nextArgs, nextDepths)
		if callErr != nil {
			return nil, false, callErr
		}
		if brokeHere {
			if len(cells) == 0 {
				return array.ReassembleEmpty(array.KindNum, array.Shape{}), true, nil
			}
			stacked, stackErr := array.Stack(array.Shape{len(cells)}, cells)
			if stackErr != nil {
				return nil, false, stackErr
			}
			return stacked, true, nil
		}
		cells = append(cells, cell)
	}

	stacked, stackErr := array.Stack(array.Shape{n}, cells)
	if stackErr != nil {
		return nil, false, stackErr
	}
	return stacked, false, nil
}

func prefixMismatch(args []array.Value, depths []int) error {
	return &shapeError{args: args, depths: depths}
}

type shapeError struct {
	args   []array.Value
	depths []int
}

func (e *shapeError) Error() string {
	return "level: arguments descending at the current frame disagree on row count"
}
