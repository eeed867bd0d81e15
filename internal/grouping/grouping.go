// Package grouping implements the bucketing and collapse machinery
// behind partition and group (spec.md §4.10): partition_groups and
// group_groups both produce a sequence of row buckets in reverse
// insertion/bucket order, and collapse_groups folds that sequence
// through a user function according to its arity.
package grouping

import (
	"fmt"

	"github.com/arraylang/loopmod/internal/array"
)

// Group is one bucket of rows, in original row order within the
// bucket.
type Group struct {
	Rows []array.Value
}

// PartitionGroups implements partition_groups: markers is read
// positionally against xs's rows. A run of consecutive rows sharing
// the same positive marker forms one group; the group boundary is any
// change in marker value (not just a change in sign), and markers <= 0
// drop their row entirely. Groups come back in reverse insertion
// order.
func PartitionGroups(markers []float64, xs array.Value) []Group {
	var groups []Group
	var current *Group
	var currentMarker float64
	open := false

	for i, m := range markers {
		if m <= 0 {
			open = false
			current = nil
			continue
		}
		if !open || m != currentMarker {
			groups = append(groups, Group{})
			current = &groups[len(groups)-1]
			currentMarker = m
			open = true
		}
		current.Rows = append(current.Rows, xs.Row(i))
	}

	reversed := make([]Group, len(groups))
	for i, g := range groups {
		reversed[len(groups)-1-i] = g
	}
	return reversed
}

// GroupGroups implements group_groups: indices assigns each row of xs
// to bucket index indices[i] (rows with a negative index are dropped).
// Buckets run from 0 to max(indices, default=-1); empty buckets are
// retained so the output always has max(indices)+1 entries. Buckets
// come back in reverse order.
func GroupGroups(indices []float64, xs array.Value) []Group {
	maxIdx := -1
	for _, g := range indices {
		if gi := int(g); gi > maxIdx {
			maxIdx = gi
		}
	}
	buckets := make([]Group, maxIdx+1)
	for i, g := range indices {
		gi := int(g)
		if gi < 0 {
			continue
		}
		buckets[gi].Rows = append(buckets[gi].Rows, xs.Row(i))
	}

	reversed := make([]Group, len(buckets))
	for i, b := range buckets {
		reversed[len(buckets)-1-i] = b
	}
	return reversed
}

// Caller is the minimal callable contract CollapseGroups needs,
// mirroring package level's Caller: push args in the given order,
// invoke the user function, and report its single result plus break.
type Caller interface {
	Call(args ...array.Value) (result array.Value, err error)
	CallCatchBreak(args ...array.Value) (result array.Value, broke bool, err error)
}

// CollapseGroups implements collapse_groups: arity 0/1 maps each group
// through f (break disallowed) and reassembles; arity 2 reduces the
// group stream left-to-right with an explicit accumulator-first seed
// of the first group, supporting break. name appears in the arity
// error so partition and group report their own combinator name.
func CollapseGroups(caller Caller, fArgs int, groups []Group, name string) (array.Value, error) {
	switch {
	case fArgs == 0 || fArgs == 1:
		return collapseMap(caller, fArgs, groups, name)
	case fArgs == 2:
		return collapseReduce(caller, groups, name)
	default:
		return nil, fmt.Errorf("cannot %s with a function that takes %d arguments", name, fArgs)
	}
}

func collapseMap(caller Caller, fArgs int, groups []Group, name string) (array.Value, error) {
	results := make([]array.Value, 0, len(groups))
	for _, g := range groups {
		cell, err := groupCell(g)
		if err != nil {
			return nil, err
		}
		var callArgs []array.Value
		if fArgs == 1 {
			callArgs = []array.Value{cell}
		}
		r, broke, err := caller.CallCatchBreak(callArgs...)
		if err != nil {
			return nil, err
		}
		if broke {
			return nil, fmt.Errorf("break is not allowed in %s", name)
		}
		results = append(results, r)
	}
	if len(results) == 0 {
		return array.ReassembleEmpty(array.KindNum, array.Shape{}), nil
	}
	return array.Stack(array.Shape{len(results)}, results)
}

// collapseReduce folds f across the group stream left-to-right. Each
// group is itself reduced over its rows first (the same left-fold f
// uses, seeded by the group's own first row), producing one value per
// group; those per-group values are then folded together the same
// way. This nesting is what the worked example in spec.md §8 requires:
// group(+, [0 1 0 1 2], [a b c d e]) yields
// (((e) + (b+d)) + (a+c)), not a flat fold over every row.
func collapseReduce(caller Caller, groups []Group, name string) (array.Value, error) {
	if len(groups) == 0 {
		return nil, fmt.Errorf("empty groups stream for %s", name)
	}

	groupValues := make([]array.Value, len(groups))
	for gi, g := range groups {
		if len(g.Rows) == 0 {
			return nil, fmt.Errorf("empty group in %s's reduce", name)
		}
		acc := g.Rows[0]
		for _, row := range g.Rows[1:] {
			r, broke, err := caller.CallCatchBreak(row, acc)
			if err != nil {
				return nil, err
			}
			if broke {
				return acc, nil
			}
			acc = r
		}
		groupValues[gi] = acc
	}

	acc := groupValues[0]
	for _, gv := range groupValues[1:] {
		r, broke, err := caller.CallCatchBreak(gv, acc)
		if err != nil {
			return nil, err
		}
		if broke {
			return acc, nil
		}
		acc = r
	}
	return acc, nil
}

// groupCell reassembles a group's rows into one array value — the
// "group as a single cell" a 0/1-arg f or the reduce accumulator
// operates over.
func groupCell(g Group) (array.Value, error) {
	if len(g.Rows) == 0 {
		return array.ReassembleEmpty(array.KindNum, array.Shape{}), nil
	}
	return array.Stack(array.Shape{len(g.Rows)}, g.Rows)
}
