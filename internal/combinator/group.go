package combinator

import (
	"github.com/arraylang/loopmod/internal/array"
	"github.com/arraylang/loopmod/internal/grouping"
	"github.com/arraylang/loopmod/internal/interperr"
)

// Group pops (f, indices, xs), buckets xs's rows by group_groups, and
// collapses the resulting buckets through f, per spec.md §4.10.
func Group(m Machine) error {
	f, err := popFunc(m, "function")
	if err != nil {
		return err
	}
	indices, err := m.Pop("indices")
	if err != nil {
		return err
	}
	xs, err := m.Pop("array to group")
	if err != nil {
		return err
	}

	indexData, ok := array.AsFloats(indices)
	if !ok {
		return interperr.New("group's indices must be a numeric array")
	}
	if len(indexData) != xs.RowCount() {
		return interperr.Newf("group's indices must have one entry per row, got %d for %d rows", len(indexData), xs.RowCount())
	}
	recordDispatch(m, "group", false, false)

	groups := grouping.GroupGroups(indexData, xs)
	result, err := grouping.CollapseGroups(groupingCaller{m: m, f: f}, m.Signature(f).Args, groups, "group")
	if err != nil {
		return interperr.Wrap(err, "Cannot group")
	}
	m.Push(result)
	return nil
}
