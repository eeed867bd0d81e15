package combinator

import (
	"github.com/arraylang/loopmod/internal/array"
	"github.com/arraylang/loopmod/internal/grouping"
	"github.com/arraylang/loopmod/internal/interperr"
)

// groupingCaller adapts a Machine plus a fixed collapse function to
// package grouping's Caller contract.
type groupingCaller struct {
	m Machine
	f array.FnHandle
}

func (c groupingCaller) Call(args ...array.Value) (array.Value, error) {
	if err := call(c.m, c.f, args...); err != nil {
		return nil, err
	}
	return popResult(c.m, c.f, "collapse result")
}

func (c groupingCaller) CallCatchBreak(args ...array.Value) (array.Value, bool, error) {
	broke, err := callCatchBreak(c.m, c.f, args...)
	if err != nil {
		return nil, false, err
	}
	if broke {
		return nil, true, nil
	}
	v, err := popResult(c.m, c.f, "collapse result")
	if err != nil {
		return nil, false, err
	}
	return v, false, nil
}

// Partition pops (f, markers, xs), buckets xs's rows by partition_groups,
// and collapses the resulting groups through f, per spec.md §4.10.
func Partition(m Machine) error {
	f, err := popFunc(m, "function")
	if err != nil {
		return err
	}
	markers, err := m.Pop("markers")
	if err != nil {
		return err
	}
	xs, err := m.Pop("array to partition")
	if err != nil {
		return err
	}

	markerData, ok := array.AsFloats(markers)
	if !ok {
		return interperr.New("partition's markers must be a numeric array")
	}
	if len(markerData) != xs.RowCount() {
		return interperr.Newf("partition's markers must have one entry per row, got %d for %d rows", len(markerData), xs.RowCount())
	}
	recordDispatch(m, "partition", false, false)

	groups := grouping.PartitionGroups(markerData, xs)
	result, err := grouping.CollapseGroups(groupingCaller{m: m, f: f}, m.Signature(f).Args, groups, "partition")
	if err != nil {
		return interperr.Wrap(err, "Cannot partition")
	}
	m.Push(result)
	return nil
}
