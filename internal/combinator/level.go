package combinator

import (
	"github.com/arraylang/loopmod/internal/array"
	"github.com/arraylang/loopmod/internal/interperr"
	"github.com/arraylang/loopmod/internal/level"
)

// machineCaller adapts a Machine plus a fixed function value to
// package level's Caller contract: push the cell arguments in order,
// invoke f, and report its single popped result alongside break.
type machineCaller struct {
	m Machine
	f array.FnHandle
}

func (c machineCaller) CallCatchBreak(args ...array.Value) (array.Value, bool, error) {
	broke, err := callCatchBreak(c.m, c.f, args...)
	if err != nil {
		return nil, false, err
	}
	if broke {
		return nil, true, nil
	}
	v, err := popResult(c.m, c.f, "level result")
	if err != nil {
		return nil, false, err
	}
	return v, false, nil
}

// Level pops (rankFn, f, arg1, ..., argK), runs rankFn once (no break
// permitted) to obtain the K-entry rank list, and descends each
// argument to its rank-list-implied depth before calling f, per
// spec.md §4.9. k is supplied by the caller since the rank list's
// length is only known once rankFn has actually run — with K=0 itself
// legal as a no-op before any function ever runs.
func Level(m Machine, k int) error {
	rankFn, err := popFunc(m, "rank function")
	if err != nil {
		return err
	}
	f, err := popFunc(m, "function")
	if err != nil {
		return err
	}
	args := make([]array.Value, k)
	for i := range args {
		v, err := m.Pop("array")
		if err != nil {
			return err
		}
		args[i] = v
	}

	if k == 0 {
		recordDispatch(m, "level", false, false)
		return nil
	}

	if callErr := m.CallErrorOnBreak(rankFn, "break is not allowed while computing level's rank list"); callErr != nil {
		return callErr
	}
	rankList, err := m.Pop("rank list")
	if err != nil {
		return err
	}
	ranks, ok := array.AsFloats(rankList)
	if !ok || len(ranks) != k {
		return interperr.Newf("level's rank function must produce exactly %d rank entries, got %d", k, len(ranks))
	}

	depths := make([]int, k)
	for i, r := range ranks {
		depths[i] = level.Depth(r, args[i].Rank())
	}
	recordDispatch(m, "level", false, false)

	result, _, err := level.Apply(machineCaller{m: m, f: f}, args, depths)
	if err != nil {
		return interperr.Wrap(err, "Cannot align level's arguments")
	}
	m.Push(result)
	return nil
}
