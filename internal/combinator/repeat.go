package combinator

import (
	"math"

	"github.com/arraylang/loopmod/internal/array"
	"github.com/arraylang/loopmod/internal/interperr"
)

// Repeat pops (f, n) and calls f repeatedly against whatever value
// already sits on top of the stack, per spec.md §4.8: n<0 inverts f
// first and repeats |n| times; n=+Inf loops until break; otherwise it
// iterates |n| times, stopping early on break.
func Repeat(m Machine) error {
	f, err := popFunc(m, "function")
	if err != nil {
		return err
	}
	nVal, err := m.Pop("repetition count")
	if err != nil {
		return err
	}

	sig := m.Signature(f)
	if sig.Args != 1 {
		return interperr.Newf("Cannot repeat a function that takes %d arguments", sig.Args)
	}

	data, ok := array.AsFloats(nVal)
	if !ok || len(data) != 1 || nVal.Rank() != 0 {
		return interperr.New("Repetitions must be a single integer or infinity")
	}
	n := data[0]
	if math.IsNaN(n) || (!math.IsInf(n, 0) && n != math.Trunc(n)) {
		return interperr.New("Repetitions must be a single integer or infinity")
	}

	target := f
	if n < 0 {
		inv, err := m.Invert(f)
		if err != nil {
			return err
		}
		target = inv
		n = -n
	}
	recordDispatch(m, "repeat", false, false)

	if math.IsInf(n, 1) {
		for {
			broke, err := m.CallCatchBreak(target)
			if err != nil {
				return err
			}
			if broke {
				return nil
			}
		}
	}

	count := int(n)
	for i := 0; i < count; i++ {
		broke, err := m.CallCatchBreak(target)
		if err != nil {
			return err
		}
		if broke {
			return nil
		}
	}
	return nil
}
