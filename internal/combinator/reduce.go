package combinator

import (
	"github.com/arraylang/loopmod/internal/array"
	"github.com/arraylang/loopmod/internal/fastpath"
	"github.com/arraylang/loopmod/internal/interperr"
)

// Reduce pops (f, xs) and left-folds f over the rows of xs, per
// spec.md §4.1. A recognized arithmetic primitive over Num/Byte takes
// the fastpath kernel; everything else re-enters the machine once per
// row.
func Reduce(m Machine) error {
	f, err := popFunc(m, "function")
	if err != nil {
		return err
	}
	xs, err := m.Pop("array to reduce")
	if err != nil {
		return err
	}

	sig := m.Signature(f)
	switch {
	case sig.Args == 2:
		return reduceArity2(m, f, xs)
	case sig.Args == 0 || sig.Args == 1:
		return reduceArity01(m, f, xs, sig.Args)
	default:
		return interperr.Newf("Cannot reduce a function that takes %d arguments", sig.Args)
	}
}

func reduceArity2(m Machine, f array.FnHandle, xs array.Value) error {
	if prim, flipped, ok := m.AsFlippedPrimitive(f); ok {
		if r, handled := fastpath.Reduce(prim, flipped, xs); handled {
			recordDispatch(m, "reduce", true, false)
			m.Push(r)
			return nil
		}
	}
	recordDispatch(m, "reduce", false, false)

	rowCount := xs.RowCount()
	if rowCount == 0 {
		return interperr.New("Cannot reduce empty array")
	}
	rows := xs.Rows()
	acc := rows[0]
	for i := 1; i < len(rows); i++ {
		height := snapshot(m)
		broke, err := callCatchBreak(m, f, rows[i], acc)
		if err != nil {
			return err
		}
		if broke {
			restore(m, height)
			remainder := append([]array.Value{acc}, rows[i+1:]...)
			result, rerr := array.Reassemble(remainder)
			if rerr != nil {
				return interperr.Wrap(rerr, "Cannot reassemble reduce's broken remainder")
			}
			m.Push(result)
			return nil
		}
		acc, err = m.Pop("reduce result")
		if err != nil {
			return err
		}
	}
	m.Push(acc)
	return nil
}

func reduceArity01(m Machine, f array.FnHandle, xs array.Value, args int) error {
	recordDispatch(m, "reduce", false, false)
	rows := xs.Rows()
	var last array.Value
	for i, row := range rows {
		height := snapshot(m)
		var callArgs []array.Value
		if args == 1 {
			callArgs = []array.Value{row}
		}
		broke, err := callCatchBreak(m, f, callArgs...)
		if err != nil {
			return err
		}
		if broke {
			restore(m, height)
			var remainder []array.Value
			if last != nil {
				remainder = append(remainder, last)
			}
			remainder = append(remainder, rows[i+1:]...)
			if len(remainder) == 0 {
				m.Push(array.ReassembleEmpty(xs.Kind(), xs.Shape().Tail()))
				return nil
			}
			result, rerr := array.Reassemble(remainder)
			if rerr != nil {
				return interperr.Wrap(rerr, "Cannot reassemble reduce's broken remainder")
			}
			m.Push(result)
			return nil
		}
		if m.Signature(f).Outputs == 1 {
			v, err := m.Pop("reduce result")
			if err != nil {
				return err
			}
			last = v
		}
	}
	if last == nil {
		m.Push(array.ReassembleEmpty(xs.Kind(), xs.Shape().Tail()))
		return nil
	}
	m.Push(last)
	return nil
}
