package combinator

import (
	"github.com/arraylang/loopmod/internal/array"
	"github.com/arraylang/loopmod/internal/fastpath"
	"github.com/arraylang/loopmod/internal/interperr"
)

// Fold pops (f, init, xs) and left-folds f over the rows of xs seeded
// with the explicit init value, per spec.md §4.2. Unlike Reduce, the
// empty-array case is always well-defined: it returns init unchanged.
func Fold(m Machine) error {
	f, err := popFunc(m, "function")
	if err != nil {
		return err
	}
	init, err := m.Pop("initial accumulator")
	if err != nil {
		return err
	}
	xs, err := m.Pop("array to fold")
	if err != nil {
		return err
	}

	sig := m.Signature(f)
	if sig.Args != 2 {
		return interperr.Newf("Cannot fold a function that takes %d arguments", sig.Args)
	}

	if prim, flipped, ok := m.AsFlippedPrimitive(f); ok {
		if initData, isNum := array.AsFloats(init); isNum && len(initData) == 1 {
			if r, handled := fastpath.Fold(prim, flipped, initData[0], xs); handled {
				recordDispatch(m, "fold", true, false)
				m.Push(r)
				return nil
			}
		}
	}
	recordDispatch(m, "fold", false, false)

	acc := init
	rows := xs.Rows()
	for i, row := range rows {
		height := snapshot(m)
		broke, callErr := callCatchBreak(m, f, row, acc)
		if callErr != nil {
			return callErr
		}
		if broke {
			restore(m, height)
			remainder := append([]array.Value{acc}, rows[i+1:]...)
			result, rerr := array.Reassemble(remainder)
			if rerr != nil {
				return interperr.Wrap(rerr, "Cannot reassemble fold's broken remainder")
			}
			m.Push(result)
			return nil
		}
		acc, err = m.Pop("fold result")
		if err != nil {
			return err
		}
	}
	m.Push(acc)
	return nil
}
