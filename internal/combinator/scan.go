package combinator

import (
	"github.com/arraylang/loopmod/internal/array"
	"github.com/arraylang/loopmod/internal/fastpath"
	"github.com/arraylang/loopmod/internal/interperr"
)

// Scan pops (f, xs) and produces an array of xs's shape whose row/element
// i is f folded left-to-right over rows/elements 0..=i, per spec.md
// §4.3.
func Scan(m Machine) error {
	f, err := popFunc(m, "function")
	if err != nil {
		return err
	}
	xs, err := m.Pop("array to scan")
	if err != nil {
		return err
	}

	if xs.Rank() == 0 {
		return interperr.New("Cannot scan rank 0 array")
	}

	sig := m.Signature(f)
	if sig.Args != 2 {
		return interperr.Newf("Cannot scan a function that takes %d arguments", sig.Args)
	}

	if prim, flipped, ok := m.AsFlippedPrimitive(f); ok {
		if r, handled := fastpath.Scan(prim, flipped, xs); handled {
			recordDispatch(m, "scan", true, false)
			m.Push(r)
			return nil
		}
	}
	recordDispatch(m, "scan", false, false)

	rowCount := xs.RowCount()
	if rowCount == 0 {
		m.Push(array.ReassembleEmpty(xs.Kind(), xs.Shape().Tail()))
		return nil
	}

	rows := xs.Rows()
	acc := rows[0]
	accs := []array.Value{acc}
	for i := 1; i < len(rows); i++ {
		height := snapshot(m)
		broke, callErr := callCatchBreak(m, f, rows[i], acc)
		if callErr != nil {
			return callErr
		}
		if broke {
			restore(m, height)
			result, rerr := array.Reassemble(accs)
			if rerr != nil {
				return interperr.Wrap(rerr, "Cannot reassemble scan's broken partial result")
			}
			m.Push(result)
			return nil
		}
		acc, err = m.Pop("scan result")
		if err != nil {
			return err
		}
		accs = append(accs, acc)
	}
	result, rerr := array.Reassemble(accs)
	if rerr != nil {
		return interperr.Wrap(rerr, "Cannot reassemble scan result")
	}
	m.Push(result)
	return nil
}
