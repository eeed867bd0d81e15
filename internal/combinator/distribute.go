package combinator

import (
	"github.com/arraylang/loopmod/internal/array"
	"github.com/arraylang/loopmod/internal/interperr"
)

// Distribute pops (f, xs, y) and calls f(x, y) for each row x of xs,
// with y passed whole to every call (not decomposed), per spec.md
// §4.6. Break disallowed.
func Distribute(m Machine) error {
	f, err := popFunc(m, "function")
	if err != nil {
		return err
	}
	xs, err := m.Pop("array to distribute over")
	if err != nil {
		return err
	}
	y, err := m.Pop("whole argument")
	if err != nil {
		return err
	}

	sig := m.Signature(f)
	if sig.Args != 2 {
		return interperr.Newf("Cannot distribute a function that takes %d arguments", sig.Args)
	}
	recordDispatch(m, "distribute", false, false)

	rows := xs.Rows()
	message := "break is not allowed in distribute"

	if sig.Outputs == 0 {
		for _, row := range rows {
			if err := callNoBreak(m, f, message, row, y); err != nil {
				return err
			}
		}
		return nil
	}

	cells := make([]array.Value, len(rows))
	for i, row := range rows {
		if err := callNoBreak(m, f, message, row, y); err != nil {
			return err
		}
		v, err := m.Pop("distribute result")
		if err != nil {
			return err
		}
		cells[i] = v
	}
	result, err := array.Stack(array.Shape{len(rows)}, cells)
	if err != nil {
		return interperr.Wrap(err, "Cannot combine distribute's results")
	}
	m.Push(result)
	return nil
}
