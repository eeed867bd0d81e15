package combinator

import (
	"github.com/arraylang/loopmod/internal/array"
	"github.com/arraylang/loopmod/internal/interperr"
)

// Cross pops (f, xs, ys) and computes the outer combination over the
// rows of xs against the rows of ys, per spec.md §4.7. Always
// host-call-driven: cross has no fast path, even for a recognized
// primitive. Break disallowed.
func Cross(m Machine) error {
	f, err := popFunc(m, "function")
	if err != nil {
		return err
	}
	xs, err := m.Pop("first array")
	if err != nil {
		return err
	}
	ys, err := m.Pop("second array")
	if err != nil {
		return err
	}
	recordDispatch(m, "cross", false, false)

	xRows := xs.Rows()
	yRows := ys.Rows()
	message := "break is not allowed in cross"
	cells := make([]array.Value, 0, len(xRows)*len(yRows))
	for _, x := range xRows {
		for _, y := range yRows {
			if err := callNoBreak(m, f, message, y, x); err != nil {
				return err
			}
			v, err := m.Pop("cross result")
			if err != nil {
				return err
			}
			cells = append(cells, v)
		}
	}
	prefix := array.Shape{len(xRows), len(yRows)}
	result, err := array.Stack(prefix, cells)
	if err != nil {
		return interperr.Wrap(err, "Cannot combine cross's results")
	}
	m.Push(result)
	return nil
}
