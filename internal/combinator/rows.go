package combinator

import (
	"github.com/arraylang/loopmod/internal/array"
	"github.com/arraylang/loopmod/internal/interperr"
)

// Rows pops (f, arg1, ..., argN) and applies f over the rows (rank-1
// decomposition) of the arguments rather than their leaves — same
// signature and break policy as Each, but row counts across operands
// must match exactly; no broadcasting, per spec.md §4.5.
func Rows(m Machine) error {
	f, err := popFunc(m, "function")
	if err != nil {
		return err
	}
	sig := m.Signature(f)
	if sig.Outputs != 0 && sig.Outputs != 1 {
		return interperr.Newf("rows' function must return 0 or 1 values")
	}

	switch sig.Args {
	case 0:
		return nil
	case 1:
		return rowsUnary(m, f, sig)
	default:
		return rowsNary(m, f, sig)
	}
}

func rowsUnary(m Machine, f array.FnHandle, sig array.Signature) error {
	xs, err := m.Pop("array")
	if err != nil {
		return err
	}
	rows := xs.Rows()
	recordDispatch(m, "rows", false, false)

	if sig.Outputs == 0 {
		for _, row := range rows {
			if err := call(m, f, row); err != nil {
				return err
			}
		}
		return nil
	}

	cells := make([]array.Value, len(rows))
	broken := false
	for i, row := range rows {
		if broken {
			cells[i] = row
			continue
		}
		height := snapshot(m)
		broke, err := callCatchBreak(m, f, row)
		if err != nil {
			return err
		}
		if broke {
			restore(m, height)
			broken = true
			cells[i] = row
			continue
		}
		v, err := m.Pop("rows result")
		if err != nil {
			return err
		}
		cells[i] = v
	}
	result, err := array.Stack(array.Shape{len(rows)}, cells)
	if err != nil {
		return interperr.Wrap(err, "Cannot combine rows' results")
	}
	m.Push(result)
	return nil
}

func rowsNary(m Machine, f array.FnHandle, sig array.Signature) error {
	args := make([]array.Value, sig.Args)
	for i := range args {
		v, err := m.Pop("array")
		if err != nil {
			return err
		}
		args[i] = v
	}
	rowCount := args[0].RowCount()
	for _, a := range args[1:] {
		if a.RowCount() != rowCount {
			return interperr.Newf("rows' arguments must have matching row counts, got %d and %d", rowCount, a.RowCount())
		}
	}
	recordDispatch(m, "rows", false, false)

	message := "break is not allowed in multi-argument rows"
	if sig.Outputs == 0 {
		for i := 0; i < rowCount; i++ {
			callArgs := make([]array.Value, len(args))
			for k := range args {
				callArgs[k] = args[k].Row(i)
			}
			if err := call(m, f, callArgs...); err != nil {
				return err
			}
		}
		return nil
	}

	cells := make([]array.Value, rowCount)
	for i := 0; i < rowCount; i++ {
		callArgs := make([]array.Value, len(args))
		for k := range args {
			callArgs[k] = args[k].Row(i)
		}
		if err := callNoBreak(m, f, message, callArgs...); err != nil {
			return err
		}
		v, err := m.Pop("rows result")
		if err != nil {
			return err
		}
		cells[i] = v
	}
	result, err := array.Stack(array.Shape{rowCount}, cells)
	if err != nil {
		return interperr.Wrap(err, "Cannot combine rows' results")
	}
	m.Push(result)
	return nil
}
