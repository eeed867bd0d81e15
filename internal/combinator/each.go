package combinator

import (
	"github.com/arraylang/loopmod/internal/array"
	"github.com/arraylang/loopmod/internal/interperr"
	"github.com/arraylang/loopmod/internal/pervade"
)

// Each pops (f, arg1, ..., argN) where N = f's declared arity and
// applies f over every scalar leaf of the arguments (flat traversal),
// per spec.md §4.4.
func Each(m Machine) error {
	f, err := popFunc(m, "function")
	if err != nil {
		return err
	}
	sig := m.Signature(f)
	if sig.Outputs != 0 && sig.Outputs != 1 {
		return interperr.Newf("each's function must return 0 or 1 values")
	}

	switch sig.Args {
	case 0:
		return nil
	case 1:
		return eachUnary(m, f, sig)
	case 2:
		return eachBinary(m, f, sig)
	default:
		return eachNary(m, f, sig)
	}
}

func eachUnary(m Machine, f array.FnHandle, sig array.Signature) error {
	xs, err := m.Pop("array")
	if err != nil {
		return err
	}
	leaves := array.Leaves(xs)
	recordDispatch(m, "each", false, false)

	if sig.Outputs == 0 {
		for _, leaf := range leaves {
			if err := call(m, f, leaf); err != nil {
				return err
			}
		}
		return nil
	}

	cells := make([]array.Value, len(leaves))
	broken := false
	for i, leaf := range leaves {
		if broken {
			cells[i] = leaf
			continue
		}
		height := snapshot(m)
		broke, err := callCatchBreak(m, f, leaf)
		if err != nil {
			return err
		}
		if broke {
			restore(m, height)
			broken = true
			cells[i] = leaf
			continue
		}
		v, err := m.Pop("each result")
		if err != nil {
			return err
		}
		cells[i] = v
	}
	result, err := array.Stack(xs.Shape(), cells)
	if err != nil {
		return interperr.Wrap(err, "Cannot combine each's results")
	}
	m.Push(result)
	return nil
}

func eachBinary(m Machine, f array.FnHandle, sig array.Signature) error {
	xs, err := m.Pop("first array")
	if err != nil {
		return err
	}
	ys, err := m.Pop("second array")
	if err != nil {
		return err
	}
	combined, err := pervade.Combine(xs.Shape(), ys.Shape())
	if err != nil {
		return err
	}
	combinedLen := combined.FlatLen()
	leavesX := pervade.Leaves(xs, combinedLen)
	leavesY := pervade.Leaves(ys, combinedLen)
	recordDispatch(m, "each", false, false)

	if sig.Outputs == 0 {
		for i := range leavesX {
			if err := call(m, f, leavesX[i], leavesY[i]); err != nil {
				return err
			}
		}
		return nil
	}

	cells := make([]array.Value, combinedLen)
	for i := range leavesX {
		if err := callNoBreak(m, f, "break is not allowed in multi-argument each", leavesX[i], leavesY[i]); err != nil {
			return err
		}
		v, err := m.Pop("each result")
		if err != nil {
			return err
		}
		cells[i] = v
	}
	result, err := array.Stack(combined, cells)
	if err != nil {
		return interperr.Wrap(err, "Cannot combine each's results")
	}
	m.Push(result)
	return nil
}

func eachNary(m Machine, f array.FnHandle, sig array.Signature) error {
	args := make([]array.Value, sig.Args)
	for i := range args {
		v, err := m.Pop("array")
		if err != nil {
			return err
		}
		args[i] = v
	}
	shape := args[0].Shape()
	for _, a := range args[1:] {
		if !a.Shape().Equal(shape) {
			return interperr.Newf("each's arguments must share %s, got %s", shape.Describe(), a.Shape().Describe())
		}
	}
	recordDispatch(m, "each", false, false)

	leaves := make([][]array.Value, len(args))
	for i, a := range args {
		leaves[i] = array.Leaves(a)
	}
	n := shape.FlatLen()

	if sig.Outputs == 0 {
		for i := 0; i < n; i++ {
			callArgs := make([]array.Value, len(args))
			for k := range args {
				callArgs[k] = leaves[k][i]
			}
			if err := call(m, f, callArgs...); err != nil {
				return err
			}
		}
		return nil
	}

	cells := make([]array.Value, n)
	for i := 0; i < n; i++ {
		callArgs := make([]array.Value, len(args))
		for k := range args {
			callArgs[k] = leaves[k][i]
		}
		if err := callNoBreak(m, f, "break is not allowed in multi-argument each", callArgs...); err != nil {
			return err
		}
		v, err := m.Pop("each result")
		if err != nil {
			return err
		}
		cells[i] = v
	}
	result, err := array.Stack(shape, cells)
	if err != nil {
		return interperr.Wrap(err, "Cannot combine each's results")
	}
	m.Push(result)
	return nil
}
