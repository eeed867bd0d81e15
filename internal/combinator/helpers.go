// Package combinator implements the looping-modifier operators —
// reduce, fold, scan, each, rows, distribute, table, cross, repeat,
// level, partition, and group — as thin dispatchers over the fast
// paths (package fastpath), the level engine (package level), and the
// grouping engine (package grouping), per spec.md §4.
package combinator

import (
	"github.com/arraylang/loopmod/internal/array"
	"github.com/arraylang/loopmod/internal/interperr"
	"github.com/arraylang/loopmod/internal/machine"
)

// Machine is a local alias so combinator files read naturally; it is
// exactly machine.Machine.
type Machine = machine.Machine

// popFunc pops a callable value off the stack and unwraps it to the
// array.FnHandle the Machine interface's Call family actually takes —
// a function flows through the stack wrapped as a rank-0 FuncArray
// like any other value.
func popFunc(m Machine, label string) (array.FnHandle, error) {
	v, err := m.Pop(label)
	if err != nil {
		return nil, err
	}
	f, ok := array.AsFunc(v)
	if !ok {
		return nil, interperr.Newf("%s must be a function", label)
	}
	return f, nil
}

// pushInOrder pushes args in the given order, so the last argument
// ends up on top — plain stack semantics, matching the spec's "push
// row, push acc" / "push ys-element then xs-element" phrasing
// directly: whichever operand is named last is what f sees on top
// when it pops its own arguments.
func pushInOrder(m Machine, args ...array.Value) {
	for _, a := range args {
		m.Push(a)
	}
}

// callCatchBreak pushes args in order and calls f, reporting break
// without pushing a result.
func callCatchBreak(m Machine, f array.FnHandle, args ...array.Value) (bool, error) {
	pushInOrder(m, args...)
	return m.CallCatchBreak(f)
}

// callNoBreak pushes args in order, calls f, and turns a break signal
// into an error — used by combinators that disallow break.
func callNoBreak(m Machine, f array.FnHandle, message string, args ...array.Value) error {
	pushInOrder(m, args...)
	return m.CallErrorOnBreak(f, message)
}

// call pushes args in order and calls f via the ordinary entry point,
// which ignores a break signal — used by each's and rows' 0-output
// loops and by the grouping adapter's Call.
func call(m Machine, f array.FnHandle, args ...array.Value) error {
	pushInOrder(m, args...)
	return m.Call(f)
}

// recordDispatch reports a fast/generic path decision to the machine's
// optional profiler/trace sink, if it supports machine.Instrumented.
// It has no effect on any combinator's result.
func recordDispatch(m Machine, name string, fastPath, broke bool) {
	if instr, ok := m.(machine.Instrumented); ok {
		instr.RecordDispatch(name, fastPath, broke)
	}
}

// popResult pops f's single output, if it declares one; for a 0-output
// f it pops nothing and returns a nil value. The level and grouping
// adapters use it to read back what call/callCatchBreak left behind.
func popResult(m Machine, f array.FnHandle, label string) (array.Value, error) {
	if m.Signature(f).Outputs == 0 {
		return nil, nil
	}
	return m.Pop(label)
}

// snapshot/restore implement the stack-balance discipline of spec.md
// §5: before a call that might break, record the stack height; on
// break, truncate back to it before assembling a partial result.
func snapshot(m Machine) int        { return m.StackSize() }
func restore(m Machine, height int) { m.TruncateStack(height) }
