package machine

import (
	"github.com/google/uuid"

	"github.com/arraylang/loopmod/internal/array"
	"github.com/arraylang/loopmod/internal/interperr"
	"github.com/arraylang/loopmod/internal/primitive"
	"github.com/arraylang/loopmod/internal/trace"
)

// VM is the concrete stack machine the combinator engine is exercised
// against: a flat value stack with an explicit length, grounded on
// EnhancedVM's stack/stackTop pair but pared down to exactly the
// push/pop/call contract spec.md §6 requires. Real deployments would
// plug in a bytecode-driven evaluator instead (out of scope here).
type VM struct {
	RunID uuid.UUID

	stack    []array.Value
	maxStack int

	profiler *Profiler
	sink     trace.Sink
}

// Option configures a VM at construction time.
type Option func(*VM)

// WithMaxStack overrides the default stack capacity (65536, matching
// EnhancedVM's pre-allocated stack size).
func WithMaxStack(n int) Option {
	return func(vm *VM) { vm.maxStack = n }
}

// WithSink attaches an observational event sink (see package trace).
func WithSink(s trace.Sink) Option {
	return func(vm *VM) { vm.sink = s }
}

// New builds a VM with an empty stack.
func New(opts ...Option) *VM {
	vm := &VM{
		RunID:    uuid.New(),
		maxStack: 65536,
		profiler: NewProfiler(),
		sink:     trace.NoopSink{},
	}
	for _, o := range opts {
		o(vm)
	}
	return vm
}

// Profiler exposes the dispatch counters for reporting.
func (vm *VM) Profiler() *Profiler { return vm.profiler }

func (vm *VM) Push(v array.Value) {
	if len(vm.stack) >= vm.maxStack {
		panic("stack overflow")
	}
	vm.stack = append(vm.stack, v)
}

func (vm *VM) Pop(label string) (array.Value, error) {
	if len(vm.stack) == 0 {
		return nil, interperr.Newf("expected %s", label)
	}
	n := len(vm.stack) - 1
	v := vm.stack[n]
	vm.stack[n] = nil
	vm.stack = vm.stack[:n]
	return v, nil
}

func (vm *VM) StackSize() int { return len(vm.stack) }

func (vm *VM) TruncateStack(n int) {
	for i := n; i < len(vm.stack); i++ {
		vm.stack[i] = nil
	}
	vm.stack = vm.stack[:n]
}

func (vm *VM) Call(f array.FnHandle) error {
	fn, ok := f.(*Func)
	if !ok {
		return interperr.Newf("%v is not callable", f)
	}
	_, err := fn.Body(vm)
	return err
}

func (vm *VM) CallCatchBreak(f array.FnHandle) (bool, error) {
	fn, ok := f.(*Func)
	if !ok {
		return false, interperr.Newf("%v is not callable", f)
	}
	return fn.Body(vm)
}

func (vm *VM) CallErrorOnBreak(f array.FnHandle, message string) error {
	broke, err := vm.CallCatchBreak(f)
	if err != nil {
		return err
	}
	if broke {
		return vm.Error(message)
	}
	return nil
}

func (vm *VM) Error(message string) error { return interperr.New(message) }

func (vm *VM) Signature(f array.FnHandle) array.Signature { return f.Signature() }

func (vm *VM) AsFlippedPrimitive(f array.FnHandle) (primitive.Primitive, bool, bool) {
	fn, ok := f.(*Func)
	if !ok || fn.Prim == primitive.Unknown {
		return primitive.Unknown, false, false
	}
	return fn.Prim, fn.Flipped, true
}

func (vm *VM) Invert(f array.FnHandle) (array.FnHandle, error) {
	fn, ok := f.(*Func)
	if !ok {
		return nil, interperr.Newf("%v is not invertible", f)
	}
	if fn.Invert == nil {
		return nil, interperr.Newf("%v has no inverse", f)
	}
	inv, err := fn.Invert()
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// RecordDispatch logs a combinator's fast/generic path decision to both
// the profiler and the attached trace sink. Combinators call this
// through the machine.Instrumented extension interface; it has no
// bearing on any combinator's result.
func (vm *VM) RecordDispatch(combinator string, fastPath, broke bool) {
	vm.profiler.record(combinator, fastPath, broke)
	vm.sink.Notify(trace.Event{Combinator: combinator, FastPath: fastPath, Broke: broke})
}

// Instrumented is implemented by machines that support dispatch
// recording; combinators type-assert for it rather than requiring it,
// keeping the core Machine contract exactly as spec.md §6 describes.
type Instrumented interface {
	RecordDispatch(combinator string, fastPath, broke bool)
}

var _ Instrumented = (*VM)(nil)
