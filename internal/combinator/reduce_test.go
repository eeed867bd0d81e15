package combinator

import (
	"testing"

	"github.com/arraylang/loopmod/internal/array"
	"github.com/arraylang/loopmod/internal/machine"
	"github.com/arraylang/loopmod/internal/primitive"
)

func addFn() *machine.Func {
	return &machine.Func{
		Name: "+",
		Sig:  array.Signature{Args: 2, Outputs: 1},
		Prim: primitive.Add,
		Body: func(m *machine.VM) (bool, error) {
			b, err := m.Pop("rhs")
			if err != nil {
				return false, err
			}
			a, err := m.Pop("lhs")
			if err != nil {
				return false, err
			}
			av, _ := array.AsFloats(a)
			bv, _ := array.AsFloats(b)
			m.Push(array.Scalar(av[0] + bv[0]))
			return false, nil
		},
	}
}

// genericAddFn behaves exactly like addFn but is never recognized as a
// primitive, forcing callers through the generic, host-call-driven
// path instead of any fastpath kernel.
func genericAddFn() *machine.Func {
	return &machine.Func{
		Name: "generic+",
		Sig:  array.Signature{Args: 2, Outputs: 1},
		Body: func(m *machine.VM) (bool, error) {
			b, err := m.Pop("rhs")
			if err != nil {
				return false, err
			}
			a, err := m.Pop("lhs")
			if err != nil {
				return false, err
			}
			av, _ := array.AsFloats(a)
			bv, _ := array.AsFloats(b)
			m.Push(array.Scalar(av[0] + bv[0]))
			return false, nil
		},
	}
}

// concatFn is a non-primitive arity-2 reducer: it joins its two scalar
// operands into a rank-1 array, letting tests exercise the generic
// (non-fastpath) reduce/fold/scan machinery explicitly.
func concatFn() *machine.Func {
	return &machine.Func{
		Name: "concat",
		Sig:  array.Signature{Args: 2, Outputs: 1},
		Body: func(m *machine.VM) (bool, error) {
			b, err := m.Pop("rhs")
			if err != nil {
				return false, err
			}
			a, err := m.Pop("lhs")
			if err != nil {
				return false, err
			}
			av, _ := array.AsFloats(a)
			bv, _ := array.AsFloats(b)
			m.Push(array.Vector(append(append([]float64{}, av...), bv...)...))
			return false, nil
		},
	}
}

func breakAfterFn(n int) *machine.Func {
	calls := 0
	return &machine.Func{
		Name: "breakAfter",
		Sig:  array.Signature{Args: 2, Outputs: 1},
		Body: func(m *machine.VM) (bool, error) {
			b, err := m.Pop("rhs")
			if err != nil {
				return false, err
			}
			a, err := m.Pop("lhs")
			if err != nil {
				return false, err
			}
			calls++
			if calls > n {
				return true, nil
			}
			av, _ := array.AsFloats(a)
			bv, _ := array.AsFloats(b)
			m.Push(array.Scalar(av[0] + bv[0]))
			return false, nil
		},
	}
}

func pushFunc(m Machine, f array.FnHandle) {
	m.Push(array.FuncScalar(f))
}

func numsOf(t *testing.T, v array.Value) []float64 {
	t.Helper()
	d, ok := array.AsFloats(v)
	if !ok {
		t.Fatalf("expected numeric result, got %T", v)
	}
	return d
}

func TestReduceFastPath(t *testing.T) {
	vm := machine.New()
	vm.Push(array.Vector(1, 2, 3, 4))
	pushFunc(vm, addFn())
	if err := Reduce(vm); err != nil {
		t.Fatal(err)
	}
	if vm.StackSize() != 1 {
		t.Fatalf("want 1, got %d", vm.StackSize())
	}
	r, _ := vm.Pop("r")
	if got := numsOf(t, r)[0]; got != 10 {
		t.Fatalf("got %v want 10", got)
	}
}

func TestReduceEmptyErrors(t *testing.T) {
	vm := machine.New()
	vm.Push(array.Vector())
	pushFunc(vm, genericAddFn())
	if err := Reduce(vm); err == nil {
		t.Fatal("expected error reducing empty array")
	}
}

func TestReduceGenericPath(t *testing.T) {
	vm := machine.New()
	vm.Push(array.Vector(1, 2, 3))
	pushFunc(vm, concatFn())
	if err := Reduce(vm); err != nil {
		t.Fatal(err)
	}
	r, _ := vm.Pop("r")
	// concatFn appends (row's data, acc's data) on every call; starting
	// from acc=1 this builds up right-to-left: [2 1], then [3 2 1].
	want := []float64{3, 2, 1}
	got := numsOf(t, r)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}
}

func TestReduceBreakSplicesRemainder(t *testing.T) {
	vm := machine.New()
	vm.Push(array.Vector(1, 2, 3, 4, 5))
	pushFunc(vm, breakAfterFn(1))
	heightBefore := vm.StackSize()
	if err := Reduce(vm); err != nil {
		t.Fatal(err)
	}
	if vm.StackSize() != heightBefore-1 {
		t.Fatalf("stack not balanced: got %d", vm.StackSize())
	}
	r, _ := vm.Pop("r")
	// first call combines rows 0,1 -> acc=3; second call (rows index 2)
	// breaks, so the result splices acc with the remaining raw rows.
	want := []float64{3, 4, 5}
	got := numsOf(t, r)
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}
}
