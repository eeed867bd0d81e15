package combinator

import (
	"math"
	"testing"

	"github.com/arraylang/loopmod/internal/array"
	"github.com/arraylang/loopmod/internal/machine"
)

// timesTwoFn doubles whatever scalar sits on top of the stack, and
// knows its own halving inverse — used to exercise repeat's negative-n
// inversion path.
func timesTwoFn() *machine.Func {
	var half *machine.Func
	f := &machine.Func{
		Name: "timesTwo",
		Sig:  array.Signature{Args: 1, Outputs: 1},
		Body: func(m *machine.VM) (bool, error) {
			v, err := m.Pop("x")
			if err != nil {
				return false, err
			}
			d, _ := array.AsFloats(v)
			m.Push(array.Scalar(d[0] * 2))
			return false, nil
		},
	}
	half = &machine.Func{
		Name: "half",
		Sig:  array.Signature{Args: 1, Outputs: 1},
		Body: func(m *machine.VM) (bool, error) {
			v, err := m.Pop("x")
			if err != nil {
				return false, err
			}
			d, _ := array.AsFloats(v)
			m.Push(array.Scalar(d[0] / 2))
			return false, nil
		},
	}
	f.Invert = func() (*machine.Func, error) { return half, nil }
	return f
}

func TestRepeatPositiveCount(t *testing.T) {
	vm := machine.New()
	vm.Push(array.Scalar(1))
	vm.Push(array.Scalar(3))
	pushFunc(vm, timesTwoFn())
	if err := Repeat(vm); err != nil {
		t.Fatal(err)
	}
	r, _ := vm.Pop("r")
	got := numsOf(t, r)
	if got[0] != 8 {
		t.Fatalf("got %v want 8", got[0])
	}
}

func TestRepeatNegativeCountInverts(t *testing.T) {
	vm := machine.New()
	vm.Push(array.Scalar(8))
	vm.Push(array.Scalar(-3))
	pushFunc(vm, timesTwoFn())
	if err := Repeat(vm); err != nil {
		t.Fatal(err)
	}
	r, _ := vm.Pop("r")
	got := numsOf(t, r)
	if got[0] != 1 {
		t.Fatalf("got %v want 1", got[0])
	}
}

// doubleUntilFn doubles the top-of-stack scalar, but on hitting
// threshold pushes it back unchanged and signals break instead —
// letting callers observe exactly what was on the stack at break time.
func doubleUntilFn(threshold float64) *machine.Func {
	return &machine.Func{
		Name: "doubleUntil",
		Sig:  array.Signature{Args: 1, Outputs: 1},
		Body: func(m *machine.VM) (bool, error) {
			v, err := m.Pop("x")
			if err != nil {
				return false, err
			}
			d, _ := array.AsFloats(v)
			if d[0] == threshold {
				m.Push(v)
				return true, nil
			}
			m.Push(array.Scalar(d[0] * 2))
			return false, nil
		},
	}
}

func TestRepeatInfiniteLoopsUntilBreak(t *testing.T) {
	vm := machine.New()
	vm.Push(array.Scalar(1))
	vm.Push(array.Scalar(math.Inf(1)))
	pushFunc(vm, doubleUntilFn(16))
	if err := Repeat(vm); err != nil {
		t.Fatal(err)
	}
	r, _ := vm.Pop("r")
	got := numsOf(t, r)
	// 1 -> 2 -> 4 -> 8 -> 16 breaks, leaving 16 on the stack untouched.
	if got[0] != 16 {
		t.Fatalf("got %v want 16", got[0])
	}
}

func TestRepeatNonIntegerCountErrors(t *testing.T) {
	vm := machine.New()
	vm.Push(array.Scalar(1))
	vm.Push(array.Scalar(2.5))
	pushFunc(vm, timesTwoFn())
	if err := Repeat(vm); err == nil {
		t.Fatal("expected domain error")
	}
}

func TestRepeatVectorCountErrors(t *testing.T) {
	vm := machine.New()
	vm.Push(array.Scalar(1))
	vm.Push(array.Vector(1, 2))
	pushFunc(vm, timesTwoFn())
	if err := Repeat(vm); err == nil {
		t.Fatal("expected domain error")
	}
}
