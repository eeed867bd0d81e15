package combinator

import (
	"math"
	"testing"

	"github.com/arraylang/loopmod/internal/array"
	"github.com/arraylang/loopmod/internal/machine"
)

func rankListFn(entries ...float64) *machine.Func {
	return &machine.Func{
		Name: "rankList",
		Sig:  array.Signature{Args: 0, Outputs: 1},
		Body: func(m *machine.VM) (bool, error) {
			m.Push(array.Vector(entries...))
			return false, nil
		},
	}
}

// broadcastAddFn adds its (scalar) left operand to every element of
// its (vector) right operand — used to exercise level's mixed-depth
// descent, where one argument reaches a scalar cell before the other
// still holds a whole row.
func broadcastAddFn() *machine.Func {
	return &machine.Func{
		Name: "broadcastAdd",
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
			out := make([]float64, len(bv))
			for i := range bv {
				out[i] = av[0] + bv[i]
			}
			r, _ := array.NewNum(b.Shape(), out)
			m.Push(r)
			return false, nil
		},
	}
}

func rowAddFn() *machine.Func {
	return &machine.Func{
		Name: "rowAdd",
		Sig:  array.Signature{Args: 2, Outputs: 1},
		Body: func(m *machine.VM) (bool, error) {
			b, err := m.Pop("b")
			if err != nil {
				return false, err
			}
			a, err := m.Pop("a")
			if err != nil {
				return false, err
			}
			av, _ := array.AsFloats(a)
			bv, _ := array.AsFloats(b)
			out := make([]float64, len(av))
			for i := range av {
				out[i] = av[i] + bv[i]
			}
			r, _ := array.NewNum(a.Shape(), out)
			m.Push(r)
			return false, nil
		},
	}
}

func TestLevelRankZeroActsLikeEach(t *testing.T) {
	vm := machine.New()
	vm.Push(array.Vector(1, 2, 3, 4))
	pushFunc(vm, doubleFn())
	pushFunc(vm, rankListFn(0))
	if err := Level(vm, 1); err != nil {
		t.Fatal(err)
	}
	r, _ := vm.Pop("r")
	want := []float64{2, 4, 6, 8}
	got := numsOf(t, r)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}
}

func TestLevelRankNegativeOneActsLikeRows(t *testing.T) {
	vm := machine.New()
	xs, _ := array.NewNum(array.Shape{2, 3}, []float64{1, 2, 3, 4, 5, 6})
	vm.Push(xs)
	pushFunc(vm, sumRowFn())
	pushFunc(vm, rankListFn(-1))
	if err := Level(vm, 1); err != nil {
		t.Fatal(err)
	}
	r, _ := vm.Pop("r")
	want := []float64{6, 15}
	got := numsOf(t, r)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}
}

func TestLevelRankInfinityCallsOnce(t *testing.T) {
	vm := machine.New()
	xs, _ := array.NewNum(array.Shape{2, 3}, []float64{1, 2, 3, 4, 5, 6})
	vm.Push(xs)
	pushFunc(vm, sumRowFn())
	pushFunc(vm, rankListFn(math.Inf(1)))
	if err := Level(vm, 1); err != nil {
		t.Fatal(err)
	}
	r, _ := vm.Pop("r")
	got := numsOf(t, r)
	if got[0] != 21 {
		t.Fatalf("got %v want 21", got[0])
	}
}

func TestLevelTwoArgsDescendByRow(t *testing.T) {
	vm := machine.New()
	xs, _ := array.NewNum(array.Shape{2, 3}, []float64{1, 2, 3, 4, 5, 6})
	ys, _ := array.NewNum(array.Shape{2, 3}, []float64{10, 20, 30, 40, 50, 60})
	vm.Push(ys)
	vm.Push(xs)
	pushFunc(vm, rowAddFn())
	pushFunc(vm, rankListFn(1, 1))
	if err := Level(vm, 2); err != nil {
		t.Fatal(err)
	}
	r, _ := vm.Pop("r")
	if !r.Shape().Equal(array.Shape{2, 3}) {
		t.Fatalf("got shape %s", r.Shape())
	}
	want := []float64{11, 22, 33, 44, 55, 66}
	got := numsOf(t, r)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}
}

// TestLevelMixedDepthsFrontAligns exercises a rank list with two
// distinct nonzero depths ([0,-1] over two [2,3] arrays, giving depths
// [2,1]): the first argument peels all the way to a scalar while the
// second is held one level shorter, then passed whole into every call
// at the inner frame once its own depth is exhausted. This is the
// front-aligned descent spec.md §4.9 requires for K=2's "otherwise
// descend recursively" case and K>=3 generally — every argument with
// depth > 0 row-indexes and decrements each level; only a depth-0
// argument is cloned whole.
func TestLevelMixedDepthsFrontAligns(t *testing.T) {
	vm := machine.New()
	xs, _ := array.NewNum(array.Shape{2, 3}, []float64{1, 2, 3, 4, 5, 6})
	ys, _ := array.NewNum(array.Shape{2, 3}, []float64{10, 20, 30, 40, 50, 60})
	vm.Push(ys)
	vm.Push(xs)
	pushFunc(vm, broadcastAddFn())
	pushFunc(vm, rankListFn(0, -1))
	if err := Level(vm, 2); err != nil {
		t.Fatal(err)
	}
	r, _ := vm.Pop("r")
	if !r.Shape().Equal(array.Shape{2, 3, 3}) {
		t.Fatalf("got shape %s, want [2 3 3]", r.Shape())
	}
	want := []float64{
		11, 21, 31, 12, 22, 32, 13, 23, 33,
		44, 54, 64, 45, 55, 65, 46, 56, 66,
	}
	got := numsOf(t, r)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}
}

func TestLevelRowCountMismatchErrors(t *testing.T) {
	vm := machine.New()
	xs, _ := array.NewNum(array.Shape{2, 3}, []float64{1, 2, 3, 4, 5, 6})
	ys, _ := array.NewNum(array.Shape{3, 3}, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9})
	vm.Push(ys)
	vm.Push(xs)
	pushFunc(vm, rowAddFn())
	pushFunc(vm, rankListFn(1, 1))
	if err := Level(vm, 2); err == nil {
		t.Fatal("expected row count mismatch error")
	}
}

func TestLevelZeroArgsIsNoop(t *testing.T) {
	vm := machine.New()
	pushFunc(vm, doubleFn())
	pushFunc(vm, rankListFn())
	if err := Level(vm, 0); err != nil {
		t.Fatal(err)
	}
	if vm.StackSize() != 0 {
		t.Fatalf("expected empty stack, got %d", vm.StackSize())
	}
}
