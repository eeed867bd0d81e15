package combinator

import (
	"testing"

	"github.com/arraylang/loopmod/internal/array"
	"github.com/arraylang/loopmod/internal/machine"
)

func TestDistribute(t *testing.T) {
	vm := machine.New()
	y := array.Scalar(100)
	xs := array.Vector(1, 2, 3)
	vm.Push(y)
	vm.Push(xs)
	pushFunc(vm, addFn())
	if err := Distribute(vm); err != nil {
		t.Fatal(err)
	}
	r, _ := vm.Pop("r")
	want := []float64{101, 102, 103}
	got := numsOf(t, r)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}
}

func TestDistributeArityError(t *testing.T) {
	vm := machine.New()
	vm.Push(array.Scalar(0))
	vm.Push(array.Vector(1, 2))
	pushFunc(vm, doubleFn())
	if err := Distribute(vm); err == nil {
		t.Fatal("expected arity error")
	}
}
