package combinator

import (
	"testing"

	"github.com/arraylang/loopmod/internal/array"
	"github.com/arraylang/loopmod/internal/machine"
)

func TestTableFastPath(t *testing.T) {
	vm := machine.New()
	ys := array.Vector(10, 20, 30)
	xs := array.Vector(1, 2)
	vm.Push(ys)
	vm.Push(xs)
	pushFunc(vm, addFn())
	if err := Table(vm); err != nil {
		t.Fatal(err)
	}
	r, _ := vm.Pop("r")
	if !r.Shape().Equal(array.Shape{2, 3}) {
		t.Fatalf("got shape %s", r.Shape())
	}
	want := []float64{11, 21, 31, 12, 22, 32}
	got := numsOf(t, r)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}
}

func TestTableGenericPath(t *testing.T) {
	vm := machine.New()
	ys := array.Vector(3, 4)
	xs := array.Vector(1, 2)
	vm.Push(ys)
	vm.Push(xs)
	pushFunc(vm, genericAddFn())
	if err := Table(vm); err != nil {
		t.Fatal(err)
	}
	r, _ := vm.Pop("r")
	if !r.Shape().Equal(array.Shape{2, 2}) {
		t.Fatalf("got shape %s", r.Shape())
	}
	want := []float64{4, 5, 5, 6}
	got := numsOf(t, r)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}
}
