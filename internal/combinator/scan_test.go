package combinator

import (
	"testing"

	"github.com/arraylang/loopmod/internal/array"
	"github.com/arraylang/loopmod/internal/machine"
)

func TestScanFastPath(t *testing.T) {
	vm := machine.New()
	vm.Push(array.Vector(1, 2, 3, 4))
	pushFunc(vm, addFn())
	if err := Scan(vm); err != nil {
		t.Fatal(err)
	}
	r, _ := vm.Pop("r")
	want := []float64{1, 3, 6, 10}
	got := numsOf(t, r)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}
}

func TestScanRankZeroErrors(t *testing.T) {
	vm := machine.New()
	vm.Push(array.Scalar(1))
	pushFunc(vm, addFn())
	if err := Scan(vm); err == nil {
		t.Fatal("expected rank-0 error")
	}
}

func TestScanGenericPath(t *testing.T) {
	vm := machine.New()
	vm.Push(array.Vector(1, 2, 3))
	pushFunc(vm, genericAddFn())
	if err := Scan(vm); err != nil {
		t.Fatal(err)
	}
	r, _ := vm.Pop("r")
	want := []float64{1, 3, 6}
	got := numsOf(t, r)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}
}

func TestScanEmptyPreservesLeadingZero(t *testing.T) {
	vm := machine.New()
	xs, _ := array.NewNum(array.Shape{0, 2}, []float64{})
	vm.Push(xs)
	pushFunc(vm, addFn())
	if err := Scan(vm); err != nil {
		t.Fatal(err)
	}
	r, _ := vm.Pop("r")
	if !r.Shape().Equal(array.Shape{0, 2}) {
		t.Fatalf("got shape %s want [0 2]", r.Shape())
	}
}
