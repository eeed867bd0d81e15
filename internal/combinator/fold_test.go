package combinator

import (
	"testing"

	"github.com/arraylang/loopmod/internal/array"
	"github.com/arraylang/loopmod/internal/machine"
)

func TestFoldFastPath(t *testing.T) {
	vm := machine.New()
	vm.Push(array.Vector(1, 2, 3))
	vm.Push(array.Scalar(10))
	pushFunc(vm, addFn())
	if err := Fold(vm); err != nil {
		t.Fatal(err)
	}
	r, _ := vm.Pop("r")
	if got := numsOf(t, r)[0]; got != 16 {
		t.Fatalf("got %v want 16", got)
	}
}

func TestFoldEmptyReturnsInit(t *testing.T) {
	vm := machine.New()
	vm.Push(array.Vector())
	vm.Push(array.Scalar(7))
	pushFunc(vm, addFn())
	if err := Fold(vm); err != nil {
		t.Fatal(err)
	}
	r, _ := vm.Pop("r")
	if got := numsOf(t, r)[0]; got != 7 {
		t.Fatalf("got %v want 7", got)
	}
}

func TestFoldArityError(t *testing.T) {
	vm := machine.New()
	vm.Push(array.Vector(1, 2))
	vm.Push(array.Scalar(0))
	pushFunc(vm, &machine.Func{Name: "id", Sig: array.Signature{Args: 1, Outputs: 1}})
	if err := Fold(vm); err == nil {
		t.Fatal("expected arity error")
	}
}
