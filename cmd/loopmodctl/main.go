// cmd/loopmodctl/main.go
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/arraylang/loopmod/internal/array"
	"github.com/arraylang/loopmod/internal/combinator"
	"github.com/arraylang/loopmod/internal/fastpath"
	"github.com/arraylang/loopmod/internal/machine"
	"github.com/arraylang/loopmod/internal/primitive"
)

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		showUsage()
		return
	}

	switch args[0] {
	case "--help", "-h", "help":
		showUsage()
	case "demo":
		runDemo()
	case "reduce":
		runReduce(args[1:])
	case "fold":
		runFold(args[1:])
	case "scan":
		runScan(args[1:])
	case "repeat":
		runRepeat(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", args[0])
		showUsage()
		os.Exit(1)
	}
}

func showUsage() {
	fmt.Println("loopmodctl - looping-modifier engine demo CLI")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  loopmodctl demo                       Run one worked example per combinator")
	fmt.Println("  loopmodctl reduce <op> <n1,n2,...>     Reduce a vector with + - * / max min")
	fmt.Println("  loopmodctl fold <op> <init> <n1,...>   Fold a vector with an explicit seed")
	fmt.Println("  loopmodctl scan <op> <n1,n2,...>       Scan a vector, keeping every partial result")
	fmt.Println("  loopmodctl repeat <op> <operand> <x> <n>  Apply (y -> y op operand) to x, n times")
	fmt.Println("                                          (n<0 inverts op, n=+Inf/-Inf loops until break)")
}

func runReduce(args []string) {
	if len(args) != 2 {
		log.Fatal("usage: loopmodctl reduce <op> <n1,n2,...>")
	}
	vm := machine.New()
	vm.Push(parseVector(args[1]))
	pushPrim(vm, args[0])
	if err := combinator.Reduce(vm); err != nil {
		log.Fatalf("reduce: %v", err)
	}
	printResult(vm)
}

func runFold(args []string) {
	if len(args) != 3 {
		log.Fatal("usage: loopmodctl fold <op> <init> <n1,n2,...>")
	}
	init, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		log.Fatalf("fold: invalid init %q: %v", args[1], err)
	}
	vm := machine.New()
	vm.Push(parseVector(args[2]))
	vm.Push(array.Scalar(init))
	pushPrim(vm, args[0])
	if err := combinator.Fold(vm); err != nil {
		log.Fatalf("fold: %v", err)
	}
	printResult(vm)
}

func runScan(args []string) {
	if len(args) != 2 {
		log.Fatal("usage: loopmodctl scan <op> <n1,n2,...>")
	}
	vm := machine.New()
	vm.Push(parseVector(args[1]))
	pushPrim(vm, args[0])
	if err := combinator.Scan(vm); err != nil {
		log.Fatalf("scan: %v", err)
	}
	printResult(vm)
}

func runRepeat(args []string) {
	if len(args) != 4 {
		log.Fatal("usage: loopmodctl repeat <op> <operand> <x> <n>")
	}
	operand, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		log.Fatalf("repeat: invalid operand %q: %v", args[1], err)
	}
	x, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		log.Fatalf("repeat: invalid x %q: %v", args[2], err)
	}
	n, err := strconv.ParseFloat(args[3], 64)
	if err != nil {
		log.Fatalf("repeat: invalid n %q: %v", args[3], err)
	}
	vm := machine.New()
	vm.Push(array.Scalar(x))
	vm.Push(array.Scalar(n))
	pushUnaryPrim(vm, args[0], operand)
	if err := combinator.Repeat(vm); err != nil {
		log.Fatalf("repeat: %v", err)
	}
	printResult(vm)
}

func runDemo() {
	vm := machine.New()

	vm.Push(array.Vector(1, 2, 3, 4))
	pushPrim(vm, "+")
	mustRun(combinator.Reduce(vm), "reduce")
	printNamed(vm, "reduce(+, [1 2 3 4])")

	vm.Push(array.Vector())
	vm.Push(array.Scalar(7))
	pushPrim(vm, "+")
	mustRun(combinator.Fold(vm), "fold")
	printNamed(vm, "fold(+, 7, [])")

	vm.Push(array.Vector(1, 2, 3, 4))
	pushPrim(vm, "+")
	mustRun(combinator.Scan(vm), "scan")
	printNamed(vm, "scan(+, [1 2 3 4])")

	vm.Push(array.Scalar(1))
	vm.Push(array.Scalar(3))
	pushUnaryPrim(vm, "*", 2)
	mustRun(combinator.Repeat(vm), "repeat")
	printNamed(vm, "repeat(*2, 1, 3)")

	report := vm.Profiler().Report()
	if isatty.IsTerminal(os.Stdout.Fd()) {
		fmt.Print("\033[36m" + report + "\033[0m")
	} else {
		fmt.Print(report)
	}
}

func mustRun(err error, name string) {
	if err != nil {
		log.Fatalf("%s: %v", name, err)
	}
}

func printNamed(vm *machine.VM, label string) {
	v, err := vm.Pop("result")
	if err != nil {
		log.Fatalf("%s: %v", label, err)
	}
	fmt.Printf("%-28s = %s\n", label, v.String())
}

func printResult(vm *machine.VM) {
	v, err := vm.Pop("result")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(v.String())
	report := vm.Profiler().Report()
	if isatty.IsTerminal(os.Stdout.Fd()) {
		fmt.Print("\033[36m" + report + "\033[0m")
	} else {
		fmt.Print(report)
	}
}

func parseVector(csv string) array.NumArray {
	if csv == "" {
		return array.Vector()
	}
	parts := strings.Split(csv, ",")
	data := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			log.Fatalf("invalid number %q: %v", p, err)
		}
		data[i] = v
	}
	return array.Vector(data...)
}

func pushPrim(vm *machine.VM, op string) {
	f, err := primFunc(op)
	if err != nil {
		log.Fatal(err)
	}
	vm.Push(array.FuncScalar(f))
}

// primFunc builds a two-argument elementwise arithmetic Func tagged
// with its recognized primitive, so reduce/fold/scan's fast paths
// engage exactly as they would for a compiled operator token.
func primFunc(op string) (*machine.Func, error) {
	prim, ok := primitiveByName[op]
	if !ok {
		return nil, fmt.Errorf("unrecognized operator %q", op)
	}
	var fn *machine.Func
	fn = &machine.Func{
		Name: op,
		Sig:  array.Signature{Args: 2, Outputs: 1},
		Prim: prim,
		Body: func(m *machine.VM) (bool, error) {
			return applyElementwise(m, prim, false)
		},
	}
	if inv, ok := inverseOf[prim]; ok {
		fn.Invert = func() (*machine.Func, error) {
			invName := inv.String()
			return primFunc(invName)
		}
	}
	return fn, nil
}

func pushUnaryPrim(vm *machine.VM, op string, operand float64) {
	f, err := unaryOpFunc(op, operand)
	if err != nil {
		log.Fatal(err)
	}
	vm.Push(array.FuncScalar(f))
}

// unaryOpFunc builds a one-argument "apply operand via op" Func —
// repeat's target, since repeat always calls a one-argument function
// against whatever sits on top of the stack. Invert swaps in the
// algebraic inverse operator over the same operand, per spec.md §4.8's
// negative-n handling.
func unaryOpFunc(op string, operand float64) (*machine.Func, error) {
	prim, ok := primitiveByName[op]
	if !ok {
		return nil, fmt.Errorf("unrecognized operator %q", op)
	}
	fn := &machine.Func{
		Name: op,
		Sig:  array.Signature{Args: 1, Outputs: 1},
		Prim: prim,
		Body: func(m *machine.VM) (bool, error) {
			x, err := m.Pop("x")
			if err != nil {
				return false, err
			}
			xv, _ := array.AsFloats(x)
			out := make([]float64, len(xv))
			for i, v := range xv {
				out[i] = fastpath.Apply(prim, false, v, operand)
			}
			r, err := array.NewNum(x.Shape(), out)
			if err != nil {
				return false, err
			}
			m.Push(r)
			return false, nil
		},
	}
	if inv, ok := inverseOf[prim]; ok {
		fn.Invert = func() (*machine.Func, error) {
			return unaryOpFunc(inv.String(), operand)
		}
	}
	return fn, nil
}

// applyElementwise pops (b, a) and pushes the elementwise result of
// prim over their numeric data, broadcasting a one-element operand
// against the other's shape — the Body every combinator in this demo
// falls back on when no fast path claims the call.
func applyElementwise(m *machine.VM, prim primitive.Primitive, flipped bool) (bool, error) {
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

	shape := a.Shape()
	n := len(av)
	switch {
	case len(av) == len(bv):
	case len(av) == 1:
		shape = b.Shape()
		n = len(bv)
	case len(bv) == 1:
	default:
		return false, fmt.Errorf("%s: mismatched operand lengths %d and %d", prim, len(av), len(bv))
	}

	out := make([]float64, n)
	for i := 0; i < n; i++ {
		x := av[i%len(av)]
		y := bv[i%len(bv)]
		out[i] = fastpath.Apply(prim, flipped, x, y)
	}
	r, err := array.NewNum(shape, out)
	if err != nil {
		return false, err
	}
	m.Push(r)
	return false, nil
}

var primitiveByName = map[string]primitive.Primitive{
	"+":   primitive.Add,
	"-":   primitive.Sub,
	"*":   primitive.Mul,
	"/":   primitive.Div,
	"max": primitive.Max,
	"min": primitive.Min,
}

var inverseOf = map[primitive.Primitive]primitive.Primitive{
	primitive.Add: primitive.Sub,
	primitive.Sub: primitive.Add,
	primitive.Mul: primitive.Div,
	primitive.Div: primitive.Mul,
}
