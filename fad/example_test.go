package fad_test

import (
	"fmt"

	"github.com/born-ml/fadiff/fad"
)

func Example() {
	reg := fad.NewRegistry()
	x := reg.NewScal(2, fad.WithName("x"))
	y := reg.NewScal(5, fad.WithName("y"))
	z := reg.NewScal(3, fad.WithName("z"))

	f := x.Add(y).Add(z)
	fmt.Println(f.Value())
	fmt.Println(f.Derivative())

	// Output:
	// 10
	// [1 1 1]
}

func ExampleScalar_Mul() {
	reg := fad.NewRegistry()
	x := reg.NewScal(3)
	y := reg.NewScal(4)

	g := x.Mul(y)
	dx, _ := g.Partial(x)
	dy, _ := g.Partial(y)
	fmt.Printf("g=%g dg/dx=%g dg/dy=%g\n", g.Value(), dx, dy)

	// Output:
	// g=12 dg/dx=4 dg/dy=3
}

func ExampleConst_Pow() {
	reg := fad.NewRegistry()
	x := reg.NewScal(2)

	h := x.Pow(fad.Const(3))
	fmt.Println(h)

	e := fad.Const(10).Pow(x)
	fmt.Printf("%.4f\n", e.Derivative()[0])

	// Output:
	// pow{value=8 der=[12]}
	// 230.2585
}

func ExampleEval() {
	reg := fad.NewRegistry()
	x := reg.NewScal(1, fad.WithName("x"))
	f := x.Mul(fad.Const(2))
	y := reg.NewScal(1, fad.WithName("y"))

	_, err := fad.Eval(func() *fad.Scalar { return y.Add(f) })
	fmt.Println(err)

	// Output:
	// add: input "y" (slot 1): unknown variable in derivative map
}
