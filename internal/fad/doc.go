// Package fad implements forward-mode automatic differentiation over scalars.
//
// A Registry is a differentiation session. Every independent variable
// ("input") is created through it and receives a slot index; every Scalar
// carries a derivative vector indexed by those slots together with the set of
// inputs its value actually depends on.
//
// Architecture:
//   - Arena storage: derivative maps are []float64 indexed by input slot,
//     parent sets are bitsets over the same slots
//   - Widening: registering a new input appends a zero slot to every existing
//     input and gives the new input a zero slot for each of them
//   - Operand: sealed union of *Scalar and Const, so each operator selects
//     the scalar or constant rule at compile time of the call site
//
// Usage:
//
//	reg := fad.NewRegistry()
//	x := reg.NewScal(3, fad.WithName("x"))
//	y := reg.NewScal(4, fad.WithName("y"))
//
//	g := x.Mul(y)
//	fmt.Println(g.Value())       // 12
//	fmt.Println(g.Derivative())  // [4 3]
//
// Derived scalars are immutable. Their derivative vectors are frozen at the
// width the registry had when they were built: inputs registered later are
// never added retroactively.
package fad
