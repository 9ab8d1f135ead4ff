package expr

import (
	"fmt"
	"math"

	"github.com/born-ml/fadiff/internal/fad"
)

type function struct {
	scalar func(*fad.Scalar) *fad.Scalar
	plain  func(float64) float64
}

var functions = map[string]function{
	"exp":     {fad.Exp, math.Exp},
	"log":     {fad.Log, math.Log},
	"ln":      {fad.Log, math.Log},
	"sqrt":    {fad.Sqrt, math.Sqrt},
	"sin":     {fad.Sin, math.Sin},
	"cos":     {fad.Cos, math.Cos},
	"tan":     {fad.Tan, math.Tan},
	"tanh":    {fad.Tanh, math.Tanh},
	"sigmoid": {fad.Sigmoid, func(x float64) float64 { return 1 / (1 + math.Exp(-x)) }},
	"abs":     {fad.Abs, math.Abs},
}

// Env binds identifiers to input scalars.
type Env map[string]*fad.Scalar

// Eval evaluates n. Identifiers resolve through env; sub-expressions without
// identifiers evaluate to fad.Const. Operator misuse reported by fad (stale or
// foreign scalars, strict non-finite results) is returned as an error.
func Eval(n Node, env Env) (fad.Operand, error) {
	switch n := n.(type) {
	case *Number:
		return fad.Const(n.Value), nil

	case *Identifier:
		s, ok := env[n.Name]
		if !ok {
			return nil, fmt.Errorf("%d:%d: unknown variable %q", n.Token.Line, n.Token.Column, n.Name)
		}
		return s, nil

	case *Prefix:
		right, err := Eval(n.Right, env)
		if err != nil {
			return nil, err
		}
		switch r := right.(type) {
		case *fad.Scalar:
			return wrap(fad.Eval(r.Neg))
		case fad.Const:
			return -r, nil
		}
		return nil, fmt.Errorf("unsupported operand %T", right)

	case *Infix:
		left, err := Eval(n.Left, env)
		if err != nil {
			return nil, err
		}
		right, err := Eval(n.Right, env)
		if err != nil {
			return nil, err
		}
		return Apply(n.Operator, left, right)

	case *Call:
		fn, ok := functions[n.Function]
		if !ok {
			return nil, fmt.Errorf("%d:%d: unknown function %q", n.Token.Line, n.Token.Column, n.Function)
		}
		if len(n.Arguments) != 1 {
			return nil, fmt.Errorf("%d:%d: %s takes 1 argument, got %d",
				n.Token.Line, n.Token.Column, n.Function, len(n.Arguments))
		}
		arg, err := Eval(n.Arguments[0], env)
		if err != nil {
			return nil, err
		}
		switch a := arg.(type) {
		case *fad.Scalar:
			return wrap(fad.Eval(func() *fad.Scalar { return fn.scalar(a) }))
		case fad.Const:
			return fad.Const(fn.plain(float64(a))), nil
		}
		return nil, fmt.Errorf("unsupported operand %T", arg)
	}

	return nil, fmt.Errorf("unsupported node %T", n)
}

// Evaluate parses and evaluates src.
func Evaluate(src string, env Env) (fad.Operand, error) {
	n, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return Eval(n, env)
}

// Apply applies a binary operator ("+", "-", "*", "/", "^" or "**") to the
// operand pair, selecting the scalar, constant or reflected form.
func Apply(op string, left, right fad.Operand) (fad.Operand, error) {
	switch l := left.(type) {
	case *fad.Scalar:
		var method func(fad.Operand) *fad.Scalar
		switch op {
		case "+":
			method = l.Add
		case "-":
			method = l.Sub
		case "*":
			method = l.Mul
		case "/":
			method = l.Div
		case "^", "**":
			method = l.Pow
		default:
			return nil, fmt.Errorf("unknown operator %q", op)
		}
		return wrap(fad.Eval(func() *fad.Scalar { return method(right) }))

	case fad.Const:
		switch r := right.(type) {
		case *fad.Scalar:
			var method func(*fad.Scalar) *fad.Scalar
			switch op {
			case "+":
				method = l.Add
			case "-":
				method = l.Sub
			case "*":
				method = l.Mul
			case "/":
				method = l.Div
			case "^", "**":
				method = l.Pow
			default:
				return nil, fmt.Errorf("unknown operator %q", op)
			}
			return wrap(fad.Eval(func() *fad.Scalar { return method(r) }))

		case fad.Const:
			a, b := float64(l), float64(r)
			switch op {
			case "+":
				return fad.Const(a + b), nil
			case "-":
				return fad.Const(a - b), nil
			case "*":
				return fad.Const(a * b), nil
			case "/":
				return fad.Const(a / b), nil
			case "^", "**":
				return fad.Const(math.Pow(a, b)), nil
			default:
				return nil, fmt.Errorf("unknown operator %q", op)
			}
		}
	}
	return nil, fmt.Errorf("unsupported operands %T %s %T", left, op, right)
}

// wrap avoids returning a typed nil *fad.Scalar inside a non-nil Operand.
func wrap(s *fad.Scalar, err error) (fad.Operand, error) {
	if err != nil {
		return nil, err
	}
	return s, nil
}
