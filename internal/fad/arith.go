package fad

import (
	"fmt"
	"math"

	"github.com/bits-and-blooms/bitset"
)

// Add returns s + o.
//
//	d(u+v) = u' + v'
func (s *Scalar) Add(o Operand) *Scalar {
	switch o := o.(type) {
	case *Scalar:
		return s.binary("add", o, s.value+o.value, func(du, dv float64) float64 {
			return du + dv
		})
	case Const:
		return s.unary("add", s.value+float64(o), func(du float64) float64 {
			return du
		})
	}
	panic(badOperand("add", o))
}

// Sub returns s - o.
//
//	d(u-v) = u' - v'
func (s *Scalar) Sub(o Operand) *Scalar {
	switch o := o.(type) {
	case *Scalar:
		return s.binary("sub", o, s.value-o.value, func(du, dv float64) float64 {
			return du - dv
		})
	case Const:
		return s.unary("sub", s.value-float64(o), func(du float64) float64 {
			return du
		})
	}
	panic(badOperand("sub", o))
}

// Mul returns s * o.
//
//	d(u·v) = u'·v + u·v'
func (s *Scalar) Mul(o Operand) *Scalar {
	switch o := o.(type) {
	case *Scalar:
		u, v := s.value, o.value
		return s.binary("mul", o, u*v, func(du, dv float64) float64 {
			return du*v + u*dv
		})
	case Const:
		c := float64(o)
		return s.unary("mul", s.value*c, func(du float64) float64 {
			return du * c
		})
	}
	panic(badOperand("mul", o))
}

// Div returns s / o. A zero divisor yields ±Inf or NaN (see Err).
//
//	d(u/v) = (u'·v - u·v') / v²
func (s *Scalar) Div(o Operand) *Scalar {
	switch o := o.(type) {
	case *Scalar:
		u, v := s.value, o.value
		return s.binary("div", o, u/v, func(du, dv float64) float64 {
			return (du*v - u*dv) / (v * v)
		})
	case Const:
		c := float64(o)
		return s.unary("div", s.value/c, func(du float64) float64 {
			return du / c
		})
	}
	panic(badOperand("div", o))
}

// Pow returns s raised to o.
//
// With a scalar exponent only the base's partials propagate:
//
//	d(u^v) = v·u^(v-1)·u'
//
// With a constant exponent c:
//
//	d(u^c) = c·u^(c-1)·u'
func (s *Scalar) Pow(o Operand) *Scalar {
	switch o := o.(type) {
	case *Scalar:
		u, v := s.value, o.value
		factor := v * math.Pow(u, v-1)
		return s.binary("pow", o, math.Pow(u, v), func(du, _ float64) float64 {
			return factor * du
		})
	case Const:
		c := float64(o)
		factor := c * math.Pow(s.value, c-1)
		return s.unary("pow", math.Pow(s.value, c), func(du float64) float64 {
			return factor * du
		})
	}
	panic(badOperand("pow", o))
}

// Neg returns -s.
func (s *Scalar) Neg() *Scalar {
	return s.unary("neg", -s.value, func(du float64) float64 {
		return -du
	})
}

// binary combines two scalars slot by slot over s's derivative vector.
//
// o must have every slot s has, and s must have a slot for every input o
// depends on; otherwise the result would silently lose a partial, so it
// panics with a *VariableError wrapping ErrUnknownVariable.
func (s *Scalar) binary(op string, o *Scalar, value float64, rule func(du, dv float64) float64) *Scalar {
	if o.reg != s.reg {
		panic(&VariableError{Op: op, Name: o.name, Slot: -1, Err: ErrForeignScalar})
	}

	du, dv := s.partials(), o.partials()
	if len(dv) < len(du) {
		panic(&VariableError{Op: op, Name: s.reg.slotName(len(dv)), Slot: len(dv), Err: ErrUnknownVariable})
	}

	parents := s.lineage()
	other := o.lineage()
	if last, ok := lastSlot(other); ok && last >= len(du) {
		panic(&VariableError{Op: op, Name: s.reg.slotName(last), Slot: last, Err: ErrUnknownVariable})
	}
	parents.InPlaceUnion(other)

	der := make([]float64, len(du))
	for k := range du {
		der[k] = rule(du[k], dv[k])
	}
	return s.derive(op, value, der, parents)
}

// unary maps every partial of s through rule; the result depends on s.
func (s *Scalar) unary(op string, value float64, rule func(du float64) float64) *Scalar {
	du := s.partials()
	der := make([]float64, len(du))
	for k, d := range du {
		der[k] = rule(d)
	}
	return s.derive(op, value, der, s.lineage())
}

func lastSlot(b *bitset.BitSet) (int, bool) {
	for i := int(b.Len()) - 1; i >= 0; i-- {
		if b.Test(uint(i)) {
			return i, true
		}
	}
	return 0, false
}

func badOperand(op string, o Operand) string {
	return fmt.Sprintf("fad: %s: unsupported operand %T", op, o)
}
