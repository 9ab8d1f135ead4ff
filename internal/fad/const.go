package fad

import "math"

// Const is a plain real constant used as an operand. Its partials are zero
// everywhere. Methods on Const give the reflected forms c∘v.
type Const float64

// Value returns the constant.
func (c Const) Value() float64 {
	return float64(c)
}

func (Const) operand() {}

// Add returns c + v.
func (c Const) Add(v *Scalar) *Scalar {
	return v.unary("add", float64(c)+v.value, func(dv float64) float64 {
		return dv
	})
}

// Sub returns c - v.
//
//	d(c-v) = -v'
func (c Const) Sub(v *Scalar) *Scalar {
	return v.unary("sub", float64(c)-v.value, func(dv float64) float64 {
		return -dv
	})
}

// Mul returns c * v.
func (c Const) Mul(v *Scalar) *Scalar {
	k := float64(c)
	return v.unary("mul", k*v.value, func(dv float64) float64 {
		return k * dv
	})
}

// Div returns c / v.
//
//	d(c/v) = -c/v²·v'
func (c Const) Div(v *Scalar) *Scalar {
	k := float64(c)
	factor := -k / (v.value * v.value)
	return v.unary("div", k/v.value, func(dv float64) float64 {
		return factor * dv
	})
}

// Pow returns c raised to v. A non-positive base gives NaN partials.
//
//	d(c^v) = c^v·ln(c)·v'
func (c Const) Pow(v *Scalar) *Scalar {
	k := float64(c)
	value := math.Pow(k, v.value)
	factor := value * math.Log(k)
	return v.unary("pow", value, func(dv float64) float64 {
		return factor * dv
	})
}
