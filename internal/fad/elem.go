package fad

import "math"

// Elementary functions. Each maps every partial through the chain rule,
//
//	d f(u) = f'(u)·u'
//
// and the result depends on its argument. Values outside a function's domain
// produce NaN or ±Inf, reported by Err or, in strict registries, by a panic.

// Exp returns e^x.
func Exp(x *Scalar) *Scalar {
	v := math.Exp(x.value)
	return x.unary("exp", v, func(du float64) float64 {
		return v * du
	})
}

// Log returns the natural logarithm of x.
func Log(x *Scalar) *Scalar {
	u := x.value
	return x.unary("log", math.Log(u), func(du float64) float64 {
		return du / u
	})
}

// Sqrt returns the square root of x.
func Sqrt(x *Scalar) *Scalar {
	v := math.Sqrt(x.value)
	return x.unary("sqrt", v, func(du float64) float64 {
		return du / (2 * v)
	})
}

// Sin returns the sine of x.
func Sin(x *Scalar) *Scalar {
	c := math.Cos(x.value)
	return x.unary("sin", math.Sin(x.value), func(du float64) float64 {
		return c * du
	})
}

// Cos returns the cosine of x.
func Cos(x *Scalar) *Scalar {
	s := math.Sin(x.value)
	return x.unary("cos", math.Cos(x.value), func(du float64) float64 {
		return -s * du
	})
}

// Tan returns the tangent of x.
func Tan(x *Scalar) *Scalar {
	c := math.Cos(x.value)
	return x.unary("tan", math.Tan(x.value), func(du float64) float64 {
		return du / (c * c)
	})
}

// Tanh returns the hyperbolic tangent of x.
func Tanh(x *Scalar) *Scalar {
	t := math.Tanh(x.value)
	return x.unary("tanh", t, func(du float64) float64 {
		return (1 - t*t) * du
	})
}

// Sigmoid returns 1 / (1 + e^-x).
func Sigmoid(x *Scalar) *Scalar {
	sig := 1 / (1 + math.Exp(-x.value))
	return x.unary("sigmoid", sig, func(du float64) float64 {
		return sig * (1 - sig) * du
	})
}

// Abs returns |x|. The partials at x = 0 are zero.
func Abs(x *Scalar) *Scalar {
	var sign float64
	switch {
	case x.value > 0:
		sign = 1
	case x.value < 0:
		sign = -1
	}
	return x.unary("abs", math.Abs(x.value), func(du float64) float64 {
		return sign * du
	})
}
