// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package fad

import "github.com/born-ml/fadiff/internal/fad"

// Exp returns e^x.
func Exp(x *Scalar) *Scalar { return fad.Exp(x) }

// Log returns the natural logarithm of x.
func Log(x *Scalar) *Scalar { return fad.Log(x) }

// Sqrt returns the square root of x.
func Sqrt(x *Scalar) *Scalar { return fad.Sqrt(x) }

// Sin returns the sine of x.
func Sin(x *Scalar) *Scalar { return fad.Sin(x) }

// Cos returns the cosine of x.
func Cos(x *Scalar) *Scalar { return fad.Cos(x) }

// Tan returns the tangent of x.
func Tan(x *Scalar) *Scalar { return fad.Tan(x) }

// Tanh returns the hyperbolic tangent of x.
func Tanh(x *Scalar) *Scalar { return fad.Tanh(x) }

// Sigmoid returns 1 / (1 + e^-x).
func Sigmoid(x *Scalar) *Scalar { return fad.Sigmoid(x) }

// Abs returns |x|.
func Abs(x *Scalar) *Scalar { return fad.Abs(x) }
