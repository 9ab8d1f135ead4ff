// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package fad provides forward-mode automatic differentiation of scalars.
//
// Values are built from input variables registered in a Registry and combined
// with ordinary arithmetic methods. Every result carries its partial
// derivatives with respect to the inputs it depends on.
//
// Example:
//
//	import "github.com/born-ml/fadiff/fad"
//
//	func main() {
//	    reg := fad.NewRegistry()
//	    x := reg.NewScal(2, fad.WithName("x"))
//
//	    h := x.Pow(fad.Const(3))
//	    fmt.Println(h.Value())       // 8
//	    fmt.Println(h.Derivative())  // [12]
//	}
package fad

import (
	"log/slog"

	"github.com/born-ml/fadiff/internal/fad"
)

// Registry is a differentiation session owning the input variables.
type Registry = fad.Registry

// Scalar is a differentiable scalar value.
type Scalar = fad.Scalar

// Const is a real constant operand.
type Const = fad.Const

// Operand is either a *Scalar or a Const.
type Operand = fad.Operand

// Mode selects forward or reverse differentiation.
type Mode = fad.Mode

// Differentiation modes.
const (
	Forward = fad.Forward
	Reverse = fad.Reverse
)

// Option configures a Registry.
type Option = fad.Option

// InputOption configures an input variable.
type InputOption = fad.InputOption

// VariableError reports an unknown, foreign or non-input variable.
type VariableError = fad.VariableError

// NonFiniteError reports a NaN or infinite value or partial.
type NonFiniteError = fad.NonFiniteError

// Sentinel errors.
var (
	ErrUnknownVariable = fad.ErrUnknownVariable
	ErrForeignScalar   = fad.ErrForeignScalar
	ErrNotInput        = fad.ErrNotInput
	ErrNonFinite       = fad.ErrNonFinite
)

// NewRegistry creates a new differentiation session.
//
// Example:
//
//	reg := fad.NewRegistry(fad.WithStrictFinite())
func NewRegistry(opts ...Option) *Registry {
	return fad.NewRegistry(opts...)
}

// WithMode sets the initial mode of a Registry.
func WithMode(m Mode) Option {
	return fad.WithMode(m)
}

// WithLogger sets the logger of a Registry.
func WithLogger(l *slog.Logger) Option {
	return fad.WithLogger(l)
}

// WithStrictFinite makes operators panic on NaN or infinite results.
func WithStrictFinite() Option {
	return fad.WithStrictFinite()
}

// WithSeed sets an input's derivative with respect to itself.
func WithSeed(seed float64) InputOption {
	return fad.WithSeed(seed)
}

// WithName sets an input's display name.
func WithName(name string) InputOption {
	return fad.WithName(name)
}

// ParseMode parses "forward" or "reverse".
func ParseMode(s string) (Mode, error) {
	return fad.ParseMode(s)
}

// Eval runs fn and returns operator misuse panics as errors.
func Eval(fn func() *Scalar) (*Scalar, error) {
	return fad.Eval(fn)
}
