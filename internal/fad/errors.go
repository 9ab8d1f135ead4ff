package fad

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrUnknownVariable = errors.New("unknown variable in derivative map")
	ErrForeignScalar   = errors.New("scalar belongs to a different registry")
	ErrNotInput        = errors.New("scalar is not an input variable")
	ErrNonFinite       = errors.New("non-finite result")
)

// VariableError reports an operation that referenced an input slot the
// operand's derivative map does not have, or an input from another registry.
type VariableError struct {
	Op   string // Operation name (e.g., "add", "partial")
	Name string // Display name of the input involved, if any
	Slot int    // Input slot index, -1 if not applicable
	Err  error  // ErrUnknownVariable, ErrForeignScalar or ErrNotInput
}

// Error implements the error interface.
func (e *VariableError) Error() string {
	switch {
	case e.Name != "" && e.Slot >= 0:
		return fmt.Sprintf("%s: input %q (slot %d): %v", e.Op, e.Name, e.Slot, e.Err)
	case e.Slot >= 0:
		return fmt.Sprintf("%s: slot %d: %v", e.Op, e.Slot, e.Err)
	default:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
}

// Unwrap returns the underlying sentinel error.
func (e *VariableError) Unwrap() error {
	return e.Err
}

// NonFiniteError reports a NaN or infinite value or partial derivative.
type NonFiniteError struct {
	Op    string  // Operation that produced the result
	Value float64 // Offending number
	Slot  int     // Input slot of the offending partial, -1 for the value itself
}

// Error implements the error interface.
func (e *NonFiniteError) Error() string {
	if e.Slot < 0 {
		return fmt.Sprintf("%s: value is %v: %v", e.Op, e.Value, ErrNonFinite)
	}
	return fmt.Sprintf("%s: partial for slot %d is %v: %v", e.Op, e.Slot, e.Value, ErrNonFinite)
}

// Unwrap returns ErrNonFinite.
func (e *NonFiniteError) Unwrap() error {
	return ErrNonFinite
}

// Eval runs fn and converts a *VariableError or *NonFiniteError panic (as
// raised by operators on misuse or in strict-finite registries) into a
// returned error. Any other panic is re-raised.
func Eval(fn func() *Scalar) (s *Scalar, err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		e, ok := r.(error)
		if !ok {
			panic(r)
		}
		var varErr *VariableError
		var finErr *NonFiniteError
		if !errors.As(e, &varErr) && !errors.As(e, &finErr) {
			panic(r)
		}
		s, err = nil, e
	}()
	return fn(), nil
}
