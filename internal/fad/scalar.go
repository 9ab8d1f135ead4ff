package fad

import (
	"fmt"
	"math"

	"github.com/bits-and-blooms/bitset"
)

// Operand is either a *Scalar or a Const.
type Operand interface {
	// Value returns the real value of the operand.
	Value() float64
	operand()
}

// Scalar is a differentiable scalar: a value, its partial derivatives with
// respect to the registry's inputs, and the inputs it depends on.
//
// A Scalar is either an input, created by Registry.NewScal, or derived, the
// result of an operator. Derived scalars never change after construction.
// The derivative vector of an input grows by one zero slot each time another
// input is registered.
//
// Identity is pointer identity: two scalars with equal values are distinct
// nodes. Eq and the other comparisons look at values only.
type Scalar struct {
	reg     *Registry
	value   float64
	der     []float64      // Partial derivative per input slot
	parents *bitset.BitSet // Input slots the value depends on, never includes the scalar itself
	name    string
	op      string // Operation that produced the scalar ("input" for inputs)
	slot    int    // Input slot, -1 for derived scalars
	mode    Mode
}

func (s *Scalar) operand() {}

// Value returns the evaluated value.
func (s *Scalar) Value() float64 {
	return s.value
}

// Name returns the display name ("" if unnamed).
func (s *Scalar) Name() string {
	return s.name
}

// IsInput reports whether s was created by Registry.NewScal.
func (s *Scalar) IsInput() bool {
	return s.slot >= 0
}

// Slot returns the input slot of s, or -1 for a derived scalar.
func (s *Scalar) Slot() int {
	return s.slot
}

// Op returns the name of the operation that produced s.
func (s *Scalar) Op() string {
	return s.op
}

// Mode returns the registry mode s was built under.
func (s *Scalar) Mode() Mode {
	return s.mode
}

// Registry returns the session s belongs to.
func (s *Scalar) Registry() *Registry {
	return s.reg
}

// Same reports whether s and o are the same graph node.
func (s *Scalar) Same(o *Scalar) bool {
	return s == o
}

// Width returns the number of input slots in the derivative vector.
func (s *Scalar) Width() int {
	return len(s.partials())
}

// Derivative returns the partials of s with respect to the inputs it depends
// on, in input creation order. Slots present only through widening are left
// out. For an input it returns its seed.
func (s *Scalar) Derivative() []float64 {
	der := s.partials()
	if s.IsInput() {
		return []float64{der[s.slot]}
	}
	out := make([]float64, 0, s.parents.Count())
	forEachSlot(s.parents, func(k int) {
		out = append(out, der[k])
	})
	return out
}

// Partial returns ∂s/∂input. The input must belong to the same registry and
// have a slot in s's derivative vector.
func (s *Scalar) Partial(input *Scalar) (float64, error) {
	if input == nil || input.reg != s.reg {
		return 0, &VariableError{Op: "partial", Slot: -1, Err: ErrForeignScalar}
	}
	if !input.IsInput() {
		return 0, &VariableError{Op: "partial", Name: input.name, Slot: -1, Err: ErrNotInput}
	}
	der := s.partials()
	if input.slot >= len(der) {
		return 0, &VariableError{Op: "partial", Name: input.name, Slot: input.slot, Err: ErrUnknownVariable}
	}
	return der[input.slot], nil
}

// Gradient returns ∂s/∂v for each v in inputs, in the given order.
func (s *Scalar) Gradient(inputs ...*Scalar) ([]float64, error) {
	out := make([]float64, len(inputs))
	for i, in := range inputs {
		d, err := s.Partial(in)
		if err != nil {
			return nil, err
		}
		out[i] = d
	}
	return out, nil
}

// Parents returns the inputs the value of s depends on, in creation order.
// Inputs have no parents.
func (s *Scalar) Parents() []*Scalar {
	out := make([]*Scalar, 0, s.parents.Count())
	forEachSlot(s.parents, func(k int) {
		out = append(out, s.reg.inputAt(k))
	})
	return out
}

// DependsOn reports whether input is among the parents of s.
func (s *Scalar) DependsOn(input *Scalar) bool {
	if input == nil || input.reg != s.reg || !input.IsInput() {
		return false
	}
	return s.parents.Test(uint(input.slot))
}

// Err returns a *NonFiniteError if the value or any partial of s is NaN or
// infinite, nil otherwise.
func (s *Scalar) Err() error {
	return checkFinite(s.op, s.value, s.partials())
}

// String formats s as "name{value=... der=[...]}".
func (s *Scalar) String() string {
	label := s.name
	if label == "" {
		label = s.op
	}
	return fmt.Sprintf("%s{value=%g der=%v}", label, s.value, s.Derivative())
}

// partials returns a read-only view of the derivative vector. Inputs are
// copied under the registry lock because widening may grow them.
func (s *Scalar) partials() []float64 {
	if s.IsInput() {
		return s.reg.snapshot(s)
	}
	return s.der
}

// lineage returns the parents of s plus s itself when it is an input.
func (s *Scalar) lineage() *bitset.BitSet {
	b := s.parents.Clone()
	if s.IsInput() {
		b.Set(uint(s.slot))
	}
	return b
}

// derive builds an immutable derived scalar owned by s's registry.
func (s *Scalar) derive(op string, value float64, der []float64, parents *bitset.BitSet) *Scalar {
	if s.reg.strict {
		if err := checkFinite(op, value, der); err != nil {
			panic(err)
		}
	}
	return &Scalar{
		reg:     s.reg,
		value:   value,
		der:     der,
		parents: parents,
		op:      op,
		slot:    -1,
		mode:    s.reg.Mode(),
	}
}

func checkFinite(op string, value float64, der []float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return &NonFiniteError{Op: op, Value: value, Slot: -1}
	}
	for k, d := range der {
		if math.IsNaN(d) || math.IsInf(d, 0) {
			return &NonFiniteError{Op: op, Value: d, Slot: k}
		}
	}
	return nil
}

func forEachSlot(b *bitset.BitSet, fn func(k int)) {
	for i, ok := b.NextSet(0); ok; i, ok = b.NextSet(i + 1) {
		fn(int(i))
	}
}
