package fad

// Comparisons look at values only; derivatives and parents are ignored.

// Eq reports whether s.Value() == o.Value().
func (s *Scalar) Eq(o Operand) bool { return s.value == o.Value() }

// Ne reports whether s.Value() != o.Value().
func (s *Scalar) Ne(o Operand) bool { return s.value != o.Value() }

// Lt reports whether s.Value() < o.Value().
func (s *Scalar) Lt(o Operand) bool { return s.value < o.Value() }

// Le reports whether s.Value() <= o.Value().
func (s *Scalar) Le(o Operand) bool { return s.value <= o.Value() }

// Gt reports whether s.Value() > o.Value().
func (s *Scalar) Gt(o Operand) bool { return s.value > o.Value() }

// Ge reports whether s.Value() >= o.Value().
func (s *Scalar) Ge(o Operand) bool { return s.value >= o.Value() }
