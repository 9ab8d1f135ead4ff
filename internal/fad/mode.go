package fad

import (
	"fmt"
	"strings"
)

// Mode selects the differentiation protocol of a Registry.
type Mode int

const (
	// Forward propagates partials alongside values as each operator runs.
	Forward Mode = iota
	// Reverse is accepted and recorded but scalars still propagate forward.
	Reverse
)

// String returns the lowercase mode name.
func (m Mode) String() string {
	switch m {
	case Forward:
		return "forward"
	case Reverse:
		return "reverse"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts "forward" or "reverse" (any case) into a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "forward", "":
		return Forward, nil
	case "reverse":
		return Reverse, nil
	default:
		return Forward, fmt.Errorf("unknown differentiation mode %q", s)
	}
}
