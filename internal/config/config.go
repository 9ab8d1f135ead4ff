// Package config loads differentiation sessions from YAML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/born-ml/fadiff/internal/fad"
)

// Session describes the inputs and expressions of one differentiation
// session.
//
// Inputs are registered in file order, which fixes their slot order and so
// the order of every reported derivative.
type Session struct {
	// Mode is "forward" (default) or "reverse".
	Mode string `json:"mode" yaml:"mode" validate:"omitempty,oneof=forward reverse"`

	// StrictFinite turns NaN/Inf results into errors.
	StrictFinite bool `json:"strict_finite" yaml:"strict_finite"`

	Inputs      []Input      `json:"inputs" yaml:"inputs" validate:"required,min=1,dive"`
	Expressions []Expression `json:"expressions" yaml:"expressions" validate:"required,min=1,dive"`
}

// Input is an independent variable.
type Input struct {
	Name  string   `json:"name" yaml:"name" validate:"required,excludesall=+-*/^()"`
	Value float64  `json:"value" yaml:"value"`
	Seed  *float64 `json:"seed,omitempty" yaml:"seed,omitempty"`
}

// SeedOrDefault returns the seed, 1 when unset.
func (in Input) SeedOrDefault() float64 {
	if in.Seed == nil {
		return 1
	}
	return *in.Seed
}

// Expression is a named expression over the inputs.
type Expression struct {
	Name string `json:"name" yaml:"name"`
	Expr string `json:"expr" yaml:"expr" validate:"required"`
}

var validate = validator.New()

// Load reads and validates a session file.
func Load(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read session %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates a session document.
func Parse(data []byte) (*Session, error) {
	var s Session
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks field constraints and rejects duplicate input names.
func (s *Session) Validate() error {
	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, len(verrs))
			for i, fe := range verrs {
				msgs[i] = fmt.Sprintf("%s: failed %q", fe.Namespace(), fe.Tag())
			}
			return fmt.Errorf("invalid session: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid session: %w", err)
	}

	seen := make(map[string]bool, len(s.Inputs))
	for _, in := range s.Inputs {
		if seen[in.Name] {
			return fmt.Errorf("invalid session: duplicate input %q", in.Name)
		}
		seen[in.Name] = true
	}
	return nil
}

// ParsedMode returns the session's fad.Mode.
func (s *Session) ParsedMode() (fad.Mode, error) {
	return fad.ParseMode(s.Mode)
}

// Options returns the registry options the session asks for.
func (s *Session) Options() ([]fad.Option, error) {
	mode, err := s.ParsedMode()
	if err != nil {
		return nil, err
	}
	opts := []fad.Option{fad.WithMode(mode)}
	if s.StrictFinite {
		opts = append(opts, fad.WithStrictFinite())
	}
	return opts, nil
}
