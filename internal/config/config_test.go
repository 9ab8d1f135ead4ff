package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/born-ml/fadiff/internal/fad"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
mode: reverse
strict_finite: true
inputs:
  - {name: x, value: 2}
  - {name: y, value: 5, seed: 0.5}
expressions:
  - {name: f, expr: "x + y"}
  - {expr: "x * y"}
`

func TestParse(t *testing.T) {
	s, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, "reverse", s.Mode)
	assert.True(t, s.StrictFinite)
	require.Len(t, s.Inputs, 2)
	assert.Equal(t, "x", s.Inputs[0].Name)
	assert.Equal(t, 2.0, s.Inputs[0].Value)
	assert.Equal(t, 1.0, s.Inputs[0].SeedOrDefault())
	assert.Equal(t, 0.5, s.Inputs[1].SeedOrDefault())
	require.Len(t, s.Expressions, 2)
	assert.Equal(t, "f", s.Expressions[0].Name)
	assert.Equal(t, "x * y", s.Expressions[1].Expr)

	mode, err := s.ParsedMode()
	require.NoError(t, err)
	assert.Equal(t, fad.Reverse, mode)

	opts, err := s.Options()
	require.NoError(t, err)
	reg := fad.NewRegistry(opts...)
	assert.True(t, reg.Strict())
	assert.Equal(t, fad.Reverse, reg.Mode())
}

func TestParse_DefaultMode(t *testing.T) {
	s, err := Parse([]byte("inputs: [{name: x, value: 1}]\nexpressions: [{expr: x}]\n"))
	require.NoError(t, err)

	mode, err := s.ParsedMode()
	require.NoError(t, err)
	assert.Equal(t, fad.Forward, mode)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantMsg string
	}{
		{"bad yaml", "inputs: [", "decode yaml"},
		{"no inputs", "expressions: [{expr: x}]", "Session.Inputs"},
		{"no expressions", "inputs: [{name: x, value: 1}]", "Session.Expressions"},
		{"unnamed input", "inputs: [{value: 1}]\nexpressions: [{expr: x}]", "Session.Inputs[0].Name"},
		{"operator in name", "inputs: [{name: a+b, value: 1}]\nexpressions: [{expr: x}]", "excludesall"},
		{"empty expr", "inputs: [{name: x, value: 1}]\nexpressions: [{name: f}]", "Session.Expressions[0].Expr"},
		{"bad mode", "mode: sideways\ninputs: [{name: x, value: 1}]\nexpressions: [{expr: x}]", "oneof"},
		{"duplicate", "inputs: [{name: x, value: 1}, {name: x, value: 2}]\nexpressions: [{expr: x}]", `duplicate input "x"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, s.Inputs, 2)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorContains(t, err, "read session")
}
