package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "fadiff "+version+"\n", out)
}

func TestEval_Text(t *testing.T) {
	out, _, err := execute(t, "eval", "x * y", "--var", "x=3", "--var", "y=4")
	require.NoError(t, err)

	want := "f = x * y\n" +
		"  value  12\n" +
		"  ∂f/∂x  4\n" +
		"  ∂f/∂y  3\n"
	assert.Equal(t, want, out)
}

func TestEval_JSON(t *testing.T) {
	out, _, err := execute(t, "eval", "x ^ 3", "--var", "x=2", "--json")
	require.NoError(t, err)

	var results []struct {
		Expr     string  `json:"expr"`
		Value    float64 `json:"value"`
		Partials []struct {
			Input string  `json:"input"`
			Value float64 `json:"value"`
		} `json:"partials"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)
	assert.Equal(t, 8.0, results[0].Value)
	require.Len(t, results[0].Partials, 1)
	assert.Equal(t, "x", results[0].Partials[0].Input)
	assert.Equal(t, 12.0, results[0].Partials[0].Value)
}

func TestEval_Seed(t *testing.T) {
	out, _, err := execute(t, "eval", "x * 3", "--var", "x=1:0.5")
	require.NoError(t, err)
	assert.Contains(t, out, "∂f/∂x  1.5")
}

func TestEval_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{"bad var", []string{"eval", "x", "--var", "x"}, "want name=value"},
		{"bad value", []string{"eval", "x", "--var", "x=abc"}, "invalid value"},
		{"bad seed", []string{"eval", "x", "--var", "x=1:abc"}, "invalid seed"},
		{"duplicate var", []string{"eval", "x", "--var", "x=1", "--var", "x=2"}, "duplicate --var"},
		{"bad mode", []string{"eval", "x", "--var", "x=1", "--mode", "sideways"}, "unknown differentiation mode"},
		{"unknown variable", []string{"eval", "x + w", "--var", "x=1"}, "1 of 1 expressions failed"},
		{"strict", []string{"eval", "1 / x", "--var", "x=0", "--strict"}, "1 of 1 expressions failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stderr, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.Contains(t, stderr, tt.wantMsg)
		})
	}
}

func TestEval_VerboseLogsRegistration(t *testing.T) {
	_, stderr, err := execute(t, "eval", "x", "--var", "x=1", "-v")
	require.NoError(t, err)
	assert.Contains(t, stderr, "registered input")
}

func TestEval_ReverseModeWarns(t *testing.T) {
	out, stderr, err := execute(t, "eval", "x + 1", "--var", "x=1", "--mode", "reverse")
	require.NoError(t, err)
	assert.Contains(t, stderr, "reverse mode selected")
	assert.Contains(t, out, "value  2")
}

func TestRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")
	doc := `
inputs:
  - {name: x, value: 2}
  - {name: y, value: 5}
  - {name: z, value: 3}
expressions:
  - {name: f, expr: "x + y + z"}
  - {name: g, expr: "x * y"}
  - {name: h, expr: "x ^ 3"}
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	out, _, err := execute(t, "run", path)
	require.NoError(t, err)

	want := "f = x + y + z\n" +
		"  value  10\n" +
		"  ∂f/∂x  1\n" +
		"  ∂f/∂y  1\n" +
		"  ∂f/∂z  1\n" +
		"\n" +
		"g = x * y\n" +
		"  value  10\n" +
		"  ∂g/∂x  5\n" +
		"  ∂g/∂y  2\n" +
		"\n" +
		"h = x ^ 3\n" +
		"  value  8\n" +
		"  ∂h/∂x  12\n"
	assert.Equal(t, want, out)
}

func TestRun_InvalidSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")
	require.NoError(t, os.WriteFile(path, []byte("inputs: []\n"), 0o600))

	_, _, err := execute(t, "run", path)
	assert.ErrorContains(t, err, "invalid session")
}

func TestParseVars(t *testing.T) {
	got, err := parseVars([]string{"x=2", " y = -1.5 : 3 "})
	require.NoError(t, err)
	assert.Equal(t, []inputSpec{
		{name: "x", value: 2, seed: 1},
		{name: "y", value: -1.5, seed: 3},
	}, got)
}
