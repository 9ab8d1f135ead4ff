// Package report renders evaluated expressions and their partial derivatives.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/born-ml/fadiff/internal/fad"
)

// Number is a float64 that encodes NaN and ±Inf as JSON strings.
type Number float64

// MarshalJSON implements json.Marshaler.
func (n Number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	switch {
	case math.IsNaN(f):
		return []byte(`"NaN"`), nil
	case math.IsInf(f, 1):
		return []byte(`"+Inf"`), nil
	case math.IsInf(f, -1):
		return []byte(`"-Inf"`), nil
	}
	return strconv.AppendFloat(nil, f, 'g', -1, 64), nil
}

// Partial is one ∂result/∂input entry.
type Partial struct {
	Input string `json:"input"`
	Value Number `json:"value"`
}

// Result is the outcome of evaluating one expression.
type Result struct {
	Name     string    `json:"name,omitempty"`
	Expr     string    `json:"expr"`
	Value    Number    `json:"value"`
	Partials []Partial `json:"partials,omitempty"`
	Error    string    `json:"error,omitempty"`
}

// FromOperand builds a Result. Partials are listed for the inputs the value
// depends on, in input creation order; an input reports its own seed.
func FromOperand(name, expr string, op fad.Operand) Result {
	r := Result{Name: name, Expr: expr, Value: Number(op.Value())}

	s, ok := op.(*fad.Scalar)
	if !ok {
		return r
	}
	der := s.Derivative()
	inputs := s.Parents()
	if s.IsInput() {
		inputs = []*fad.Scalar{s}
	}
	for i, in := range inputs {
		r.Partials = append(r.Partials, Partial{Input: inputLabel(in), Value: Number(der[i])})
	}
	return r
}

// FromError builds a Result for an expression that failed to evaluate.
func FromError(name, expr string, err error) Result {
	return Result{Name: name, Expr: expr, Value: Number(math.NaN()), Error: err.Error()}
}

func inputLabel(in *fad.Scalar) string {
	if in.Name() != "" {
		return in.Name()
	}
	return fmt.Sprintf("$%d", in.Slot())
}

// WriteJSON writes results as an indented JSON array.
func WriteJSON(w io.Writer, results []Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// WriteText writes results one block per expression:
//
//	f = x * y
//	  value   12
//	  ∂f/∂x   4
//	  ∂f/∂y   3
//
// color enables terminal styling.
func WriteText(w io.Writer, results []Result, color bool) error {
	style := func(s lipgloss.Style, text string) string {
		if !color {
			return text
		}
		return s.Render(text)
	}

	for i, r := range results {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		label := r.Name
		if label == "" {
			label = "f"
		}
		if _, err := fmt.Fprintln(w, style(titleStyle, label+" = "+r.Expr)); err != nil {
			return err
		}
		if r.Error != "" {
			if _, err := fmt.Fprintf(w, "  %s\n", style(errorStyle, "error: "+r.Error)); err != nil {
				return err
			}
			continue
		}

		rows := [][2]string{{"value", formatFloat(float64(r.Value))}}
		for _, p := range r.Partials {
			rows = append(rows, [2]string{"∂" + label + "/∂" + p.Input, formatFloat(float64(p.Value))})
		}
		width := 0
		for _, row := range rows {
			width = max(width, lipgloss.Width(row[0]))
		}
		for _, row := range rows {
			pad := width - lipgloss.Width(row[0])
			cell := row[0] + strings.Repeat(" ", pad)
			if _, err := fmt.Fprintf(w, "  %s  %s\n", style(labelStyle, cell), row[1]); err != nil {
				return err
			}
		}
	}
	return nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
