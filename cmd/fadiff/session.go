package main

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/born-ml/fadiff/internal/config"
	"github.com/born-ml/fadiff/internal/expr"
	"github.com/born-ml/fadiff/internal/fad"
	"github.com/born-ml/fadiff/internal/parallel"
	"github.com/born-ml/fadiff/internal/report"
)

type inputSpec struct {
	name  string
	value float64
	seed  float64
}

type namedExpr struct {
	name string
	expr string
}

// sessionJob is everything needed to build a registry and evaluate against it.
type sessionJob struct {
	opts        []fad.Option
	inputs      []inputSpec
	expressions []namedExpr
}

// parseVars parses "name=value[:seed]" flags.
func parseVars(vars []string) ([]inputSpec, error) {
	out := make([]inputSpec, 0, len(vars))
	seen := make(map[string]bool, len(vars))
	for _, v := range vars {
		name, rest, ok := strings.Cut(v, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --var %q: want name=value[:seed]", v)
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate --var %q", name)
		}
		seen[name] = true

		valueStr, seedStr, hasSeed := strings.Cut(rest, ":")
		value, err := strconv.ParseFloat(strings.TrimSpace(valueStr), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value in --var %q: %w", v, err)
		}
		seed := 1.0
		if hasSeed {
			seed, err = strconv.ParseFloat(strings.TrimSpace(seedStr), 64)
			if err != nil {
				return nil, fmt.Errorf("invalid seed in --var %q: %w", v, err)
			}
		}
		out = append(out, inputSpec{name: name, value: value, seed: seed})
	}
	return out, nil
}

func loadSessionJob(path string, logger *slog.Logger) (sessionJob, error) {
	s, err := config.Load(path)
	if err != nil {
		return sessionJob{}, err
	}
	opts, err := s.Options()
	if err != nil {
		return sessionJob{}, err
	}
	job := sessionJob{opts: append(opts, fad.WithLogger(logger))}
	for _, in := range s.Inputs {
		job.inputs = append(job.inputs, inputSpec{name: in.Name, value: in.Value, seed: in.SeedOrDefault()})
	}
	for _, e := range s.Expressions {
		job.expressions = append(job.expressions, namedExpr{name: e.Name, expr: e.Expr})
	}
	return job, nil
}

// evaluate registers every input first, then evaluates the expressions
// concurrently; after registration the registry is only read.
func (j sessionJob) evaluate() ([]report.Result, error) {
	reg := fad.NewRegistry(j.opts...)

	env := make(expr.Env, len(j.inputs))
	for _, in := range j.inputs {
		s, err := fad.Eval(func() *fad.Scalar {
			return reg.NewScal(in.value, fad.WithName(in.name), fad.WithSeed(in.seed))
		})
		if err != nil {
			return nil, fmt.Errorf("input %q: %w", in.name, err)
		}
		env[in.name] = s
	}

	results := parallel.Map(len(j.expressions), func(i int) report.Result {
		e := j.expressions[i]
		out, err := expr.Evaluate(e.expr, env)
		if err != nil {
			return report.FromError(e.name, e.expr, err)
		}
		return report.FromOperand(e.name, e.expr, out)
	}, parallel.DefaultConfig())

	return results, nil
}

func (a *app) execute(w io.Writer, job sessionJob) error {
	results, err := job.evaluate()
	if err != nil {
		return err
	}

	if a.jsonOutput {
		err = report.WriteJSON(w, results)
	} else {
		err = report.WriteText(w, results, a.useColor(w))
	}
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d expressions failed", failed, len(results))
	}
	return nil
}
