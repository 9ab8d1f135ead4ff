// Package parallel runs independent jobs on a bounded set of goroutines.
package parallel

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled    bool // Whether parallel execution is enabled.
	NumWorkers int  // Maximum number of concurrent jobs.
	MinJobs    int  // Below this many jobs, run sequentially.
}

// DefaultConfig returns defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:    n > 1,
		NumWorkers: n,
		MinJobs:    2,
	}
}

// Map calls f(i) for i in [0, n) and returns the results in index order.
// Falls back to sequential execution if parallelism is disabled or n is
// below cfg.MinJobs.
func Map[T any](n int, f func(i int) T, cfg Config) []T {
	out := make([]T, n)
	if !cfg.Enabled || n < cfg.MinJobs || cfg.NumWorkers < 2 {
		for i := 0; i < n; i++ {
			out[i] = f(i)
		}
		return out
	}

	var g errgroup.Group
	g.SetLimit(cfg.NumWorkers)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			out[i] = f(i)
			return nil
		})
	}
	_ = g.Wait() // jobs never fail; results carry their own errors
	return out
}
