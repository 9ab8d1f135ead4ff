package fad

import (
	"log/slog"
	"math"
	"sync"

	"github.com/bits-and-blooms/bitset"
	"github.com/google/uuid"
)

// Registry is a differentiation session: the ordered set of input variables
// created so far and the mode new scalars are built under.
//
// Registering an input is one atomic transaction under the write lock: the
// new input is appended and every existing input's derivative vector gains a
// zero slot for it. Operators read input derivative vectors under the read
// lock, so a Registry may be shared between goroutines.
type Registry struct {
	mu     sync.RWMutex
	id     string
	mode   Mode
	strict bool
	inputs []*Scalar // Slot i holds the i-th registered input
	logger *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithMode sets the initial differentiation mode.
func WithMode(m Mode) Option {
	return func(r *Registry) {
		r.mode = m
	}
}

// WithLogger sets the logger. A nil logger selects slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = l
	}
}

// WithStrictFinite makes every operator panic with *NonFiniteError when its
// value or any partial is NaN or infinite, instead of propagating it.
func WithStrictFinite() Option {
	return func(r *Registry) {
		r.strict = true
	}
}

// NewRegistry creates an empty session in Forward mode.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		id:     uuid.NewString(),
		mode:   Forward,
		inputs: make([]*Scalar, 0, 8),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	r.logger = r.logger.With(slog.String("session_id", r.id))
	if r.mode == Reverse {
		r.warnReverse()
	}
	return r
}

// InputOption configures an input created by NewScal.
type InputOption func(*inputConfig)

type inputConfig struct {
	seed float64
	name string
}

// WithSeed sets the input's derivative with respect to itself. Default 1.
func WithSeed(seed float64) InputOption {
	return func(c *inputConfig) {
		c.seed = seed
	}
}

// WithName sets the input's display name.
func WithName(name string) InputOption {
	return func(c *inputConfig) {
		c.name = name
	}
}

// NewScal creates and registers a new input variable.
//
// The new input gets the next slot. Every existing input gains a zero
// partial for it and it gets a zero partial for each of them; its partial
// with respect to itself is the seed. Derived scalars built earlier are not
// widened.
func (r *Registry) NewScal(value float64, opts ...InputOption) *Scalar {
	cfg := inputConfig{seed: 1}
	for _, opt := range opts {
		opt(&cfg)
	}

	if r.strict && (math.IsNaN(value) || math.IsInf(value, 0)) {
		panic(&NonFiniteError{Op: "input", Value: value, Slot: -1})
	}

	r.mu.Lock()
	slot := len(r.inputs)
	s := &Scalar{
		reg:     r,
		value:   value,
		der:     make([]float64, slot+1),
		parents: bitset.New(0),
		name:    cfg.name,
		op:      "input",
		slot:    slot,
		mode:    r.mode,
	}
	for _, v := range r.inputs {
		v.der = append(v.der, 0)
	}
	s.der[slot] = cfg.seed
	r.inputs = append(r.inputs, s)
	r.mu.Unlock()

	r.logger.Debug("registered input",
		slog.Int("slot", slot),
		slog.String("name", cfg.name),
		slog.Float64("value", value),
		slog.Float64("seed", cfg.seed),
	)
	return s
}

// SetMode changes the mode for scalars created from now on.
// Existing scalars keep the mode they were built under.
func (r *Registry) SetMode(m Mode) {
	r.mu.Lock()
	r.mode = m
	r.mu.Unlock()
	if m == Reverse {
		r.warnReverse()
	}
}

// Mode returns the current differentiation mode.
func (r *Registry) Mode() Mode {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.mode
}

// ID returns the session identifier used in log records.
func (r *Registry) ID() string {
	return r.id
}

// NumInputs returns the number of registered inputs.
func (r *Registry) NumInputs() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.inputs)
}

// Inputs returns the registered inputs in creation order.
func (r *Registry) Inputs() []*Scalar {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Scalar, len(r.inputs))
	copy(out, r.inputs)
	return out
}

// Strict reports whether the registry was built WithStrictFinite.
func (r *Registry) Strict() bool {
	return r.strict
}

// inputAt returns the input registered in slot, or nil.
func (r *Registry) inputAt(slot int) *Scalar {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if slot < 0 || slot >= len(r.inputs) {
		return nil
	}
	return r.inputs[slot]
}

// slotName returns the display name of the input in slot, or "".
func (r *Registry) slotName(slot int) string {
	if in := r.inputAt(slot); in != nil {
		return in.name
	}
	return ""
}

// snapshot copies the derivative vector of an input; widening may grow it.
func (r *Registry) snapshot(s *Scalar) []float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]float64, len(s.der))
	copy(out, s.der)
	return out
}

func (r *Registry) warnReverse() {
	r.logger.Warn("reverse mode selected; scalars still propagate derivatives forward")
}
