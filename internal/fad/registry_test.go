package fad

import (
	"bytes"
	"log/slog"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry_Defaults(t *testing.T) {
	reg := NewRegistry()

	assert.Equal(t, Forward, reg.Mode())
	assert.Equal(t, 0, reg.NumInputs())
	assert.Empty(t, reg.Inputs())
	assert.NotEmpty(t, reg.ID())
	assert.False(t, reg.Strict())
}

func TestNewRegistry_DistinctSessions(t *testing.T) {
	a := NewRegistry()
	b := NewRegistry()

	a.NewScal(1)
	a.NewScal(2)
	b.NewScal(3)

	assert.NotEqual(t, a.ID(), b.ID())
	assert.Equal(t, 2, a.NumInputs())
	assert.Equal(t, 1, b.NumInputs())
}

func TestNewScal_SlotsFollowCreationOrder(t *testing.T) {
	reg := NewRegistry()
	x := reg.NewScal(2, WithName("x"))
	y := reg.NewScal(5, WithName("y"))
	z := reg.NewScal(3, WithName("z"))

	assert.Equal(t, 0, x.Slot())
	assert.Equal(t, 1, y.Slot())
	assert.Equal(t, 2, z.Slot())
	assert.Equal(t, []*Scalar{x, y, z}, reg.Inputs())
	assert.True(t, x.IsInput())
	assert.Equal(t, "input", x.Op())
	assert.Equal(t, "y", y.Name())
}

func TestNewScal_CrossWidening(t *testing.T) {
	reg := NewRegistry()
	x := reg.NewScal(2)
	assert.Equal(t, 1, x.Width())

	y := reg.NewScal(5)
	assert.Equal(t, 2, x.Width())
	assert.Equal(t, 2, y.Width())

	z := reg.NewScal(3, WithSeed(2.5))
	for _, in := range []*Scalar{x, y, z} {
		assert.Equal(t, 3, in.Width())
	}

	cases := []struct {
		of, wrt *Scalar
		want    float64
	}{
		{x, z, 0},
		{y, z, 0},
		{z, x, 0},
		{z, y, 0},
		{z, z, 2.5},
		{x, x, 1},
		{x, y, 0},
	}
	for _, tc := range cases {
		got, err := tc.of.Partial(tc.wrt)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}
}

func TestNewScal_DerivedScalarsNotWidened(t *testing.T) {
	reg := NewRegistry()
	x := reg.NewScal(2)
	f := x.Mul(Const(3))
	require.Equal(t, 1, f.Width())

	z := reg.NewScal(7)

	assert.Equal(t, 1, f.Width(), "derived scalars keep the width they were built with")
	assert.Equal(t, 2, x.Width())

	_, err := f.Partial(z)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownVariable)
}

func TestSetMode(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	reg := NewRegistry(WithLogger(logger))

	x := reg.NewScal(1)
	reg.SetMode(Reverse)
	y := reg.NewScal(2)

	assert.Equal(t, Reverse, reg.Mode())
	assert.Equal(t, Forward, x.Mode(), "existing scalars keep their mode")
	assert.Equal(t, Reverse, y.Mode())
	assert.Equal(t, Reverse, x.Add(y).Mode())
	assert.Contains(t, buf.String(), "reverse mode selected")
	assert.Contains(t, buf.String(), "session_id="+reg.ID())

	// Reverse mode still propagates forward.
	d, err := x.Mul(y).Partial(x)
	require.NoError(t, err)
	assert.Equal(t, 2.0, d)
}

func TestNewScal_LogsRegistration(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	reg := NewRegistry(WithLogger(logger))

	reg.NewScal(4, WithName("w"))

	out := buf.String()
	assert.Contains(t, out, "registered input")
	assert.Contains(t, out, "name=w")
	assert.Contains(t, out, "slot=0")
}

func TestWithStrictFinite_Input(t *testing.T) {
	reg := NewRegistry(WithStrictFinite())
	assert.True(t, reg.Strict())

	defer func() {
		r := recover()
		require.NotNil(t, r, "expected panic for NaN input")
		err, ok := r.(error)
		require.True(t, ok)
		assert.ErrorIs(t, err, ErrNonFinite)
	}()
	reg.NewScal(math.NaN())
}

func TestRegistry_ConcurrentUse(t *testing.T) {
	reg := NewRegistry()
	base := reg.NewScal(1)

	const workers = 8
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			in := reg.NewScal(float64(i))
			// Reading base while other goroutines widen it.
			_ = base.Add(Const(1)).Value()
			_ = in.Width()
		}(i)
	}
	wg.Wait()

	require.Equal(t, workers+1, reg.NumInputs())
	for _, in := range reg.Inputs() {
		assert.Equal(t, workers+1, in.Width())
		d, err := in.Partial(in)
		require.NoError(t, err)
		assert.Equal(t, 1.0, d)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"forward", Forward, false},
		{"Reverse", Reverse, false},
		{"", Forward, false},
		{" forward ", Forward, false},
		{"sideways", Forward, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Equal(t, "forward", Forward.String())
	assert.Equal(t, "reverse", Reverse.String())
	assert.Equal(t, "Mode(7)", Mode(7).String())
}
