package parallel

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.NumWorkers = 4

	var calls int64
	n := 1000

	got := Map(n, func(i int) int {
		atomic.AddInt64(&calls, 1)
		return i * i
	}, cfg)

	assert.Equal(t, int64(n), calls)
	for i, v := range got {
		if v != i*i {
			t.Fatalf("result[%d] = %d, want %d", i, v, i*i)
		}
	}
}

func TestMap_Sequential(t *testing.T) {
	cfg := Config{Enabled: false}

	var order []int
	got := Map(5, func(i int) string {
		order = append(order, i)
		return string(rune('a' + i))
	}, cfg)

	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, got)
}

func TestMap_FewJobs(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 8, MinJobs: 10}

	var order []int
	Map(3, func(i int) int {
		order = append(order, i)
		return i
	}, cfg)

	// Below MinJobs the jobs run in order on the calling goroutine.
	assert.Equal(t, []int{0, 1, 2}, order)
}

func TestMap_Empty(t *testing.T) {
	got := Map(0, func(i int) int { return i }, DefaultConfig())
	assert.Empty(t, got)
}
