package parallel

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestForGrainCoversEntireRange(t *testing.T) {
	for _, n := range []int{1, 37, 4096, 10007} {
		counts := make([]int32, n)
		ForGrain(n, 16, func(start, end int) {
			for i := start; i < end; i++ {
				atomic.AddInt32(&counts[i], 1)
			}
		})
		for i, c := range counts {
			require.EqualValues(t, 1, c, "n=%d index %d", n, i)
		}
	}
}

func TestForRunsSmallRangesInline(t *testing.T) {
	var calls int32
	For(Grain-1, func(start, end int) {
		atomic.AddInt32(&calls, 1)
		require.Equal(t, 0, start)
		require.Equal(t, Grain-1, end)
	})
	require.EqualValues(t, 1, calls)
}

func TestForNoopOnNonPositive(t *testing.T) {
	called := false
	For(0, func(start, end int) {
		called = true
	})
	ForGrain(-3, 0, func(start, end int) {
		called = true
	})
	require.False(t, called, "expected callback to remain unused")
}
