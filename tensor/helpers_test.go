package tensor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func requireAlmostEqual(t *testing.T, want, got []float64, tol float64) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		require.InDelta(t, want[i], got[i], tol, "index %d: want %v got %v", i, want, got)
	}
}

func requireShapeError(t *testing.T, err error) *ShapeError {
	t.Helper()
	var se *ShapeError
	require.ErrorAs(t, err, &se)
	return se
}
