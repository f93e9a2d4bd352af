package tensor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSigmoid(t *testing.T) {
	x := MustNew([]float64{0, 2}, 2)
	x.SetRequiresGrad(true)
	y := Sigmoid(x)
	s := 1 / (1 + math.Exp(-2))
	requireAlmostEqual(t, []float64{0.5, s}, y.Data(), 1e-12)
	require.NoError(t, Sum(y).Backward())
	requireAlmostEqual(t, []float64{0.25, s * (1 - s)}, x.Grad().Data(), 1e-12)
}

func TestSoftmaxOverChannels(t *testing.T) {
	// [batch=1, h=1, w=2, c=3]
	x := MustNew([]float64{1, 2, 3, 0, 0, 0}, 1, 1, 2, 3)
	x.SetRequiresGrad(true)
	y := Softmax(x)
	data := y.Data()
	assert.InDelta(t, 1, data[0]+data[1]+data[2], 1e-12)
	requireAlmostEqual(t, []float64{1.0 / 3, 1.0 / 3, 1.0 / 3}, data[3:], 1e-12)
	assert.Greater(t, data[2], data[1])

	// Probabilities sum to one, so the gradient of their total vanishes.
	require.NoError(t, Sum(y).Backward())
	requireAlmostEqual(t, make([]float64, 6), x.Grad().Data(), 1e-12)

	x.ZeroGrad()
	pick := MustNew([]float64{1, 0, 0, 0, 0, 0}, 1, 1, 2, 3)
	picked, err := Mul(Softmax(x), pick)
	require.NoError(t, err)
	require.NoError(t, Sum(picked).Backward())
	p := data[:3]
	want := []float64{p[0] * (1 - p[0]), -p[0] * p[1], -p[0] * p[2], 0, 0, 0}
	requireAlmostEqual(t, want, x.Grad().Data(), 1e-12)
}
