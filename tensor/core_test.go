package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidatesShape(t *testing.T) {
	_, err := New([]float64{1})
	requireShapeError(t, err)

	_, err = New([]float64{}, 0, 2)
	se := requireShapeError(t, err)
	assert.Equal(t, []int{0, 2}, se.Got)

	_, err = New([]float64{1, 2, 3}, 2, 2)
	require.Error(t, err)

	x, err := New([]float64{1, 2, 3, 4}, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2}, x.Shape())
	assert.Equal(t, 2, x.Rank())
	assert.Equal(t, 4, x.Numel())
}

func TestNewCopiesInput(t *testing.T) {
	data := []float64{1, 2}
	x := MustNew(data, 2)
	data[0] = 9
	assert.Equal(t, []float64{1, 2}, x.Data())

	out := x.Data()
	out[1] = 7
	assert.Equal(t, []float64{1, 2}, x.Data())
}

func TestConstructors(t *testing.T) {
	assert.Equal(t, []float64{0, 0, 0}, Zeros(3).Data())
	assert.Equal(t, []float64{1, 1}, Ones(1, 2).Data())
	assert.Equal(t, []float64{2.5, 2.5}, Full(2.5, 2, 1).Data())
	s := Scalar(4)
	assert.Equal(t, []int{1}, s.Shape())
	assert.Equal(t, 4.0, s.Value())
}

func TestSameShape(t *testing.T) {
	require.NoError(t, SameShape("op", Zeros(2, 3), Ones(2, 3)))

	se := requireShapeError(t, SameShape("op", Zeros(2, 3), Zeros(3, 2)))
	assert.Equal(t, "op", se.Op)
	assert.Equal(t, []int{2, 3}, se.Want)
	assert.Equal(t, []int{3, 2}, se.Got)
	assert.Contains(t, se.Error(), "shape mismatch")

	requireShapeError(t, SameShape("op", nil, Zeros(1)))
}

func TestBackwardAccumulatesUntilZeroGrad(t *testing.T) {
	x := MustNew([]float64{1, 2}, 2)
	require.Error(t, Sum(x).Backward(), "tensor without grad must not backprop")

	x.SetRequiresGrad(true)
	require.NoError(t, Sum(x).Backward())
	require.NoError(t, Sum(x).Backward())
	requireAlmostEqual(t, []float64{2, 2}, x.Grad().Data(), 1e-12)

	x.ZeroGrad()
	assert.Nil(t, x.Grad())

	d := x.Detach()
	assert.False(t, d.RequiresGrad())
	assert.Equal(t, x.Data(), d.Data())
}
