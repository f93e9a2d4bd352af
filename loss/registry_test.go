package loss

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fumitoshi0524/segloss/tensor"
)

func TestParseTypeRoundTrip(t *testing.T) {
	for _, kind := range Types() {
		parsed, err := ParseType(kind.String())
		require.NoError(t, err)
		assert.Equal(t, kind, parsed)
	}
	kind, err := ParseType(" Focal-Tversky ")
	require.NoError(t, err)
	assert.Equal(t, TypeFocalTversky, kind)

	_, err = ParseType("cross_entropy")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generalised_dice_einsum")

	assert.Equal(t, "Type(42)", Type(42).String())
	assert.Len(t, TypeStrings(), len(Types()))
}

func TestNewMatchesDirectCalls(t *testing.T) {
	opts := DefaultOptions()
	gt2 := binaryMask(shape2D...)
	pred2 := probabilities(shape2D...)
	gt3 := binaryMask(shape3D...)
	pred3 := probabilities(shape3D...)

	direct := map[Type][2]Func{
		TypeDice:    {Dice2D, Dice3D},
		TypeTversky: {tverskyDefault2D, func(gt, pred *tensor.Tensor) (*tensor.Tensor, error) { return Tversky3D(gt, pred, DefaultAlpha) }},
		TypeFocalTversky: {
			func(gt, pred *tensor.Tensor) (*tensor.Tensor, error) {
				return FocalTversky2D(gt, pred, DefaultAlpha, DefaultGamma)
			},
			func(gt, pred *tensor.Tensor) (*tensor.Tensor, error) {
				return FocalTversky3D(gt, pred, DefaultAlpha, DefaultGamma)
			},
		},
		TypeGeneralisedDice:       {GeneralisedDice2D, GeneralisedDice3D},
		TypeGeneralisedDiceEinsum: {GeneralisedDice2DEinsum, nil},
		TypeSurface:               {Surface2D, Surface3D},
	}
	for kind, fns := range direct {
		fn, err := New(kind, 4, opts)
		require.NoError(t, err, kind.String())
		assert.Equal(t, evaluate(t, fns[0], gt2, pred2), evaluate(t, fn, gt2, pred2), kind.String())

		if fns[1] == nil {
			assert.False(t, Supports(kind, 5))
			_, err := New(kind, 5, opts)
			require.Error(t, err)
			continue
		}
		assert.True(t, Supports(kind, 5))
		fn, err = New(kind, 5, opts)
		require.NoError(t, err, kind.String())
		assert.Equal(t, evaluate(t, fns[1], gt3, pred3), evaluate(t, fn, gt3, pred3), kind.String())
	}
}

func TestNewBindsOptions(t *testing.T) {
	gt := binaryMask(shape2D...)
	pred := probabilities(shape2D...)
	opts := DefaultOptions()
	opts.Alpha = 0.3
	opts.Gamma = 2
	fn, err := New(TypeFocalTversky, 4, opts)
	require.NoError(t, err)
	want, err := FocalTversky2D(gt, pred, 0.3, 2)
	require.NoError(t, err)
	assert.Equal(t, want.Value(), evaluate(t, fn, gt, pred))
}

func TestNewRejectsBadArguments(t *testing.T) {
	_, err := New(TypeDice, 3, DefaultOptions())
	require.Error(t, err)
	_, err = New(Type(99), 4, DefaultOptions())
	require.Error(t, err)
	bad := DefaultOptions()
	bad.Gamma = 0
	_, err = New(TypeDice, 4, bad)
	require.Error(t, err)
	assert.False(t, Supports(Type(-1), 4))
}

func TestNewFuncReportsShapeErrors(t *testing.T) {
	fn, err := New(TypeSurface, 5, DefaultOptions())
	require.NoError(t, err)
	_, err = fn(tensor.Zeros(1, 2, 2, 1), tensor.Zeros(1, 2, 2, 1))
	var se *tensor.ShapeError
	require.ErrorAs(t, err, &se)
	assert.Contains(t, err.Error(), "surface_3d")
}
