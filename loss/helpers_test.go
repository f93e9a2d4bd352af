package loss

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fumitoshi0524/segloss/tensor"
)

var (
	shape2D = []int{2, 4, 4, 2}
	shape3D = []int{2, 2, 3, 3, 2}
)

// binaryMask draws a random {0,1} label tensor.
func binaryMask(shape ...int) *tensor.Tensor {
	data := tensor.Rand(0, 1, shape...).Data()
	for i, v := range data {
		if v > 0.5 {
			data[i] = 1
		} else {
			data[i] = 0
		}
	}
	return tensor.MustNew(data, shape...)
}

// probabilities draws predictions strictly inside (0, 1).
func probabilities(shape ...int) *tensor.Tensor {
	return tensor.Rand(0.05, 0.95, shape...)
}

type namedLoss struct {
	name  string
	shape []int
	fn    Func
}

func allLosses() []namedLoss {
	return []namedLoss{
		{"Dice2D", shape2D, Dice2D},
		{"Dice3D", shape3D, Dice3D},
		{"Tversky2D", shape2D, func(gt, pred *tensor.Tensor) (*tensor.Tensor, error) {
			return Tversky2D(gt, pred, DefaultAlpha)
		}},
		{"Tversky3D", shape3D, func(gt, pred *tensor.Tensor) (*tensor.Tensor, error) {
			return Tversky3D(gt, pred, DefaultAlpha)
		}},
		{"FocalTversky2D", shape2D, func(gt, pred *tensor.Tensor) (*tensor.Tensor, error) {
			return FocalTversky2D(gt, pred, DefaultAlpha, DefaultGamma)
		}},
		{"FocalTversky3D", shape3D, func(gt, pred *tensor.Tensor) (*tensor.Tensor, error) {
			return FocalTversky3D(gt, pred, DefaultAlpha, DefaultGamma)
		}},
		{"GeneralisedDice2D", shape2D, GeneralisedDice2D},
		{"GeneralisedDice3D", shape3D, GeneralisedDice3D},
		{"GeneralisedDice2DEinsum", shape2D, GeneralisedDice2DEinsum},
		{"Surface2D", shape2D, Surface2D},
		{"Surface3D", shape3D, Surface3D},
	}
}

func evaluate(t *testing.T, fn Func, gt, pred *tensor.Tensor) float64 {
	t.Helper()
	l, err := fn(gt, pred)
	require.NoError(t, err)
	require.Equal(t, []int{1}, l.Shape())
	return l.Value()
}
