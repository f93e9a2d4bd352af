// Package loss implements overlap losses for semantic segmentation on
// channels-last tensors: Dice, Tversky, focal Tversky, generalised Dice and
// the surface (boundary) loss. Every loss is built from differentiable tensor
// operations, so calling Backward on the result yields gradients for the
// prediction.
//
// 2D variants take [batch, height, width, channels]; 3D variants take
// [batch, depth, height, width, channels]. Ground truth and prediction must
// have identical shapes, otherwise a *tensor.ShapeError is returned.
package loss

import (
	"github.com/pkg/errors"

	"github.com/fumitoshi0524/segloss/tensor"
)

// Dice2D is 1 - mean_b[(2·Σ(p·t) + s) / (Σp + Σt + s)] over each flattened
// sample, with s = DefaultSmooth.
func Dice2D(gt, pred *tensor.Tensor) (*tensor.Tensor, error) {
	return dice("Dice2D", gt, pred, rank2D, DefaultSmooth)
}

// Dice3D is Dice2D for volumes.
func Dice3D(gt, pred *tensor.Tensor) (*tensor.Tensor, error) {
	return dice("Dice3D", gt, pred, rank3D, DefaultSmooth)
}

func dice(op string, gt, pred *tensor.Tensor, rank int, smooth float64) (*tensor.Tensor, error) {
	d, err := pairDims(op, gt, pred, rank)
	if err != nil {
		return nil, err
	}
	truth, p, err := flattenPair(d, gt, pred)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	prod, err := tensor.Mul(p, truth)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	inter, err := rowSum(prod)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	numerator := tensor.AddScalar(tensor.MulScalar(inter, 2), smooth)

	predSum, err := rowSum(p)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	truthSum, err := rowSum(truth)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	denominator, err := tensor.Add(predSum, truthSum)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	denominator = tensor.AddScalar(denominator, smooth)
	checkDenominator(op, denominator)

	ratio, err := tensor.Div(numerator, denominator)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	return tensor.OneMinus(tensor.Mean(ratio)), nil
}
