package loss

import (
	"github.com/pkg/errors"

	"github.com/fumitoshi0524/segloss/tensor"
)

// Tversky2D is 1 - mean_b[(TP + s) / (TP + alpha·FN + (1-alpha)·FP + s)]
// where TP = Σ(t·p), FN = Σ(t·(1-p)) and FP = Σ((1-t)·p) per sample.
// alpha = 0.5 gives the Dice loss; larger alpha penalises missed foreground.
func Tversky2D(gt, pred *tensor.Tensor, alpha float64) (*tensor.Tensor, error) {
	return tversky("Tversky2D", gt, pred, rank2D, alpha, DefaultSmooth)
}

// Tversky3D is Tversky2D for volumes.
func Tversky3D(gt, pred *tensor.Tensor, alpha float64) (*tensor.Tensor, error) {
	return tversky("Tversky3D", gt, pred, rank3D, alpha, DefaultSmooth)
}

// FocalTversky2D raises the Tversky loss to gamma. gamma < 1 keeps the
// gradient large as the loss approaches zero.
func FocalTversky2D(gt, pred *tensor.Tensor, alpha, gamma float64) (*tensor.Tensor, error) {
	return focalTversky("FocalTversky2D", gt, pred, rank2D, alpha, gamma, DefaultSmooth)
}

// FocalTversky3D is FocalTversky2D for volumes.
func FocalTversky3D(gt, pred *tensor.Tensor, alpha, gamma float64) (*tensor.Tensor, error) {
	return focalTversky("FocalTversky3D", gt, pred, rank3D, alpha, gamma, DefaultSmooth)
}

func focalTversky(op string, gt, pred *tensor.Tensor, rank int, alpha, gamma, smooth float64) (*tensor.Tensor, error) {
	l, err := tversky(op, gt, pred, rank, alpha, smooth)
	if err != nil {
		return nil, err
	}
	return tensor.Pow(l, gamma), nil
}

func tversky(op string, gt, pred *tensor.Tensor, rank int, alpha, smooth float64) (*tensor.Tensor, error) {
	d, err := pairDims(op, gt, pred, rank)
	if err != nil {
		return nil, err
	}
	truth, p, err := flattenPair(d, gt, pred)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	truePos, err := weightedSum(truth, p)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	falseNeg, err := weightedSum(truth, tensor.OneMinus(p))
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	falsePos, err := weightedSum(tensor.OneMinus(truth), p)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}

	denominator, err := tensor.Add(truePos, tensor.MulScalar(falseNeg, alpha))
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	denominator, err = tensor.Add(denominator, tensor.MulScalar(falsePos, 1-alpha))
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	denominator = tensor.AddScalar(denominator, smooth)
	checkDenominator(op, denominator)

	index, err := tensor.Div(tensor.AddScalar(truePos, smooth), denominator)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	return tensor.OneMinus(tensor.Mean(index)), nil
}

// weightedSum is Σ(a·b) per row of two [batch, n] tensors.
func weightedSum(a, b *tensor.Tensor) (*tensor.Tensor, error) {
	prod, err := tensor.Mul(a, b)
	if err != nil {
		return nil, err
	}
	return rowSum(prod)
}
