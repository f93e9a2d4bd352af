package loss

import (
	"github.com/pkg/errors"

	"github.com/fumitoshi0524/segloss/tensor"
)

// GeneralisedDice2D weights each class by w_c = 1/((Σ_spatial t_c)² + s) and
// returns mean_b[1 - 2·Σ_c(w_c·Σ t_c·p_c) / (Σ_c(w_c·Σ(t_c+p_c)) + s)].
func GeneralisedDice2D(gt, pred *tensor.Tensor) (*tensor.Tensor, error) {
	return generalisedDice("GeneralisedDice2D", gt, pred, rank2D, DefaultSmooth)
}

// GeneralisedDice3D is GeneralisedDice2D for volumes.
func GeneralisedDice3D(gt, pred *tensor.Tensor) (*tensor.Tensor, error) {
	return generalisedDice("GeneralisedDice3D", gt, pred, rank3D, DefaultSmooth)
}

// GeneralisedDice2DEinsum is the contraction-based generalised Dice. The
// weight is w_c = 1/(Σ_spatial t_c + s)² and the smoothing s = EinsumSmooth
// is also added to the numerator:
//
//	mean_b[1 - 2·(Σ_c w_c·Σ t_c·p_c + s) / (Σ_c w_c·(Σ p_c + Σ t_c) + s)]
//
// The smoothing terms sit in different places than in GeneralisedDice2D, so
// the two do not return the same value and are kept apart.
func GeneralisedDice2DEinsum(gt, pred *tensor.Tensor) (*tensor.Tensor, error) {
	return generalisedDiceEinsum("GeneralisedDice2DEinsum", gt, pred, EinsumSmooth)
}

func generalisedDice(op string, gt, pred *tensor.Tensor, rank int, smooth float64) (*tensor.Tensor, error) {
	d, err := pairDims(op, gt, pred, rank)
	if err != nil {
		return nil, err
	}
	w, err := classWeights(gt, d, smooth)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	return weightedGeneralisedDice(op, gt, pred, d, w, smooth)
}

// classWeights is 1/((Σ_spatial t)² + smooth), shape [batch, channels].
func classWeights(gt *tensor.Tensor, d tensor.Dims, smooth float64) (*tensor.Tensor, error) {
	volume, err := tensor.SumAxes(gt, d.SpatialAxes()...)
	if err != nil {
		return nil, err
	}
	den := tensor.AddScalar(tensor.Pow(volume, 2), smooth)
	return tensor.Div(tensor.Ones(den.Shape()...), den)
}

func weightedGeneralisedDice(op string, gt, pred *tensor.Tensor, d tensor.Dims, w *tensor.Tensor, smooth float64) (*tensor.Tensor, error) {
	axes := d.SpatialAxes()
	prod, err := tensor.Mul(gt, pred)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	numerator, err := classWeightedSum(prod, w, axes)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	total, err := tensor.Add(pred, gt)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	denominator, err := classWeightedSum(total, w, axes)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	denominator = tensor.AddScalar(denominator, smooth)
	checkDenominator(op, denominator)

	coef, err := tensor.Div(tensor.MulScalar(numerator, 2), denominator)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	return tensor.Mean(tensor.OneMinus(coef)), nil
}

// classWeightedSum is Σ_c(w_c·Σ_spatial v_c), shape [batch].
func classWeightedSum(v, w *tensor.Tensor, axes []int) (*tensor.Tensor, error) {
	perClass, err := tensor.SumAxes(v, axes...)
	if err != nil {
		return nil, err
	}
	weighted, err := tensor.Mul(w, perClass)
	if err != nil {
		return nil, err
	}
	return tensor.SumAxis(weighted, 1)
}

func generalisedDiceEinsum(op string, gt, pred *tensor.Tensor, smooth float64) (*tensor.Tensor, error) {
	if _, err := pairDims(op, gt, pred, rank2D); err != nil {
		return nil, err
	}
	volume, err := tensor.Einsum("bhwc->bc", gt)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	sq := tensor.Pow(tensor.AddScalar(volume, smooth), 2)
	w, err := tensor.Div(tensor.Ones(sq.Shape()...), sq)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}

	overlap, err := tensor.Einsum("bhwc,bhwc->bc", pred, gt)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	intersection, err := tensor.Mul(w, overlap)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	predVolume, err := tensor.Einsum("bhwc->bc", pred)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	both, err := tensor.Add(predVolume, volume)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	union, err := tensor.Mul(w, both)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}

	num, err := tensor.Einsum("bc->b", intersection)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	den, err := tensor.Einsum("bc->b", union)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	den = tensor.AddScalar(den, smooth)
	checkDenominator(op, den)

	ratio, err := tensor.Div(tensor.AddScalar(num, smooth), den)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	return tensor.Mean(tensor.OneMinus(tensor.MulScalar(ratio, 2))), nil
}
