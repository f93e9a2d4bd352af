package loss

import (
	"github.com/pkg/errors"

	"github.com/fumitoshi0524/segloss/tensor"
)

// Surface2D is the boundary loss mean(Σ(t·p)) summed over every axis,
// including batch. gt is expected to hold a signed distance map of the
// ground-truth boundary; computing that map is left to the caller.
func Surface2D(gt, pred *tensor.Tensor) (*tensor.Tensor, error) {
	return surface("Surface2D", gt, pred, rank2D)
}

// Surface3D is Surface2D for volumes.
func Surface3D(gt, pred *tensor.Tensor) (*tensor.Tensor, error) {
	return surface("Surface3D", gt, pred, rank3D)
}

func surface(op string, gt, pred *tensor.Tensor, rank int) (*tensor.Tensor, error) {
	if _, err := pairDims(op, gt, pred, rank); err != nil {
		return nil, err
	}
	prod, err := tensor.Mul(gt, pred)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	return tensor.Mean(tensor.Sum(prod)), nil
}
