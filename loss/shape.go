package loss

import (
	"github.com/pkg/errors"

	"github.com/fumitoshi0524/segloss/tensor"
)

const (
	rank2D = 4
	rank3D = 5
)

// pairDims checks that gt and pred share one channels-last layout of the
// given rank and returns it.
func pairDims(op string, gt, pred *tensor.Tensor, rank int) (tensor.Dims, error) {
	if err := tensor.SameShape(op, gt, pred); err != nil {
		return tensor.Dims{}, err
	}
	d, err := tensor.DimsOf(gt, rank)
	if err != nil {
		return tensor.Dims{}, errors.Wrap(err, op)
	}
	return d, nil
}

// flattenPair views both tensors as [batch, perSample].
func flattenPair(d tensor.Dims, gt, pred *tensor.Tensor) (*tensor.Tensor, *tensor.Tensor, error) {
	truth, err := gt.Reshape(d.Batch, d.PerSample())
	if err != nil {
		return nil, nil, err
	}
	p, err := pred.Reshape(d.Batch, d.PerSample())
	if err != nil {
		return nil, nil, err
	}
	return truth, p, nil
}

// rowSum sums a [batch, n] tensor into [batch].
func rowSum(t *tensor.Tensor) (*tensor.Tensor, error) {
	return tensor.SumAxis(t, 1)
}
