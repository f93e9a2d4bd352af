package loss

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"github.com/fumitoshi0524/segloss/tensor"
)

// DiceScore is the hard Dice coefficient 2|G∩P|/(|G|+|P|) of the masks
// gt > threshold and pred > threshold, averaged over the batch (first axis).
// A sample where both masks are empty scores 1. No gradient is recorded.
func DiceScore(gt, pred *tensor.Tensor, threshold float64) (float64, error) {
	scores, err := sampleDice("DiceScore", gt, pred, threshold)
	if err != nil {
		return 0, err
	}
	return floats.Sum(scores) / float64(len(scores)), nil
}

// JaccardScore is the intersection over union of the thresholded masks,
// derived per sample from the Dice coefficient as d/(2-d).
func JaccardScore(gt, pred *tensor.Tensor, threshold float64) (float64, error) {
	scores, err := sampleDice("JaccardScore", gt, pred, threshold)
	if err != nil {
		return 0, err
	}
	for i, d := range scores {
		scores[i] = d / (2 - d)
	}
	return floats.Sum(scores) / float64(len(scores)), nil
}

func sampleDice(op string, gt, pred *tensor.Tensor, threshold float64) ([]float64, error) {
	if err := tensor.SameShape(op, gt, pred); err != nil {
		return nil, err
	}
	if gt.Rank() < 2 {
		return nil, errors.Errorf("%s: expected a batch axis, got shape %v", op, gt.Shape())
	}
	batch := gt.Shape()[0]
	size := gt.Numel() / batch
	truth := binarize(gt.Data(), threshold)
	p := binarize(pred.Data(), threshold)
	scores := make([]float64, batch)
	for b := 0; b < batch; b++ {
		t := truth[b*size : (b+1)*size]
		q := p[b*size : (b+1)*size]
		denom := floats.Sum(t) + floats.Sum(q)
		if denom == 0 {
			scores[b] = 1
			continue
		}
		scores[b] = 2 * floats.Dot(t, q) / denom
	}
	return scores, nil
}

func binarize(values []float64, threshold float64) []float64 {
	for i, v := range values {
		if v > threshold {
			values[i] = 1
		} else {
			values[i] = 0
		}
	}
	return values
}
