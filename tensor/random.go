package tensor

import "gonum.org/v1/gonum/stat/distuv"

// Rand fills a tensor of the given shape with values drawn uniformly from
// [lo, hi).
func Rand(lo, hi float64, shape ...int) *Tensor {
	dist := distuv.Uniform{Min: lo, Max: hi}
	data := make([]float64, numel(shape))
	for i := range data {
		data[i] = dist.Rand()
	}
	return MustNew(data, shape...)
}
