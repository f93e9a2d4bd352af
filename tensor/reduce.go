package tensor

import (
	"sort"

	"github.com/fumitoshi0524/segloss/internal/parallel"
)

// SumAxis sums elements along the given axis and returns a tensor with that
// axis removed. A rank 1 input reduces to shape [1].
func SumAxis(a *Tensor, axis int) (*Tensor, error) {
	rank := len(a.shape)
	axis, err := normalizeAxis("SumAxis", a.shape, axis)
	if err != nil {
		return nil, err
	}
	outer := 1
	for i := 0; i < axis; i++ {
		outer *= a.shape[i]
	}
	inner := 1
	for i := axis + 1; i < rank; i++ {
		inner *= a.shape[i]
	}
	axisSize := a.shape[axis]
	outShape := make([]int, 0, rank-1)
	for i, dim := range a.shape {
		if i != axis {
			outShape = append(outShape, dim)
		}
	}
	if len(outShape) == 0 {
		outShape = []int{1}
	}
	out := Zeros(outShape...)
	parallel.For(outer*inner, func(start, end int) {
		for idx := start; idx < end; idx++ {
			base := (idx/inner)*axisSize*inner + idx%inner
			s := 0.0
			for k := 0; k < axisSize; k++ {
				s += a.data[base+k*inner]
			}
			out.data[idx] = s
		}
	})
	attachUnary(out, a, func(grad *Tensor) *Tensor {
		g := Zeros(a.shape...)
		parallel.For(outer*inner, func(start, end int) {
			for idx := start; idx < end; idx++ {
				base := (idx/inner)*axisSize*inner + idx%inner
				for k := 0; k < axisSize; k++ {
					g.data[base+k*inner] = grad.data[idx]
				}
			}
		})
		return g
	})
	return out, nil
}

// SumAxes sums over several axes at once. Axes refer to the input's layout
// and may be negative.
func SumAxes(a *Tensor, axes ...int) (*Tensor, error) {
	if len(axes) == 0 {
		return a, nil
	}
	normalized := make([]int, 0, len(axes))
	seen := map[int]bool{}
	for _, axis := range axes {
		ax, err := normalizeAxis("SumAxes", a.shape, axis)
		if err != nil {
			return nil, err
		}
		if seen[ax] {
			return nil, shapeErr("SumAxes", "duplicate axis", nil, axes)
		}
		seen[ax] = true
		normalized = append(normalized, ax)
	}
	// Reduce from the highest axis down so earlier indices stay valid.
	sort.Sort(sort.Reverse(sort.IntSlice(normalized)))
	out := a
	for _, ax := range normalized {
		var err error
		out, err = SumAxis(out, ax)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// MeanAxis computes the mean along the given axis and returns a tensor with
// that axis removed.
func MeanAxis(a *Tensor, axis int) (*Tensor, error) {
	s, err := SumAxis(a, axis)
	if err != nil {
		return nil, err
	}
	ax, _ := normalizeAxis("MeanAxis", a.shape, axis)
	return MulScalar(s, 1.0/float64(a.shape[ax])), nil
}

func normalizeAxis(op string, shape []int, axis int) (int, error) {
	rank := len(shape)
	if axis < 0 {
		axis += rank
	}
	if axis < 0 || axis >= rank {
		return 0, shapeErr(op, "axis out of range", nil, shape)
	}
	return axis, nil
}
