package tensor

import (
	"math"

	"github.com/fumitoshi0524/segloss/internal/parallel"
)

func Sigmoid(a *Tensor) *Tensor {
	out := mapValues(a, func(x float64) float64 { return 1 / (1 + math.Exp(-x)) })
	attachUnary(out, a, func(grad *Tensor) *Tensor {
		g := Zeros(a.shape...)
		parallel.For(len(g.data), func(start, end int) {
			for i := start; i < end; i++ {
				s := out.data[i]
				g.data[i] = grad.data[i] * s * (1 - s)
			}
		})
		return g
	})
	return out
}

// Softmax normalizes over the last axis, which holds the class channels in a
// channels-last segmentation tensor.
func Softmax(a *Tensor) *Tensor {
	cols := a.shape[len(a.shape)-1]
	rows := a.Numel() / cols
	out := Zeros(a.shape...)
	parallel.For(rows, func(start, end int) {
		for i := start; i < end; i++ {
			offset := i * cols
			maxVal := a.data[offset]
			for j := 1; j < cols; j++ {
				if v := a.data[offset+j]; v > maxVal {
					maxVal = v
				}
			}
			sum := 0.0
			for j := 0; j < cols; j++ {
				e := math.Exp(a.data[offset+j] - maxVal)
				out.data[offset+j] = e
				sum += e
			}
			for j := 0; j < cols; j++ {
				out.data[offset+j] /= sum
			}
		}
	})
	attachUnary(out, a, func(grad *Tensor) *Tensor {
		g := Zeros(a.shape...)
		parallel.For(rows, func(start, end int) {
			for i := start; i < end; i++ {
				offset := i * cols
				dot := 0.0
				for j := 0; j < cols; j++ {
					dot += grad.data[offset+j] * out.data[offset+j]
				}
				for j := 0; j < cols; j++ {
					g.data[offset+j] = out.data[offset+j] * (grad.data[offset+j] - dot)
				}
			}
		})
		return g
	})
	return out
}
