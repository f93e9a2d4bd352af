package tensor

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/fumitoshi0524/segloss/internal/parallel"
)

func Add(a, b *Tensor) (*Tensor, error) {
	out, err := zip("Add", a, b, func(x, y float64) float64 { return x + y })
	if err != nil {
		return nil, err
	}
	attachBinary(out, a, b, func(grad *Tensor, grads map[*Tensor]*Tensor) {
		if a.requiresGrad {
			accumulate(grads, a, grad)
		}
		if b.requiresGrad {
			accumulate(grads, b, grad)
		}
	})
	return out, nil
}

func Sub(a, b *Tensor) (*Tensor, error) {
	out, err := zip("Sub", a, b, func(x, y float64) float64 { return x - y })
	if err != nil {
		return nil, err
	}
	attachBinary(out, a, b, func(grad *Tensor, grads map[*Tensor]*Tensor) {
		if a.requiresGrad {
			accumulate(grads, a, grad)
		}
		if b.requiresGrad {
			accumulate(grads, b, mapValues(grad, func(g float64) float64 { return -g }))
		}
	})
	return out, nil
}

func Mul(a, b *Tensor) (*Tensor, error) {
	out, err := zip("Mul", a, b, func(x, y float64) float64 { return x * y })
	if err != nil {
		return nil, err
	}
	attachBinary(out, a, b, func(grad *Tensor, grads map[*Tensor]*Tensor) {
		if a.requiresGrad {
			accumulate(grads, a, hadamard(grad, b))
		}
		if b.requiresGrad {
			accumulate(grads, b, hadamard(grad, a))
		}
	})
	return out, nil
}

func Div(a, b *Tensor) (*Tensor, error) {
	out, err := zip("Div", a, b, func(x, y float64) float64 { return x / y })
	if err != nil {
		return nil, err
	}
	attachBinary(out, a, b, func(grad *Tensor, grads map[*Tensor]*Tensor) {
		if a.requiresGrad {
			g := Zeros(a.shape...)
			parallel.For(len(g.data), func(start, end int) {
				for i := start; i < end; i++ {
					g.data[i] = grad.data[i] / b.data[i]
				}
			})
			accumulate(grads, a, g)
		}
		if b.requiresGrad {
			g := Zeros(b.shape...)
			parallel.For(len(g.data), func(start, end int) {
				for i := start; i < end; i++ {
					g.data[i] = -grad.data[i] * a.data[i] / (b.data[i] * b.data[i])
				}
			})
			accumulate(grads, b, g)
		}
	})
	return out, nil
}

// Pow raises every element to value. Where the base is zero and value < 1
// the derivative is unbounded; the gradient there is reported as zero.
func Pow(a *Tensor, value float64) *Tensor {
	out := mapValues(a, func(x float64) float64 { return math.Pow(x, value) })
	attachUnary(out, a, func(grad *Tensor) *Tensor {
		g := Zeros(a.shape...)
		parallel.For(len(g.data), func(start, end int) {
			for i := start; i < end; i++ {
				x := a.data[i]
				switch {
				case value == 1:
					g.data[i] = grad.data[i]
				case x == 0 && value < 1:
					g.data[i] = 0
				default:
					g.data[i] = grad.data[i] * value * math.Pow(x, value-1)
				}
			}
		})
		return g
	})
	return out
}

func Exp(a *Tensor) *Tensor {
	out := mapValues(a, math.Exp)
	attachUnary(out, a, func(grad *Tensor) *Tensor {
		return hadamard(grad, out)
	})
	return out
}

func Log(a *Tensor) *Tensor {
	out := mapValues(a, math.Log)
	attachUnary(out, a, func(grad *Tensor) *Tensor {
		g := Zeros(a.shape...)
		for i := range g.data {
			g.data[i] = grad.data[i] / a.data[i]
		}
		return g
	})
	return out
}

// Sum reduces every element to a [1] tensor.
func Sum(a *Tensor) *Tensor {
	out := Scalar(floats.Sum(a.data))
	attachUnary(out, a, func(grad *Tensor) *Tensor {
		return Full(grad.data[0], a.shape...)
	})
	return out
}

// Mean is Sum scaled by 1/Numel.
func Mean(a *Tensor) *Tensor {
	scale := 1.0 / float64(a.Numel())
	out := Scalar(floats.Sum(a.data) * scale)
	attachUnary(out, a, func(grad *Tensor) *Tensor {
		return Full(grad.data[0]*scale, a.shape...)
	})
	return out
}

func zip(op string, a, b *Tensor, f func(x, y float64) float64) (*Tensor, error) {
	if err := SameShape(op, a, b); err != nil {
		return nil, err
	}
	out := Zeros(a.shape...)
	parallel.For(len(out.data), func(start, end int) {
		for i := start; i < end; i++ {
			out.data[i] = f(a.data[i], b.data[i])
		}
	})
	return out, nil
}

// mapValues applies f element-wise without recording a graph node.
func mapValues(a *Tensor, f func(float64) float64) *Tensor {
	out := Zeros(a.shape...)
	parallel.For(len(out.data), func(start, end int) {
		for i := start; i < end; i++ {
			out.data[i] = f(a.data[i])
		}
	})
	return out
}

func hadamard(a, b *Tensor) *Tensor {
	out := Zeros(a.shape...)
	parallel.For(len(out.data), func(start, end int) {
		for i := start; i < end; i++ {
			out.data[i] = a.data[i] * b.data[i]
		}
	})
	return out
}
