package tensor

func AddScalar(a *Tensor, value float64) *Tensor {
	out := mapValues(a, func(x float64) float64 { return x + value })
	attachUnary(out, a, func(grad *Tensor) *Tensor {
		return grad
	})
	return out
}

func MulScalar(a *Tensor, value float64) *Tensor {
	out := mapValues(a, func(x float64) float64 { return x * value })
	attachUnary(out, a, func(grad *Tensor) *Tensor {
		return mapValues(grad, func(g float64) float64 { return g * value })
	})
	return out
}

// OneMinus computes 1 - a.
func OneMinus(a *Tensor) *Tensor {
	out := mapValues(a, func(x float64) float64 { return 1 - x })
	attachUnary(out, a, func(grad *Tensor) *Tensor {
		return mapValues(grad, func(g float64) float64 { return -g })
	})
	return out
}
