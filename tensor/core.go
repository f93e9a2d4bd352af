// Package tensor is a dense float64 tensor with reverse-mode automatic
// differentiation. Every operation records how to push gradients back to the
// tensors it was computed from, so a scalar result can call Backward.
package tensor

import (
	"github.com/pkg/errors"
)

type Tensor struct {
	data         []float64
	shape        []int
	strides      []int
	grad         *Tensor
	requiresGrad bool
	node         *node
	parents      []*Tensor
}

type node struct {
	backward func(grad *Tensor, grads map[*Tensor]*Tensor)
}

func New(data []float64, shape ...int) (*Tensor, error) {
	if len(shape) == 0 {
		return nil, &ShapeError{Op: "New", Reason: "shape is required"}
	}
	total := 1
	for _, dim := range shape {
		if dim <= 0 {
			return nil, shapeErr("New", "dimensions must be positive", nil, shape)
		}
		total *= dim
	}
	if total != len(data) {
		return nil, errors.Errorf("New: %d values do not fill shape %v", len(data), shape)
	}
	t := &Tensor{
		data:    append([]float64(nil), data...),
		shape:   append([]int(nil), shape...),
		strides: makeStrides(shape),
	}
	return t, nil
}

func MustNew(data []float64, shape ...int) *Tensor {
	t, err := New(data, shape...)
	if err != nil {
		panic(err)
	}
	return t
}

func Zeros(shape ...int) *Tensor {
	return MustNew(make([]float64, numel(shape)), shape...)
}

func Ones(shape ...int) *Tensor {
	return Full(1, shape...)
}

func Full(value float64, shape ...int) *Tensor {
	data := make([]float64, numel(shape))
	for i := range data {
		data[i] = value
	}
	return MustNew(data, shape...)
}

// Scalar returns a shape [1] tensor, the engine's representation of a scalar.
func Scalar(value float64) *Tensor {
	return MustNew([]float64{value}, 1)
}

func (t *Tensor) Clone() *Tensor {
	if t == nil {
		return nil
	}
	return &Tensor{
		data:    append([]float64(nil), t.data...),
		shape:   append([]int(nil), t.shape...),
		strides: append([]int(nil), t.strides...),
	}
}

func (t *Tensor) Shape() []int {
	return append([]int(nil), t.shape...)
}

func (t *Tensor) Rank() int {
	return len(t.shape)
}

func (t *Tensor) Numel() int {
	return len(t.data)
}

func (t *Tensor) Data() []float64 {
	return append([]float64(nil), t.data...)
}

// Value returns the first element. It is meant for [1]-shaped results such
// as a reduced loss.
func (t *Tensor) Value() float64 {
	return t.data[0]
}

// SetData overwrites the tensor's underlying values. The provided slice must match Numel().
func (t *Tensor) SetData(values []float64) error {
	if len(values) != len(t.data) {
		return errors.Errorf("SetData: got %d values for %d elements", len(values), len(t.data))
	}
	copy(t.data, values)
	return nil
}

func (t *Tensor) SetRequiresGrad(v bool) {
	t.requiresGrad = v
}

func (t *Tensor) RequiresGrad() bool {
	return t.requiresGrad
}

func (t *Tensor) Grad() *Tensor {
	if t.grad == nil {
		return nil
	}
	return t.grad.Clone()
}

func (t *Tensor) ZeroGrad() {
	t.grad = nil
}

func (t *Tensor) Detach() *Tensor {
	clone := t.Clone()
	clone.requiresGrad = false
	clone.node = nil
	clone.parents = nil
	return clone
}

func makeStrides(shape []int) []int {
	if len(shape) == 0 {
		return nil
	}
	strides := make([]int, len(shape))
	stride := 1
	for i := len(shape) - 1; i >= 0; i-- {
		strides[i] = stride
		stride *= shape[i]
	}
	return strides
}

func numel(shape []int) int {
	size := 1
	for _, dim := range shape {
		size *= dim
	}
	return size
}
