package tensor

// Reshape returns a view of t with a new shape. At most one dimension may be
// -1, in which case it is inferred from the element count.
func (t *Tensor) Reshape(shape ...int) (*Tensor, error) {
	if len(shape) == 0 {
		return nil, &ShapeError{Op: "Reshape", Reason: "shape is required"}
	}
	shape = append([]int(nil), shape...)
	total := t.Numel()
	prod := 1
	infer := -1
	for i, dim := range shape {
		if dim == -1 {
			if infer != -1 {
				return nil, shapeErr("Reshape", "multiple inferred dimensions", nil, shape)
			}
			infer = i
			continue
		}
		if dim <= 0 {
			return nil, shapeErr("Reshape", "invalid dimension", nil, shape)
		}
		prod *= dim
	}
	if infer != -1 {
		if total%prod != 0 {
			return nil, shapeErr("Reshape", "cannot infer dimension", t.shape, shape)
		}
		shape[infer] = total / prod
		prod = total
	}
	if prod != total {
		return nil, shapeErr("Reshape", "size mismatch", t.shape, shape)
	}
	out := &Tensor{
		data:    t.data,
		shape:   shape,
		strides: makeStrides(shape),
	}
	attachUnary(out, t, func(grad *Tensor) *Tensor {
		reshaped := grad.Clone()
		reshaped.shape = append([]int(nil), t.shape...)
		reshaped.strides = makeStrides(reshaped.shape)
		return reshaped
	})
	return out, nil
}

// Flatten collapses every axis after the first, giving [batch, features].
func Flatten(a *Tensor) (*Tensor, error) {
	if len(a.shape) < 2 {
		return a.Reshape(a.Numel())
	}
	return a.Reshape(a.shape[0], -1)
}
