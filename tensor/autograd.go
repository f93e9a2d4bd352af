package tensor

import (
	"github.com/pkg/errors"

	"github.com/fumitoshi0524/segloss/internal/parallel"
)

// Backward seeds t with ones and propagates gradients to every tensor in its
// graph that requires them. Gradients accumulate across calls until ZeroGrad.
func (t *Tensor) Backward() error {
	if t == nil {
		return errors.New("Backward: nil tensor")
	}
	if !t.requiresGrad {
		return errors.New("Backward: tensor does not require grad")
	}
	order := topo(t)
	grads := map[*Tensor]*Tensor{}
	grads[t] = Full(1, t.shape...)
	for i := len(order) - 1; i >= 0; i-- {
		current := order[i]
		grad := grads[current]
		if grad == nil {
			continue
		}
		if current.grad == nil {
			current.grad = grad.Clone()
		} else {
			addInPlace(current.grad, grad)
		}
		if current.node != nil {
			current.node.backward(grad, grads)
		}
	}
	return nil
}

func topo(root *Tensor) []*Tensor {
	visited := map[*Tensor]bool{}
	var order []*Tensor
	var visit func(*Tensor)
	visit = func(n *Tensor) {
		if n == nil || visited[n] {
			return
		}
		visited[n] = true
		for _, parent := range n.parents {
			visit(parent)
		}
		order = append(order, n)
	}
	visit(root)
	return order
}

func accumulate(grads map[*Tensor]*Tensor, target *Tensor, value *Tensor) {
	if target == nil || value == nil {
		return
	}
	if existing, ok := grads[target]; ok {
		addInPlace(existing, value)
	} else {
		grads[target] = value.Clone()
	}
}

func addInPlace(dst, src *Tensor) {
	if len(dst.data) != len(src.data) {
		panic(shapeErr("accumulate", "gradient size mismatch", dst.shape, src.shape))
	}
	parallel.For(len(dst.data), func(start, end int) {
		for i := start; i < end; i++ {
			dst.data[i] += src.data[i]
		}
	})
}

// attachUnary wires out to a single parent. local maps the incoming gradient
// to the gradient of a.
func attachUnary(out, a *Tensor, local func(grad *Tensor) *Tensor) {
	if !a.requiresGrad {
		return
	}
	out.requiresGrad = true
	out.parents = []*Tensor{a}
	out.node = &node{
		backward: func(grad *Tensor, grads map[*Tensor]*Tensor) {
			accumulate(grads, a, local(grad))
		},
	}
}

func attachBinary(out, a, b *Tensor, backward func(grad *Tensor, grads map[*Tensor]*Tensor)) {
	if !(a.requiresGrad || b.requiresGrad) {
		return
	}
	out.requiresGrad = true
	parents := make([]*Tensor, 0, 2)
	if a.requiresGrad {
		parents = append(parents, a)
	}
	if b.requiresGrad && b != a {
		parents = append(parents, b)
	}
	out.parents = parents
	out.node = &node{backward: backward}
}
