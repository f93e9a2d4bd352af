package tensor

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/fumitoshi0524/segloss/internal/parallel"
)

// Einsum evaluates an explicit Einstein-summation expression such as
// "bhwc,bhwc->bc" or "bc->b". Subscripts are single letters, the "->" output
// is required, and labels absent from the output are summed over. A label may
// appear at most once per operand. An empty output yields a [1] tensor.
func Einsum(spec string, operands ...*Tensor) (*Tensor, error) {
	plan, err := planEinsum(spec, operands)
	if err != nil {
		return nil, err
	}
	out := Zeros(plan.outShape...)
	parallel.For(plan.nOut, func(start, end int) {
		for o := start; o < end; o++ {
			s := 0.0
			for r := 0; r < plan.nSum; r++ {
				s += plan.product(operands, o, r, -1)
			}
			out.data[o] = s
		}
	})

	var parents []*Tensor
	for _, op := range operands {
		if op.requiresGrad && !containsTensor(parents, op) {
			parents = append(parents, op)
		}
	}
	if len(parents) == 0 {
		return out, nil
	}
	out.requiresGrad = true
	out.parents = parents
	out.node = &node{
		backward: func(grad *Tensor, grads map[*Tensor]*Tensor) {
			for k, op := range operands {
				if !op.requiresGrad {
					continue
				}
				g := Zeros(op.shape...)
				body := func(start, end int) {
					for o := start; o < end; o++ {
						upstream := grad.data[o]
						for r := 0; r < plan.nSum; r++ {
							g.data[plan.outBase[o][k]+plan.sumOff[r][k]] += upstream * plan.product(operands, o, r, k)
						}
					}
				}
				// Distinct output positions only touch distinct operand
				// positions when the operand carries every output label.
				if plan.covers[k] {
					parallel.For(plan.nOut, body)
				} else {
					body(0, plan.nOut)
				}
				accumulate(grads, op, g)
			}
		},
	}
	return out, nil
}

type einsumPlan struct {
	outShape []int
	nOut     int
	nSum     int
	outBase  [][]int // per output position, offset into each operand
	sumOff   [][]int // per summed position, offset into each operand
	covers   []bool
}

// product multiplies the operand values addressed by (o, r), skipping skip.
func (p *einsumPlan) product(operands []*Tensor, o, r, skip int) float64 {
	v := 1.0
	for k, op := range operands {
		if k == skip {
			continue
		}
		v *= op.data[p.outBase[o][k]+p.sumOff[r][k]]
	}
	return v
}

func planEinsum(spec string, operands []*Tensor) (*einsumPlan, error) {
	spec = strings.ReplaceAll(spec, " ", "")
	parts := strings.Split(spec, "->")
	if len(parts) != 2 {
		return nil, errors.Errorf("Einsum %q: expected exactly one \"->\"", spec)
	}
	inputs := strings.Split(parts[0], ",")
	if len(inputs) != len(operands) {
		return nil, errors.Errorf("Einsum %q: %d subscripts for %d operands", spec, len(inputs), len(operands))
	}
	sizes := map[rune]int{}
	var order []rune
	for k, subs := range inputs {
		op := operands[k]
		if op == nil {
			return nil, &ShapeError{Op: "Einsum", Reason: "nil operand"}
		}
		labels := []rune(subs)
		if len(labels) != len(op.shape) {
			return nil, shapeErr("Einsum", "subscript "+subs+" does not match operand rank", nil, op.shape)
		}
		seen := map[rune]bool{}
		for axis, l := range labels {
			if !isLabel(l) {
				return nil, errors.Errorf("Einsum %q: invalid label %q", spec, l)
			}
			if seen[l] {
				return nil, errors.Errorf("Einsum %q: repeated label %q in one operand", spec, l)
			}
			seen[l] = true
			if size, ok := sizes[l]; ok {
				if size != op.shape[axis] {
					return nil, shapeErr("Einsum", "inconsistent size for label "+string(l), []int{size}, []int{op.shape[axis]})
				}
				continue
			}
			sizes[l] = op.shape[axis]
			order = append(order, l)
		}
	}

	outLabels := []rune(parts[1])
	inOut := map[rune]bool{}
	outShape := make([]int, 0, len(outLabels))
	for _, l := range outLabels {
		size, ok := sizes[l]
		if !ok {
			return nil, errors.Errorf("Einsum %q: output label %q not found in inputs", spec, l)
		}
		if inOut[l] {
			return nil, errors.Errorf("Einsum %q: repeated output label %q", spec, l)
		}
		inOut[l] = true
		outShape = append(outShape, size)
	}
	var sumLabels []rune
	for _, l := range order {
		if !inOut[l] {
			sumLabels = append(sumLabels, l)
		}
	}

	// stride of each label inside each operand; zero when absent.
	strides := make([]map[rune]int, len(operands))
	covers := make([]bool, len(operands))
	for k, subs := range inputs {
		strides[k] = map[rune]int{}
		for axis, l := range []rune(subs) {
			strides[k][l] = operands[k].strides[axis]
		}
		covers[k] = true
		for _, l := range outLabels {
			if _, ok := strides[k][l]; !ok {
				covers[k] = false
			}
		}
	}

	plan := &einsumPlan{covers: covers}
	plan.outBase = offsets(outLabels, sizes, strides)
	plan.sumOff = offsets(sumLabels, sizes, strides)
	plan.nOut = len(plan.outBase)
	plan.nSum = len(plan.sumOff)
	if len(outShape) == 0 {
		outShape = []int{1}
	}
	plan.outShape = outShape
	return plan, nil
}

// offsets enumerates every index combination of labels in row-major order and
// returns, for each combination, the flat offset it contributes to each operand.
func offsets(labels []rune, sizes map[rune]int, strides []map[rune]int) [][]int {
	total := 1
	for _, l := range labels {
		total *= sizes[l]
	}
	table := make([][]int, total)
	idx := make([]int, len(labels))
	for n := 0; n < total; n++ {
		row := make([]int, len(strides))
		for k := range strides {
			off := 0
			for j, l := range labels {
				off += idx[j] * strides[k][l]
			}
			row[k] = off
		}
		table[n] = row
		for j := len(labels) - 1; j >= 0; j-- {
			idx[j]++
			if idx[j] < sizes[labels[j]] {
				break
			}
			idx[j] = 0
		}
	}
	return table
}

func isLabel(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func containsTensor(list []*Tensor, t *Tensor) bool {
	for _, v := range list {
		if v == t {
			return true
		}
	}
	return false
}
