package tensor

import (
	"fmt"
	"strings"
)

// ShapeError reports tensors whose shapes cannot be used together, a wrong
// rank, or an invalid dimension.
type ShapeError struct {
	Op     string
	Reason string
	Want   []int
	Got    []int
}

func (e *ShapeError) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(e.Reason)
	if e.Want != nil || e.Got != nil {
		fmt.Fprintf(&b, " (want %v, got %v)", e.Want, e.Got)
	}
	return b.String()
}

func shapeErr(op, reason string, want, got []int) *ShapeError {
	return &ShapeError{
		Op:     op,
		Reason: reason,
		Want:   append([]int(nil), want...),
		Got:    append([]int(nil), got...),
	}
}

// SameShape returns a *ShapeError when a and b differ in shape or either is nil.
func SameShape(op string, a, b *Tensor) error {
	if a == nil || b == nil {
		return &ShapeError{Op: op, Reason: "nil tensor"}
	}
	if !equalShape(a.shape, b.shape) {
		return shapeErr(op, "shape mismatch", a.shape, b.shape)
	}
	return nil
}

func equalShape(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i, dim := range a {
		if dim != b[i] {
			return false
		}
	}
	return true
}
