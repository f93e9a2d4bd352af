package tensor

import "fmt"

// Dims describes a channels-last segmentation tensor. Depth is zero for 2D
// data laid out as [batch, height, width, channels]; 3D data is
// [batch, depth, height, width, channels].
type Dims struct {
	Batch    int
	Depth    int
	Height   int
	Width    int
	Channels int
}

// DimsOf reads the layout of t, which must have the given rank (4 or 5).
func DimsOf(t *Tensor, rank int) (Dims, error) {
	if t == nil {
		return Dims{}, &ShapeError{Op: "DimsOf", Reason: "nil tensor"}
	}
	if rank != 4 && rank != 5 {
		return Dims{}, &ShapeError{Op: "DimsOf", Reason: fmt.Sprintf("unsupported rank %d", rank)}
	}
	if len(t.shape) != rank {
		return Dims{}, shapeErr("DimsOf", fmt.Sprintf("expected rank %d", rank), nil, t.shape)
	}
	s := t.shape
	if rank == 4 {
		return Dims{Batch: s[0], Height: s[1], Width: s[2], Channels: s[3]}, nil
	}
	return Dims{Batch: s[0], Depth: s[1], Height: s[2], Width: s[3], Channels: s[4]}, nil
}

func (d Dims) Is3D() bool {
	return d.Depth > 0
}

func (d Dims) Rank() int {
	if d.Is3D() {
		return 5
	}
	return 4
}

// PerSample is the number of values in one batch item.
func (d Dims) PerSample() int {
	return d.Spatial() * d.Channels
}

// Spatial is the number of voxels (or pixels) per channel.
func (d Dims) Spatial() int {
	n := d.Height * d.Width
	if d.Is3D() {
		n *= d.Depth
	}
	return n
}

// SpatialAxes lists the axes between batch and channels.
func (d Dims) SpatialAxes() []int {
	if d.Is3D() {
		return []int{1, 2, 3}
	}
	return []int{1, 2}
}

// Shape returns the tensor shape d describes.
func (d Dims) Shape() []int {
	if d.Is3D() {
		return []int{d.Batch, d.Depth, d.Height, d.Width, d.Channels}
	}
	return []int{d.Batch, d.Height, d.Width, d.Channels}
}

func (d Dims) String() string {
	return fmt.Sprint(d.Shape())
}
