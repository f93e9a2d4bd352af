package loss

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/fumitoshi0524/segloss/tensor"
)

// Func is a loss bound to its options and dimensionality.
type Func func(gt, pred *tensor.Tensor) (*tensor.Tensor, error)

// Type enumerates the losses New can build.
type Type int

const (
	// TypeDice is the soft Dice loss.
	TypeDice Type = iota

	// TypeTversky is the Tversky loss, weighted by Options.Alpha.
	TypeTversky

	// TypeFocalTversky is the Tversky loss raised to Options.Gamma.
	TypeFocalTversky

	// TypeGeneralisedDice is the per-sample, inverse-volume weighted Dice.
	TypeGeneralisedDice

	// TypeGeneralisedDiceEinsum is the contraction-based generalised Dice, 2D only.
	TypeGeneralisedDiceEinsum

	// TypeSurface is the boundary loss over a distance-map ground truth.
	TypeSurface
)

var typeNames = [...]string{
	TypeDice:                  "dice",
	TypeTversky:               "tversky",
	TypeFocalTversky:          "focal_tversky",
	TypeGeneralisedDice:       "generalised_dice",
	TypeGeneralisedDiceEinsum: "generalised_dice_einsum",
	TypeSurface:               "surface",
}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return "Type(" + strconv.Itoa(int(t)) + ")"
	}
	return typeNames[t]
}

// Types lists every known loss in declaration order.
func Types() []Type {
	out := make([]Type, len(typeNames))
	for i := range typeNames {
		out[i] = Type(i)
	}
	return out
}

// TypeStrings lists the names accepted by ParseType.
func TypeStrings() []string {
	return append([]string(nil), typeNames[:]...)
}

// ParseType maps a loss name to its Type. Matching ignores case, and "-"
// is read as "_".
func ParseType(name string) (Type, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	for i, n := range typeNames {
		if n == key {
			return Type(i), nil
		}
	}
	return 0, errors.Errorf("unknown loss %q, known losses are \"%s\"", name, strings.Join(TypeStrings(), "\", \""))
}

// New returns the loss of the given kind for rank 4 (2D) or rank 5 (3D)
// inputs, with opts bound in.
func New(kind Type, rank int, opts Options) (Func, error) {
	if err := opts.Validate(); err != nil {
		return nil, errors.Wrapf(err, "loss %s", kind)
	}
	if rank != rank2D && rank != rank3D {
		return nil, errors.Errorf("loss %s: rank must be %d or %d, got %d", kind, rank2D, rank3D, rank)
	}
	op := kind.String() + dimSuffix(rank)
	switch kind {
	case TypeDice:
		return func(gt, pred *tensor.Tensor) (*tensor.Tensor, error) {
			return dice(op, gt, pred, rank, opts.Smooth)
		}, nil
	case TypeTversky:
		return func(gt, pred *tensor.Tensor) (*tensor.Tensor, error) {
			return tversky(op, gt, pred, rank, opts.Alpha, opts.Smooth)
		}, nil
	case TypeFocalTversky:
		return func(gt, pred *tensor.Tensor) (*tensor.Tensor, error) {
			return focalTversky(op, gt, pred, rank, opts.Alpha, opts.Gamma, opts.Smooth)
		}, nil
	case TypeGeneralisedDice:
		return func(gt, pred *tensor.Tensor) (*tensor.Tensor, error) {
			return generalisedDice(op, gt, pred, rank, opts.Smooth)
		}, nil
	case TypeGeneralisedDiceEinsum:
		if rank != rank2D {
			return nil, errors.Errorf("loss %s is only defined for 2D inputs", kind)
		}
		return func(gt, pred *tensor.Tensor) (*tensor.Tensor, error) {
			return generalisedDiceEinsum(op, gt, pred, opts.EinsumSmooth)
		}, nil
	case TypeSurface:
		return func(gt, pred *tensor.Tensor) (*tensor.Tensor, error) {
			return surface(op, gt, pred, rank)
		}, nil
	default:
		return nil, errors.Errorf("unknown loss type %s", kind)
	}
}

// Supports reports whether New accepts kind at the given rank.
func Supports(kind Type, rank int) bool {
	if kind < 0 || int(kind) >= len(typeNames) {
		return false
	}
	if kind == TypeGeneralisedDiceEinsum {
		return rank == rank2D
	}
	return rank == rank2D || rank == rank3D
}

func dimSuffix(rank int) string {
	if rank == rank3D {
		return "_3d"
	}
	return "_2d"
}
