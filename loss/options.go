package loss

import (
	"math"

	"github.com/pkg/errors"
)

const (
	// DefaultSmooth is added to both sides of every ratio so that an absent
	// class still gives a finite loss.
	DefaultSmooth = 1e-5
	// EinsumSmooth is the smoothing used by GeneralisedDice2DEinsum.
	EinsumSmooth = 1e-10
	// DefaultAlpha weights false negatives in the Tversky index; false
	// positives get 1-alpha.
	DefaultAlpha = 0.7
	// DefaultGamma is the focal exponent applied to the Tversky loss.
	DefaultGamma = 0.75
)

// Options carries the hyperparameters a loss may use. Losses ignore the
// fields they have no use for.
type Options struct {
	Alpha        float64
	Gamma        float64
	Smooth       float64
	EinsumSmooth float64
}

func DefaultOptions() Options {
	return Options{
		Alpha:        DefaultAlpha,
		Gamma:        DefaultGamma,
		Smooth:       DefaultSmooth,
		EinsumSmooth: EinsumSmooth,
	}
}

// Validate rejects non-finite values, negative smoothing, and a non-positive
// gamma. Alpha is left unbounded; Tversky is defined for any real weight.
func (o Options) Validate() error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"alpha", o.Alpha},
		{"gamma", o.Gamma},
		{"smooth", o.Smooth},
		{"einsum smooth", o.EinsumSmooth},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return errors.Errorf("%s must be finite, got %v", f.name, f.value)
		}
	}
	if o.Smooth < 0 || o.EinsumSmooth < 0 {
		return errors.Errorf("smoothing must be non-negative, got %v and %v", o.Smooth, o.EinsumSmooth)
	}
	if o.Gamma <= 0 {
		return errors.Errorf("gamma must be positive, got %v", o.Gamma)
	}
	return nil
}
