package loss

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.Equal(t, 0.7, opts.Alpha)
	assert.Equal(t, 0.75, opts.Gamma)
	assert.Equal(t, 1e-5, opts.Smooth)
	assert.Equal(t, 1e-10, opts.EinsumSmooth)
	require.NoError(t, opts.Validate())
}

func TestOptionsValidate(t *testing.T) {
	cases := map[string]func(*Options){
		"nan alpha":       func(o *Options) { o.Alpha = math.NaN() },
		"inf gamma":       func(o *Options) { o.Gamma = math.Inf(1) },
		"zero gamma":      func(o *Options) { o.Gamma = 0 },
		"negative smooth": func(o *Options) { o.Smooth = -1e-5 },
		"negative einsum": func(o *Options) { o.EinsumSmooth = -1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			opts := DefaultOptions()
			mutate(&opts)
			require.Error(t, opts.Validate())
		})
	}

	opts := DefaultOptions()
	opts.Alpha = 1.5
	opts.Smooth = 0
	require.NoError(t, opts.Validate(), "alpha outside [0,1] and zero smoothing are allowed")
}
