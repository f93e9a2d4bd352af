package tensor

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndLoadTensors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pair.json")
	tensors := map[string]*Tensor{
		"gt":   MustNew([]float64{1, 0, 0, 1}, 1, 2, 2, 1),
		"pred": MustNew([]float64{0.9, 0.2, 0.1, 0.7}, 1, 2, 2, 1),
	}
	require.NoError(t, SaveTensors(path, tensors))

	loaded, err := LoadTensors(path)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	for name, original := range tensors {
		got, ok := loaded[name]
		require.True(t, ok, "missing tensor %s", name)
		assert.Equal(t, original.Shape(), got.Shape())
		assert.Equal(t, original.Data(), got.Data())
	}

	pair, err := Lookup(loaded, "gt", "pred")
	require.NoError(t, err)
	assert.Equal(t, tensors["gt"].Data(), pair[0].Data())

	_, err = Lookup(loaded, "mask")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mask")
}

func TestSaveTensorsValidation(t *testing.T) {
	dir := t.TempDir()
	require.Error(t, SaveTensors(filepath.Join(dir, "empty.json"), nil))
	require.Error(t, SaveTensors(filepath.Join(dir, "nil.json"), map[string]*Tensor{"x": nil}))

	_, err := LoadTensors(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
}
