package tensor

import (
	"encoding/json"
	"os"
	"sort"

	"github.com/pkg/errors"
)

type tensorRecord struct {
	Shape []int     `json:"shape"`
	Data  []float64 `json:"data"`
}

// SaveTensors serializes a named tensor set to disk using JSON.
func SaveTensors(path string, tensors map[string]*Tensor) error {
	if len(tensors) == 0 {
		return errors.New("SaveTensors requires at least one tensor")
	}
	records := make(map[string]tensorRecord, len(tensors))
	for name, t := range tensors {
		if t == nil {
			return errors.Errorf("tensor %s is nil", name)
		}
		records[name] = tensorRecord{Shape: t.Shape(), Data: t.Data()}
	}
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "SaveTensors")
	}
	defer file.Close()
	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return errors.Wrapf(encoder.Encode(records), "encode %s", path)
}

// LoadTensors deserializes tensors saved with SaveTensors.
func LoadTensors(path string) (map[string]*Tensor, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "LoadTensors")
	}
	defer file.Close()
	records := make(map[string]tensorRecord)
	if err := json.NewDecoder(file).Decode(&records); err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}
	result := make(map[string]*Tensor, len(records))
	for name, rec := range records {
		if len(rec.Shape) == 0 {
			return nil, errors.Errorf("tensor %s missing shape", name)
		}
		t, err := New(rec.Data, rec.Shape...)
		if err != nil {
			return nil, errors.Wrapf(err, "tensor %s", name)
		}
		result[name] = t
	}
	return result, nil
}

// Lookup returns the named tensors from a loaded set, failing on the first
// missing name.
func Lookup(set map[string]*Tensor, names ...string) ([]*Tensor, error) {
	out := make([]*Tensor, len(names))
	for i, name := range names {
		t, ok := set[name]
		if !ok {
			available := make([]string, 0, len(set))
			for k := range set {
				available = append(available, k)
			}
			sort.Strings(available)
			return nil, errors.Errorf("tensor %q not found (have %v)", name, available)
		}
		out[i] = t
	}
	return out, nil
}
