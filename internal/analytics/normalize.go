package analytics

import "encoding/json"

// Normalize converts an API response struct into plain nested maps and
// slices, the only form that leaves the gateway. Empty fields are
// dropped by the struct's own JSON tags.
func Normalize(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// NormalizeSlice applies Normalize to every element. A nil input yields
// an empty, non-nil slice so callers always serialize a JSON array.
func NormalizeSlice[T any](items []T) ([]map[string]any, error) {
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		m, err := Normalize(item)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}
