package codec

import "encoding/json"

// JSON marshals values with encoding/json. It is the codec the cache falls
// back to when none is configured; stop and line slices already carry json
// tags for the transit APIs, so they reuse them here. The zero value is
// ready to use.
type JSON[V any] struct{}

func (JSON[V]) Encode(v V) ([]byte, error) { return json.Marshal(v) }

func (JSON[V]) Decode(b []byte) (V, error) {
	var v V
	err := json.Unmarshal(b, &v)
	return v, err
}
