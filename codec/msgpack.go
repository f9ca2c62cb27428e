package codec

import "github.com/vmihailenco/msgpack/v5"

// Msgpack marshals values with vmihailenco/msgpack. Worth reaching for when
// cached lists live in redis: a full site list is roughly a third smaller
// than its JSON form. Field names come from `msgpack` tags, not `json` tags.
// The zero value is ready to use.
type Msgpack[V any] struct{}

func (Msgpack[V]) Encode(v V) ([]byte, error) { return msgpack.Marshal(v) }

func (Msgpack[V]) Decode(b []byte) (V, error) {
	var v V
	err := msgpack.Unmarshal(b, &v)
	return v, err
}
