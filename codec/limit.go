package codec

import "fmt"

// Limit rejects oversized payloads before they reach the wrapped codec's
// Decode. A shared redis database or a cache directory on disk can hand back
// entries written by anyone; Limit keeps a poisoned oversized entry from
// being unmarshaled at all. Encode passes through unchanged.
type Limit[V any] struct {
	// Inner does the actual (de)serialization. Required.
	Inner Codec[V]

	// MaxDecode caps the accepted payload length in bytes.
	// Zero or negative disables the check.
	MaxDecode int
}

func (c Limit[V]) Encode(v V) ([]byte, error) { return c.Inner.Encode(v) }

func (c Limit[V]) Decode(b []byte) (V, error) {
	if c.MaxDecode > 0 && len(b) > c.MaxDecode {
		var zero V
		return zero, fmt.Errorf("payload too large: %d > %d", len(b), c.MaxDecode)
	}
	return c.Inner.Decode(b)
}
