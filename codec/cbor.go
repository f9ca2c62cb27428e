package codec

import "github.com/fxamacker/cbor/v2"

// CBOR marshals values with fxamacker/cbor. Unlike the other codecs the
// zero value is not usable; the cbor modes must be built once up front, so
// construct with NewCBOR or MustCBOR.
//
// With deterministic=true the encoder follows RFC 8949 Core Deterministic
// Encoding, which makes equal values encode to equal bytes. Timestamps are
// always written as RFC3339Nano text so entries stay inspectable.
type CBOR[V any] struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

var _ Codec[struct{}] = CBOR[struct{}]{}

func NewCBOR[V any](deterministic bool) (CBOR[V], error) {
	var opts cbor.EncOptions
	if deterministic {
		opts = cbor.CoreDetEncOptions()
	} else {
		opts = cbor.PreferredUnsortedEncOptions()
	}
	opts.Time = cbor.TimeRFC3339Nano

	enc, err := opts.EncMode()
	if err != nil {
		return CBOR[V]{}, err
	}
	dec, err := (cbor.DecOptions{}).DecMode()
	if err != nil {
		return CBOR[V]{}, err
	}
	return CBOR[V]{enc: enc, dec: dec}, nil
}

// MustCBOR panics when the modes cannot be built. Intended for package-level
// variables in tests and examples.
func MustCBOR[V any](deterministic bool) CBOR[V] {
	c, err := NewCBOR[V](deterministic)
	if err != nil {
		panic(err)
	}
	return c
}

func (c CBOR[V]) Encode(v V) ([]byte, error) { return c.enc.Marshal(v) }

func (c CBOR[V]) Decode(b []byte) (V, error) {
	var v V
	err := c.dec.Unmarshal(b, &v)
	return v, err
}
