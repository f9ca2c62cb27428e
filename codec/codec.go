// Package codec turns cached values into bytes and back. The cache stores
// whole stop and line lists under a handful of keys, so codecs here favor
// simplicity over streaming.
package codec

// Codec converts values of type V to a byte payload for a cache backend,
// and restores them on read.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}
