package cache

import "time"

// Entry is a stored cache value: the encoded payload plus its absolute
// expiry. Entries are immutable once created; a Set for an existing key
// replaces the whole entry.
type Entry struct {
	Payload   []byte
	ExpiresAt time.Time
}

// Expired reports whether the entry is past its expiry at the given instant.
func (e Entry) Expired(now time.Time) bool {
	return now.After(e.ExpiresAt)
}
