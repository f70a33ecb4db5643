package format

import (
	"fmt"

	"golang.org/x/crypto/cryptobyte"
)

// ReserveEntry is one struct fdt_reserve_entry.
type ReserveEntry struct {
	Address uint64
	Size    uint64
}

// IsZero reports whether e is the list terminator.
func (e ReserveEntry) IsZero() bool { return e.Address == 0 && e.Size == 0 }

// ReadReservations decodes the memory reservation block up to, and excluding,
// the all-zero terminator.
func ReadReservations(b []byte) ([]ReserveEntry, error) {
	s := cryptobyte.String(b)
	var out []ReserveEntry
	for {
		var e ReserveEntry
		if !s.ReadUint64(&e.Address) || !s.ReadUint64(&e.Size) {
			return nil, fmt.Errorf("reservation entry %d: %w", len(out), ErrTruncated)
		}
		if e.IsZero() {
			return out, nil
		}
		out = append(out, e)
	}
}
