package format

import (
	"bytes"
	"fmt"
)

// CString returns the NUL-terminated string starting at b[off]. The returned
// slice aliases b and excludes the terminator.
func CString(b []byte, off int) ([]byte, error) {
	if off < 0 || off >= len(b) {
		return nil, fmt.Errorf("string at %d: %w", off, ErrBadOffset)
	}
	n := bytes.IndexByte(b[off:], 0)
	if n < 0 {
		return nil, fmt.Errorf("string at %d: %w", off, ErrUnterminated)
	}
	return b[off : off+n], nil
}

// SplitStrings splits a stringlist property value (NUL-separated,
// NUL-terminated strings) into its elements. A trailing element without a
// terminator is still returned.
func SplitStrings(v []byte) [][]byte {
	var out [][]byte
	for len(v) > 0 {
		n := bytes.IndexByte(v, 0)
		if n < 0 {
			out = append(out, v)
			break
		}
		out = append(out, v[:n])
		v = v[n+1:]
	}
	return out
}
