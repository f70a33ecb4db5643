package format

import "errors"

var (
	// ErrSignatureMismatch indicates the header magic was not 0xD00DFEED.
	ErrSignatureMismatch = errors.New("format: signature mismatch")
	// ErrUnsupportedVersion indicates a header version other than 17.
	ErrUnsupportedVersion = errors.New("format: unsupported version")
	// ErrTruncated indicates the buffer lacked the bytes required for a structure.
	ErrTruncated = errors.New("format: truncated buffer")
	// ErrBadOffset indicates a header offset or size pointing outside the blob.
	ErrBadOffset = errors.New("format: block outside blob")
	// ErrUnterminated indicates a string without a NUL terminator.
	ErrUnterminated = errors.New("format: unterminated string")
)
