// Package mmfile loads device tree blobs from disk. On unix the file is
// mapped read-only with a private mapping; elsewhere it is read into memory.
// Either way the caller gets a byte slice plus a release function that must
// be called once the slice is no longer referenced.
package mmfile
