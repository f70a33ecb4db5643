// Package types defines the shared, dependency-free vocabulary of fdtkit:
// node handles, capacity limits, and typed errors.
//
// Design goals:
//   - Small, copyable handles (NodeID) instead of pointer graphs.
//   - Fixed, caller-visible capacity limits; exceeding one is an error.
//   - Paranoid bounds checking; never panic on malformed input.
//   - Typed errors with stable categories (format/corrupt/unsupported/...).
//
// This package has no dependencies beyond the standard library.
package types
