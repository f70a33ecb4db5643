package types

import "errors"

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindFormat      ErrKind = iota // bad magic/version/size in the blob header
	ErrKindCorrupt                    // structural corruption (truncated stream, unknown token, imbalance)
	ErrKindUnsupported                // valid feature we don't support (yet)
	ErrKindCapacity                   // a fixed table limit was exceeded
	ErrKindNotFound                   // missing node/property/path
)

// String implements fmt.Stringer.
func (k ErrKind) String() string {
	switch k {
	case ErrKindFormat:
		return "format"
	case ErrKindCorrupt:
		return "corrupt"
	case ErrKindUnsupported:
		return "unsupported"
	case ErrKindCapacity:
		return "capacity"
	case ErrKindNotFound:
		return "not found"
	default:
		return "unknown"
	}
}

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so errors.Is(err, ErrNotFound)
// holds for every not-found error regardless of its message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinels commonly returned by implementations.
var (
	// ErrFormat indicates the input is not a supported device tree blob.
	ErrFormat = &Error{Kind: ErrKindFormat, Msg: "not a device tree blob"}
	// ErrCorrupt indicates non-recoverable structural inconsistency.
	ErrCorrupt = &Error{Kind: ErrKindCorrupt, Msg: "corrupt device tree structure"}
	// ErrUnsupported indicates a recognized but unsupported feature/variant.
	ErrUnsupported = &Error{Kind: ErrKindUnsupported, Msg: "unsupported device tree feature"}
	// ErrCapacity indicates a node, property or phandle table overflowed.
	ErrCapacity = &Error{Kind: ErrKindCapacity, Msg: "table capacity exceeded"}
	// ErrNotFound indicates a missing node/property/path.
	ErrNotFound = &Error{Kind: ErrKindNotFound, Msg: "not found"}
)

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (ErrKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// -----------------------------------------------------------------------------
// Core Identifiers
// -----------------------------------------------------------------------------

// NodeID is a small, copyable handle to a node: its index in the tree's node
// table, in structure-block order. The root is always 0.
type NodeID int32

// InvalidNode marks an absent back-reference (the root's parent, a node with
// no interrupt-parent).
const InvalidNode NodeID = -1

// Valid reports whether id refers to a node.
func (id NodeID) Valid() bool { return id >= 0 }
