package types

import "errors"

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindTruncated              ErrKind = iota + 1 // input ended before a value was complete
	ErrKindMalformedLength                           // declared length/count negative or absurd
	ErrKindUnsupportedCompression                    // header matches no known scheme
	ErrKindDuplicateKey                              // compound key already present
	ErrKindInvalidValue                              // text did not parse for the tag kind
	ErrKindKindMismatch                              // operation not valid for this tag kind
	ErrKindCorrupt                                   // structural corruption (bad tag id, bad string bytes)
	ErrKindNotFound                                  // missing node/path/chunk
	ErrKindInvariant                                 // in-memory model violates an invariant (a bug)
)

// String returns a short, stable name for the kind.
func (k ErrKind) String() string {
	switch k {
	case ErrKindTruncated:
		return "truncated"
	case ErrKindMalformedLength:
		return "malformed-length"
	case ErrKindUnsupportedCompression:
		return "unsupported-compression"
	case ErrKindDuplicateKey:
		return "duplicate-key"
	case ErrKindInvalidValue:
		return "invalid-value"
	case ErrKindKindMismatch:
		return "kind-mismatch"
	case ErrKindCorrupt:
		return "corrupt"
	case ErrKindNotFound:
		return "not-found"
	case ErrKindInvariant:
		return "invariant"
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

// Is reports whether target is a *Error of the same kind, so that
// errors.Is(err, types.ErrDuplicateKey) matches any duplicate-key error
// regardless of its message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinels commonly returned by implementations.
var (
	// ErrTruncated indicates fewer bytes remained than an operation required.
	ErrTruncated = &Error{Kind: ErrKindTruncated, Msg: "truncated input"}
	// ErrMalformedLength indicates a declared length was negative or out of range.
	ErrMalformedLength = &Error{Kind: ErrKindMalformedLength, Msg: "malformed length"}
	// ErrUnsupportedCompression indicates the stream header matched no known scheme.
	ErrUnsupportedCompression = &Error{Kind: ErrKindUnsupportedCompression, Msg: "unsupported compression"}
	// ErrDuplicateKey indicates a compound already holds the key.
	ErrDuplicateKey = &Error{Kind: ErrKindDuplicateKey, Msg: "duplicate key"}
	// ErrInvalidValue indicates text could not be parsed for the target kind.
	ErrInvalidValue = &Error{Kind: ErrKindInvalidValue, Msg: "invalid value"}
	// ErrKindMismatch indicates an operation that the tag kind does not allow.
	ErrKindMismatch = &Error{Kind: ErrKindKindMismatch, Msg: "tag kind mismatch"}
	// ErrCorrupt indicates non-recoverable structural inconsistency in the input.
	ErrCorrupt = &Error{Kind: ErrKindCorrupt, Msg: "corrupt nbt data"}
	// ErrNotFound indicates a missing node, path, or chunk.
	ErrNotFound = &Error{Kind: ErrKindNotFound, Msg: "not found"}
	// ErrInvariant indicates the in-memory model is inconsistent; this is a bug.
	ErrInvariant = &Error{Kind: ErrKindInvariant, Msg: "invariant violation"}
)

// Errorf-style constructors keep call sites short.

// New returns a typed error of the given kind.
func New(kind ErrKind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap returns a typed error of the given kind wrapping cause.
func Wrap(kind ErrKind, msg string, cause error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: cause}
}

// KindOf returns the kind of the first *Error in err's chain, or 0.
func KindOf(err error) ErrKind {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind
	}
	return 0
}
