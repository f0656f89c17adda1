package types

// ============================================================================
// NBT Limits Constants
// ============================================================================
// The format itself imposes few hard limits (string lengths are uint16,
// counts are int32). These guard decoding against hostile input that would
// otherwise drive deep recursion or huge allocations.

const (
	// MaxStringBytes is the largest encoded string length the format can express.
	MaxStringBytes = 1<<16 - 1

	// DefaultMaxDepth is the default nesting limit for compounds and lists.
	// Java edition enforces 512 as well.
	DefaultMaxDepth = 512

	// RelaxedMaxDepth allows very deep documents for special cases.
	RelaxedMaxDepth = 4096

	// StrictMaxDepth is a conservative limit for untrusted input.
	StrictMaxDepth = 64

	// DefaultMaxArrayLen bounds the element count of a single array or list.
	DefaultMaxArrayLen = 64 << 20

	// StrictMaxArrayLen is a conservative element bound for untrusted input.
	StrictMaxArrayLen = 1 << 20

	// DefaultMaxInputSize bounds the decompressed size of one document (512 MiB).
	DefaultMaxInputSize = 512 << 20

	// StrictMaxInputSize is a conservative decompressed size bound (16 MiB).
	StrictMaxInputSize = 16 << 20
)

// Limits bounds the resources one decode may consume.
type Limits struct {
	// MaxDepth is the maximum container nesting depth. Zero means DefaultMaxDepth.
	MaxDepth int

	// MaxArrayLen is the maximum element count of one array or list.
	// Zero means DefaultMaxArrayLen.
	MaxArrayLen int

	// MaxInputSize is the maximum number of decompressed bytes read for one
	// document. Zero means DefaultMaxInputSize; negative disables the check.
	MaxInputSize int64
}

// DefaultLimits returns limits suitable for real-world game data.
func DefaultLimits() Limits {
	return Limits{
		MaxDepth:     DefaultMaxDepth,
		MaxArrayLen:  DefaultMaxArrayLen,
		MaxInputSize: DefaultMaxInputSize,
	}
}

// RelaxedLimits allows unusually deep documents.
func RelaxedLimits() Limits {
	return Limits{
		MaxDepth:     RelaxedMaxDepth,
		MaxArrayLen:  DefaultMaxArrayLen,
		MaxInputSize: -1,
	}
}

// StrictLimits returns conservative limits for untrusted input.
func StrictLimits() Limits {
	return Limits{
		MaxDepth:     StrictMaxDepth,
		MaxArrayLen:  StrictMaxArrayLen,
		MaxInputSize: StrictMaxInputSize,
	}
}

// Normalize fills zero fields with defaults.
func (l Limits) Normalize() Limits {
	if l.MaxDepth <= 0 {
		l.MaxDepth = DefaultMaxDepth
	}
	if l.MaxArrayLen <= 0 {
		l.MaxArrayLen = DefaultMaxArrayLen
	}
	if l.MaxInputSize == 0 {
		l.MaxInputSize = DefaultMaxInputSize
	}
	return l
}
