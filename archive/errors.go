package archive

import "errors"

// Sentinel errors returned by the serialization side of the archive,
// following the hive format package's convention of package-level
// sentinel errors with a short doc comment rather than ad-hoc strings.
var (
	// ErrNotEnoughScratch describes a Pop that does not match the top of
	// the LIFO scratch stack. ScratchAllocator.Pop does not return it: Pop
	// takes no size and panics when no allocation is outstanding.
	ErrNotEnoughScratch = errors.New("archive: pop does not match top of scratch stack")

	// ErrSerializerClosed is returned when Finish is called on a
	// Serializer that Finish has already consumed. Other Serializer
	// methods do not check for it.
	ErrSerializerClosed = errors.New("archive: serializer already finished")

	// ErrInvalidLoadFactor names a degenerate load factor (numerator >=
	// denominator, or non-positive). swisstable.NewTable rejects such a
	// factor with its own swisstable.ErrInvalidLoadFactor, not with this
	// value.
	ErrInvalidLoadFactor = errors.New("archive: invalid load factor")
)
