package swisstable

import "github.com/relarchive/relarchive/validate"

// Verify checks a table's structural invariants before it is trusted:
// length must be strictly less than capacity (InvalidLengthCap), the
// whole table region must lie within an allowed subtree, and the tail
// mirror copy of the first MaxGroupWidth-1 control bytes must agree with
// the primary copy -- a deliberately corruptible invariant exercised by
// this package's tail-mirror-corruption test, ported from this module's
// serialization spec's description of SwissTable validation.
func (t *Table[K, V]) Verify(ctx *validate.Context, buf []byte, controlPos int64, length, capacity uint64) error {
	if capacity == 0 {
		if length != 0 {
			return validate.ErrInvalidLengthCap
		}
		return nil
	}
	if length >= capacity {
		return validate.ErrInvalidLengthCap
	}
	lay := newLayout(int(capacity), t.keyCodec, t.valCodec, t.ptrWidth)
	start := controlPos - int64(lay.bucketRegion)
	end := controlPos + int64(lay.controlCount)
	if start < 0 || end > int64(len(buf)) {
		return validate.ErrOutOfBounds
	}

	return ctx.InSubtree(start, end, "swisstable", func() error {
		mirrorWidth := MaxGroupWidth - 1
		if mirrorWidth > int(capacity) {
			mirrorWidth = int(capacity)
		}
		for i := 0; i < mirrorWidth; i++ {
			primary := buf[controlPos+int64(i)]
			mirror := buf[controlPos+int64(capacity)+int64(i)]
			if primary != mirror {
				return validate.ErrUnwrappedControlByte
			}
		}
		return nil
	})
}
