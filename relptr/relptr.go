// Package relptr implements relative pointers: signed offsets stored in an
// archived buffer that are interpreted relative to the position of the
// pointer field itself, rather than relative to the start of the buffer.
//
// A relative pointer lets an archived buffer be read at any base address:
// copying, mmapping at a different address each run, or sending the bytes
// over the wire never invalidates an internal reference, because the
// reference only ever encodes "how far from here."
//
// Width is chosen once per archive (via archive.Config) and used
// consistently for every pointer field in that archive; this package does
// not mix widths within a single buffer.
package relptr

import (
	"encoding/binary"
	"math"
)

// Width selects the storage size of a relative pointer field.
type Width uint8

const (
	// Width16 stores the pointer in 2 bytes (range: +/-32767 bytes from the field).
	Width16 Width = iota
	// Width32 stores the pointer in 4 bytes.
	Width32
	// Width64 stores the pointer in 8 bytes.
	Width64
)

// Size returns the number of bytes a pointer of this width occupies.
func (w Width) Size() int {
	switch w {
	case Width16:
		return 2
	case Width32:
		return 4
	case Width64:
		return 8
	default:
		panic("relptr: invalid width")
	}
}

// Invalid returns the sentinel value used to mark a relative pointer that
// does not point anywhere (e.g. an empty collection's root). It is the
// minimum representable signed value for the configured width, matching
// the convention that no valid offset ever needs the full negative range.
func (w Width) Invalid() int64 {
	switch w {
	case Width16:
		return math.MinInt16
	case Width32:
		return math.MinInt32
	case Width64:
		return math.MinInt64
	default:
		panic("relptr: invalid width")
	}
}

// Encode writes a relative pointer at b[fieldOffset:fieldOffset+w.Size()]
// such that decoding it at fieldOffset yields targetOffset. Both offsets
// are absolute positions within the same buffer. Encode panics if the
// resulting delta does not fit in the configured width; callers are
// expected to have validated reachability before calling (archives are
// built bottom-up and targets are always within range in practice, since
// buffers are bounded well under the width's representable span).
func Encode(b []byte, fieldOffset, targetOffset int64, w Width, order binary.ByteOrder) {
	delta := targetOffset - fieldOffset
	field := b[fieldOffset : fieldOffset+int64(w.Size())]
	switch w {
	case Width16:
		if delta <= math.MinInt16 || delta > math.MaxInt16 {
			panic("relptr: delta out of range for Width16")
		}
		order.PutUint16(field, uint16(int16(delta)))
	case Width32:
		if delta <= math.MinInt32 || delta > math.MaxInt32 {
			panic("relptr: delta out of range for Width32")
		}
		order.PutUint32(field, uint32(int32(delta)))
	case Width64:
		if delta == math.MinInt64 {
			panic("relptr: delta out of range for Width64")
		}
		order.PutUint64(field, uint64(delta))
	default:
		panic("relptr: invalid width")
	}
}

// EncodeInvalid writes the sentinel "points nowhere" value at fieldOffset.
func EncodeInvalid(b []byte, fieldOffset int64, w Width, order binary.ByteOrder) {
	field := b[fieldOffset : fieldOffset+int64(w.Size())]
	switch w {
	case Width16:
		order.PutUint16(field, uint16(int16(w.Invalid())))
	case Width32:
		order.PutUint32(field, uint32(int32(w.Invalid())))
	case Width64:
		order.PutUint64(field, uint64(w.Invalid()))
	default:
		panic("relptr: invalid width")
	}
}

// Decode reads the relative pointer stored at b[fieldOffset:...] and
// returns the absolute target offset it encodes. invalid reports whether
// the stored delta was the width's sentinel value.
func Decode(b []byte, fieldOffset int64, w Width, order binary.ByteOrder) (target int64, invalid bool) {
	field := b[fieldOffset : fieldOffset+int64(w.Size())]
	var delta int64
	switch w {
	case Width16:
		delta = int64(int16(order.Uint16(field)))
	case Width32:
		delta = int64(int32(order.Uint32(field)))
	case Width64:
		delta = int64(order.Uint64(field))
	default:
		panic("relptr: invalid width")
	}
	if delta == w.Invalid() {
		return 0, true
	}
	return fieldOffset + delta, false
}
