package archive

import (
	"encoding/binary"

	"golang.org/x/text/encoding/unicode"

	"github.com/relarchive/relarchive/relptr"
)

// ArchivedString is the fixed-size archived form of a string: a relative
// pointer to the out-of-line byte payload, plus its length in bytes. This
// mirrors the hive format's own pattern for variable-length registry
// string values -- a fixed value-record header pointing at an out-of-line
// cell -- generalized from hive cell offsets to relative pointers.
type ArchivedString struct {
	Ptr relptr.Width
	Len uint32
}

// StringCodec archives Go strings as an ArchivedString header plus an
// out-of-line payload written via a Serializer. Two payload encodings are
// supported: UTF-8 (the default, payload bytes are the string verbatim)
// and UTF-16LE, selected with NewUTF16StringCodec and grounded on the
// same golang.org/x/text/encoding package the teacher uses
// (internal/reader) to decode registry REG_SZ values, which are natively
// UTF-16LE on disk.
type StringCodec struct {
	width   relptr.Width
	utf16   bool
}

// NewStringCodec returns a UTF-8 string codec using the given pointer
// width for its relative pointer field.
func NewStringCodec(width relptr.Width) *StringCodec {
	return &StringCodec{width: width}
}

// NewUTF16StringCodec returns a string codec that stores payload bytes as
// UTF-16LE, matching on-disk registry string encoding.
func NewUTF16StringCodec(width relptr.Width) *StringCodec {
	return &StringCodec{width: width, utf16: true}
}

// Size returns the fixed header size: pointer width plus a 4-byte length.
func (c *StringCodec) Size() int { return c.width.Size() + 4 }

// Align returns the header's required alignment, matching its pointer
// width since the pointer field dominates.
func (c *StringCodec) Align() int {
	switch c.width {
	case relptr.Width64:
		return 8
	case relptr.Width32:
		return 4
	default:
		return 2
	}
}

// payload returns the encoded byte form of s per the codec's configured
// encoding.
func (c *StringCodec) payload(s string) ([]byte, error) {
	if !c.utf16 {
		return []byte(s), nil
	}
	enc := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder()
	return enc.Bytes([]byte(s))
}

// SerializeString writes s's out-of-line payload via ser and returns the
// position it was written at and its byte length, for later use by
// ResolveString.
func (c *StringCodec) SerializeString(ser *Serializer, s string) (pos int64, length int, err error) {
	payload, err := c.payload(s)
	if err != nil {
		return 0, 0, err
	}
	pos, err = ser.Writer.WriteBytes(payload)
	if err != nil {
		return 0, 0, err
	}
	return pos, len(payload), nil
}

// ResolveString writes the ArchivedString header at out.Pos in dst,
// pointing at payloadPos with the given byte length.
func (c *StringCodec) ResolveString(out Place, dst []byte, order binary.ByteOrder, payloadPos int64, length int) {
	fieldOff := out.Pos
	if payloadPos == 0 && length == 0 {
		relptr.EncodeInvalid(dst, fieldOff, c.width, order)
	} else {
		relptr.Encode(dst, fieldOff, payloadPos, c.width, order)
	}
	binary.LittleEndian.PutUint32(dst[fieldOff+int64(c.width.Size()):], uint32(length))
}

// Decode reads an ArchivedString at src[off:] from base (the buffer the
// relative pointer is resolved against) and returns the decoded string,
// honoring the codec's payload encoding.
func (c *StringCodec) Decode(base []byte, off int64, order binary.ByteOrder) (string, error) {
	target, invalid := relptr.Decode(base, off, c.width, order)
	length := binary.LittleEndian.Uint32(base[off+int64(c.width.Size()):])
	if invalid || length == 0 {
		return "", nil
	}
	payload := base[target : target+int64(length)]
	if !c.utf16 {
		return string(payload), nil
	}
	dec := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
	out, err := dec.Bytes(payload)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
