package archive

import "encoding/binary"

// Codec describes how a type T is laid out in its archived form: a fixed
// byte size, a required alignment, and direct encode/decode against a
// byte slice at a known offset.
//
// This is the Go reading of the Archive trait: rather than overlay a Go
// struct onto the buffer (which would require unsafe.Pointer casts that
// don't generalize across the fixed-size array lengths a const-generic
// fanout would otherwise give us), every archived value is read and
// written through its Codec, the same way internal/format/encoding.go
// reads and writes hive fields through fixed LittleEndian helpers instead
// of casting a *Cell onto the buffer.
type Codec[T any] interface {
	// Size is the fixed number of bytes T occupies in its archived form.
	Size() int
	// Align is the byte alignment T's archived form requires.
	Align() int
	// Encode writes v's archived form to dst, which must be at least
	// Size() bytes.
	Encode(dst []byte, order binary.ByteOrder, v T)
	// Decode reads an archived T from src, which must be at least Size()
	// bytes.
	Decode(src []byte, order binary.ByteOrder) T
}

type uint8Codec struct{}

func (uint8Codec) Size() int  { return 1 }
func (uint8Codec) Align() int { return 1 }
func (uint8Codec) Encode(dst []byte, _ binary.ByteOrder, v uint8) { dst[0] = v }
func (uint8Codec) Decode(src []byte, _ binary.ByteOrder) uint8    { return src[0] }

// Uint8Codec archives a uint8 as a single byte.
func Uint8Codec() Codec[uint8] { return uint8Codec{} }

type uint16Codec struct{}

func (uint16Codec) Size() int  { return 2 }
func (uint16Codec) Align() int { return 2 }
func (uint16Codec) Encode(dst []byte, order binary.ByteOrder, v uint16) { order.PutUint16(dst, v) }
func (uint16Codec) Decode(src []byte, order binary.ByteOrder) uint16   { return order.Uint16(src) }

// Uint16Codec archives a uint16.
func Uint16Codec() Codec[uint16] { return uint16Codec{} }

type uint32Codec struct{}

func (uint32Codec) Size() int  { return 4 }
func (uint32Codec) Align() int { return 4 }
func (uint32Codec) Encode(dst []byte, order binary.ByteOrder, v uint32) { order.PutUint32(dst, v) }
func (uint32Codec) Decode(src []byte, order binary.ByteOrder) uint32   { return order.Uint32(src) }

// Uint32Codec archives a uint32.
func Uint32Codec() Codec[uint32] { return uint32Codec{} }

type uint64Codec struct{}

func (uint64Codec) Size() int  { return 8 }
func (uint64Codec) Align() int { return 8 }
func (uint64Codec) Encode(dst []byte, order binary.ByteOrder, v uint64) { order.PutUint64(dst, v) }
func (uint64Codec) Decode(src []byte, order binary.ByteOrder) uint64   { return order.Uint64(src) }

// Uint64Codec archives a uint64.
func Uint64Codec() Codec[uint64] { return uint64Codec{} }

type int32Codec struct{}

func (int32Codec) Size() int  { return 4 }
func (int32Codec) Align() int { return 4 }
func (int32Codec) Encode(dst []byte, order binary.ByteOrder, v int32) {
	order.PutUint32(dst, uint32(v))
}
func (int32Codec) Decode(src []byte, order binary.ByteOrder) int32 {
	return int32(order.Uint32(src))
}

// Int32Codec archives an int32.
func Int32Codec() Codec[int32] { return int32Codec{} }

type int64Codec struct{}

func (int64Codec) Size() int  { return 8 }
func (int64Codec) Align() int { return 8 }
func (int64Codec) Encode(dst []byte, order binary.ByteOrder, v int64) {
	order.PutUint64(dst, uint64(v))
}
func (int64Codec) Decode(src []byte, order binary.ByteOrder) int64 {
	return int64(order.Uint64(src))
}

// Int64Codec archives an int64.
func Int64Codec() Codec[int64] { return int64Codec{} }
