// Package archive implements the serialization side of the zero-copy
// archive format: Writer, Allocator, Place/Resolver protocol, the sharing
// pool for deduplicating shared targets, and the scalar/string codecs used
// by the btree and swisstable container packages.
package archive

import (
	"encoding/binary"

	"github.com/relarchive/relarchive/relptr"
)

// Config fixes the process-wide choices that every archive built or read
// by this process must agree on: byte order and relative-pointer width.
// There is no per-value override; mixing configs within one buffer
// produces an unreadable archive. Construct one with DefaultConfig or a
// literal and pass it explicitly to NewSerializer (and its Order to
// validate.NewContext), mirroring how the teacher passes explicit Options structs rather than
// relying on package-level mutable state.
type Config struct {
	Order       binary.ByteOrder
	PointerSize relptr.Width
}

// DefaultConfig returns the little-endian, 32-bit-pointer configuration
// used by every example in this module and by the CLI.
func DefaultConfig() Config {
	return Config{
		Order:       binary.LittleEndian,
		PointerSize: relptr.Width32,
	}
}
