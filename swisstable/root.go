package swisstable

import "github.com/relarchive/relarchive/relptr"

// Root is the archived form of an ArchivedSwissTable: a relative pointer
// to the first control byte, the entry count, and the capacity.
type Root struct {
	PtrOffset int64
	Len       uint64
	Cap       uint64
}

// WriteRoot writes a Root's fields at fieldOffset. An empty table (no
// entries were ever built) writes the invalid-pointer sentinel with
// len = cap = 0, matching the B-tree's N = 0 convention.
func (t *Table[K, V]) WriteRoot(dst []byte, fieldOffset int64, controlPos int64, length, capacity int) {
	if capacity == 0 {
		relptr.EncodeInvalid(dst, fieldOffset, t.ptrWidth, defaultOrder)
	} else {
		relptr.Encode(dst, fieldOffset, controlPos, t.ptrWidth, defaultOrder)
	}
	base := fieldOffset + int64(t.ptrWidth.Size())
	defaultOrder.PutUint64(dst[base:], uint64(length))
	defaultOrder.PutUint64(dst[base+8:], uint64(capacity))
}

// ReadRoot decodes a Root previously written by WriteRoot.
func (t *Table[K, V]) ReadRoot(buf []byte, fieldOffset int64) (controlPos int64, length, capacity uint64) {
	target, invalid := relptr.Decode(buf, fieldOffset, t.ptrWidth, defaultOrder)
	base := fieldOffset + int64(t.ptrWidth.Size())
	length = defaultOrder.Uint64(buf[base:])
	capacity = defaultOrder.Uint64(buf[base+8:])
	if invalid {
		return 0, length, capacity
	}
	return target, length, capacity
}

// RootSize is the fixed byte size of a Root record.
func (t *Table[K, V]) RootSize() int {
	return t.ptrWidth.Size() + 16
}
