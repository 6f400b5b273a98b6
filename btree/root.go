package btree

import "github.com/relarchive/relarchive/relptr"

// Root is the archived form of an ArchivedBTreeMap: a relative pointer to
// the tree's root node plus the total entry count. It is what a
// containing archive stores inline; the Map[K,V] value itself carries no
// per-instance state and can be shared across any number of Roots that
// share its fanout/codec/pointer-width configuration.
type Root struct {
	PtrOffset int64 // absolute offset of the relative pointer field
	Len       uint64
}

// WriteRoot writes a Root's archived fields (relptr + len) into dst at
// the given field offset, after the tree body has already been written
// via BuildSorted (so rootNodePos is known). An empty map writes the
// invalid-pointer sentinel and len = 0, per this module's serialization
// spec edge case for N = 0.
func (m *Map[K, V]) WriteRoot(dst []byte, fieldOffset int64, rootNodePos int64, isEmpty bool, length int) {
	if isEmpty {
		relptr.EncodeInvalid(dst, fieldOffset, m.ptrWidth, defaultOrder)
	} else {
		relptr.Encode(dst, fieldOffset, rootNodePos, m.ptrWidth, defaultOrder)
	}
	defaultOrder.PutUint64(dst[fieldOffset+int64(m.ptrWidth.Size()):], uint64(length))
}

// ReadRoot decodes a Root previously written by WriteRoot.
func (m *Map[K, V]) ReadRoot(buf []byte, fieldOffset int64) (rootPos int64, isEmpty bool, length uint64) {
	target, invalid := relptr.Decode(buf, fieldOffset, m.ptrWidth, defaultOrder)
	length = defaultOrder.Uint64(buf[fieldOffset+int64(m.ptrWidth.Size()):])
	return target, invalid, length
}

// RootSize is the fixed byte size of a Root record: a relative pointer
// plus an 8-byte length.
func (m *Map[K, V]) RootSize() int {
	return m.ptrWidth.Size() + 8
}
