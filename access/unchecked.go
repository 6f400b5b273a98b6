package access

import (
	"github.com/relarchive/relarchive/btree"
	"github.com/relarchive/relarchive/swisstable"
)

// BTree is an unchecked view onto a single ArchivedBTreeMap root living
// at fieldOffset within an Archive's buffer. Constructing one does no
// validation; Get walks whatever pointers it finds, the same "trust the
// bytes" contract relptr.Decode itself carries.
type BTree[K any, V any] struct {
	m      *btree.Map[K, V]
	buf    []byte
	root   int64
	empty  bool
}

// OpenBTree reads a btree.Root at fieldOffset from a and returns an
// unchecked view over it.
func OpenBTree[K any, V any](a *Archive, m *btree.Map[K, V], fieldOffset int64) *BTree[K, V] {
	root, empty, _ := m.ReadRoot(a.buf, fieldOffset)
	return &BTree[K, V]{m: m, buf: a.buf, root: root, empty: empty}
}

// Get performs an unchecked point lookup.
func (b *BTree[K, V]) Get(key K) (V, bool) {
	return b.m.Get(b.buf, b.root, b.empty, key)
}

// Iterate returns an unchecked iterator over every entry in ascending
// key order.
func (b *BTree[K, V]) Iterate() *btree.Iterator[K, V] {
	return b.m.Iterate(b.buf, b.root, b.empty)
}

// Table is an unchecked view onto a single ArchivedSwissTable root living
// at fieldOffset within an Archive's buffer.
type Table[K any, V any] struct {
	t        *swisstable.Table[K, V]
	buf      []byte
	control  int64
	length   uint64
	capacity uint64
}

// OpenTable reads a swisstable.Root at fieldOffset from a and returns an
// unchecked view over it.
func OpenTable[K any, V any](a *Archive, t *swisstable.Table[K, V], fieldOffset int64) *Table[K, V] {
	control, length, capacity := t.ReadRoot(a.buf, fieldOffset)
	return &Table[K, V]{t: t, buf: a.buf, control: control, length: length, capacity: capacity}
}

// Get performs an unchecked point lookup.
func (t *Table[K, V]) Get(key K) (V, bool) {
	return t.t.Get(t.buf, t.control, int(t.capacity), key)
}

// Len reports the table's declared entry count.
func (t *Table[K, V]) Len() uint64 { return t.length }

// Iterate returns an unchecked iterator over every entry.
func (t *Table[K, V]) Iterate() *swisstable.Iterator[K, V] {
	return t.t.Iterate(t.buf, t.control, int(t.capacity))
}
