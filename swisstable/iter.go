package swisstable

// Iterator walks every occupied slot of a table. Internally this scans
// the control region for full (non-empty) bytes group by group, the
// scalar equivalent of the original's Group::read(...).match_full()
// stepping -- the only available substitute here is a byte-by-byte scan
// rather than a single masked instruction, but the traversal shape (walk
// the control array once, left to right, emitting one entry per full
// slot) is the same.
type Iterator[K any, V any] struct {
	t       *Table[K, V]
	buf     []byte
	control int64
	base    int
	capacity int
	index   int
}

// Iterate returns an Iterator over the table whose first control byte is
// at controlPos with the given capacity.
func (t *Table[K, V]) Iterate(buf []byte, controlPos int64, capacity int) *Iterator[K, V] {
	lay := newLayout(capacity, t.keyCodec, t.valCodec, t.ptrWidth)
	return &Iterator[K, V]{t: t, buf: buf, control: controlPos, base: lay.bucketRegion, capacity: capacity}
}

// Next reports the next occupied entry, or ok=false once every slot has
// been visited.
func (it *Iterator[K, V]) Next() (key K, value V, ok bool) {
	var zk K
	var zv V
	if it.capacity == 0 {
		return zk, zv, false
	}
	lay := newLayout(it.capacity, it.t.keyCodec, it.t.valCodec, it.t.ptrWidth)
	for it.index < it.capacity {
		ctrl := it.buf[int(it.control)+it.index]
		if ctrl == 0xFF {
			it.index++
			continue
		}
		bucketOff := int(it.control) - it.base + lay.bucketOffset(it.index)
		key = it.t.keyCodec.Decode(it.buf[bucketOff:bucketOff+lay.keySize], defaultOrder)
		value = it.t.valCodec.Decode(it.buf[bucketOff+lay.keySize:bucketOff+lay.keySize+lay.valSize], defaultOrder)
		it.index++
		return key, value, true
	}
	return zk, zv, false
}
