package btree

// Iterator yields the entries of a Map in ascending key order using an
// explicit stack of (node position, index) frames rather than recursion,
// per this module's serialization spec's description of ordered
// traversal: for each inner node visit lesser[0], key[0], lesser[1],
// key[1], ..., lesser[E-1], key[E-1], greater, in that order, and leaves
// in index order.
type Iterator[K any, V any] struct {
	m     *Map[K, V]
	buf   []byte
	stack []iterFrame
	done  bool
}

type iterFrame struct {
	pos int64
	idx int
}

// Iterate returns an Iterator positioned at the first entry of the map
// rooted at rootPos. If isEmpty, the returned iterator yields nothing.
func (m *Map[K, V]) Iterate(buf []byte, rootPos int64, isEmpty bool) *Iterator[K, V] {
	it := &Iterator[K, V]{m: m, buf: buf, done: isEmpty}
	if !isEmpty {
		it.descendLeftmost(rootPos)
	}
	return it
}

// descendLeftmost pushes pos and every inner node along its leftmost
// child chain, stopping once a leaf is reached, so the stack's top is
// always the next node to emit from.
func (it *Iterator[K, V]) descendLeftmost(pos int64) {
	for {
		it.stack = append(it.stack, iterFrame{pos: pos, idx: 0})
		if it.m.kindAt(it.buf, pos) == KindLeaf {
			return
		}
		target, invalid := it.m.lesserPtr(it.buf, pos, 0)
		if invalid {
			return
		}
		pos = target
	}
}

// Next reports the next entry in ascending order, or ok=false once
// exhausted.
func (it *Iterator[K, V]) Next() (key K, value V, ok bool) {
	if it.done || len(it.stack) == 0 {
		it.done = true
		var zk K
		var zv V
		return zk, zv, false
	}

	top := it.stack[len(it.stack)-1]
	switch it.m.kindAt(it.buf, top.pos) {
	case KindLeaf:
		n := it.m.leafLen(it.buf, top.pos)
		key = it.m.keyAt(it.buf, top.pos, top.idx)
		value = it.m.valAt(it.buf, top.pos, top.idx)
		if top.idx+1 < n {
			it.stack[len(it.stack)-1].idx++
		} else {
			it.stack = it.stack[:len(it.stack)-1]
		}
		return key, value, true

	default: // KindInner
		key = it.m.keyAt(it.buf, top.pos, top.idx)
		value = it.m.valAt(it.buf, top.pos, top.idx)
		nextIdx := top.idx + 1
		it.stack = it.stack[:len(it.stack)-1]
		if nextIdx < it.m.e {
			it.stack = append(it.stack, iterFrame{pos: top.pos, idx: nextIdx})
			target, invalid := it.m.lesserPtr(it.buf, top.pos, nextIdx)
			if !invalid {
				it.descendLeftmost(target)
			}
		} else {
			target, invalid := it.m.greaterPtr(it.buf, top.pos)
			if !invalid {
				it.descendLeftmost(target)
			}
		}
		return key, value, true
	}
}

// Range returns every entry with key k satisfying lo <= k < hi (half-open
// on the upper bound, matching Rust's RangeBounds convention this module
// otherwise follows), per the compare function supplied to NewMap. It is
// implemented as an ordered walk from the smallest key that skips entries
// below lo and stops at the first key >= hi, so every entry below lo is
// visited once before the first in-range entry is returned; there is no
// lower-bound descent from the root.
func (m *Map[K, V]) Range(buf []byte, rootPos int64, isEmpty bool, lo, hi K) []Entry[K, V] {
	var out []Entry[K, V]
	if isEmpty {
		return out
	}
	it := m.Iterate(buf, rootPos, isEmpty)
	for {
		k, v, ok := it.Next()
		if !ok {
			break
		}
		if m.compare(k, lo) < 0 {
			continue
		}
		if m.compare(k, hi) >= 0 {
			break
		}
		out = append(out, Entry[K, V]{Key: k, Value: v})
	}
	return out
}
