package btree

import (
	"sort"

	"github.com/relarchive/relarchive/archive"
	"github.com/relarchive/relarchive/relptr"
)

// DefaultFanout is the fanout E used when a caller doesn't need to tune
// it, matching the teacher-adjacent default used throughout this
// module's examples and tests.
const DefaultFanout = 5

// Entry is one key-value pair to build into a Map. Callers must supply
// entries in strictly ascending key order; BuildSorted and BuildFromIter
// do not sort.
type Entry[K any, V any] struct {
	Key   K
	Value V
}

// Map describes the archived layout for a B-tree map over K, V with a
// given fanout, and provides both the forward-pass builder and the
// read-side lookup/iteration operations against an already-serialized
// buffer.
type Map[K any, V any] struct {
	e        int
	keyCodec archive.Codec[K]
	valCodec archive.Codec[V]
	ptrWidth relptr.Width
	compare  func(a, b K) int
	lay      layout
}

// NewMap returns a Map with fanout e (must be >= 2) over the given key and
// value codecs, using ptrWidth for its internal child pointers and compare
// to order keys (negative if a < b, zero if equal, positive if a > b) --
// the Go stand-in for K: Ord, since Go generics carry no operator
// constraints.
func NewMap[K any, V any](e int, keyCodec archive.Codec[K], valCodec archive.Codec[V], ptrWidth relptr.Width, compare func(a, b K) int) *Map[K, V] {
	if e < 2 {
		panic("btree: fanout must be >= 2")
	}
	lay := newLayout(e, keyCodec.Align(), keyCodec.Size(), valCodec.Align(), valCodec.Size(), ptrWidth)
	return &Map[K, V]{e: e, keyCodec: keyCodec, valCodec: valCodec, ptrWidth: ptrWidth, compare: compare, lay: lay}
}

// Fanout returns E.
func (m *Map[K, V]) Fanout() int { return m.e }

func (m *Map[K, V]) kindAt(buf []byte, pos int64) NodeKind {
	return NodeKind(buf[pos])
}

func (m *Map[K, V]) keyAt(buf []byte, pos int64, i int) K {
	off := int(pos) + m.lay.keyOff(i)
	return m.keyCodec.Decode(buf[off:off+m.keyCodec.Size()], defaultOrder)
}

func (m *Map[K, V]) valAt(buf []byte, pos int64, i int) V {
	off := int(pos) + m.lay.valOff(i)
	return m.valCodec.Decode(buf[off:off+m.valCodec.Size()], defaultOrder)
}

func (m *Map[K, V]) leafLen(buf []byte, pos int64) int {
	off := int(pos) + m.lay.leafLenOff
	return int(defaultOrder.Uint64(buf[off : off+8]))
}

func (m *Map[K, V]) lesserPtr(buf []byte, pos int64, i int) (target int64, invalid bool) {
	fieldOff := pos + int64(m.lay.lesserOff(i))
	return relptr.Decode(buf, fieldOff, m.ptrWidth, defaultOrder)
}

func (m *Map[K, V]) greaterPtr(buf []byte, pos int64) (target int64, invalid bool) {
	fieldOff := pos + int64(m.lay.innerGreaterOff)
	return relptr.Decode(buf, fieldOff, m.ptrWidth, defaultOrder)
}

// BuildSorted serializes the given entries (which must already be sorted
// strictly ascending by key) into ser and returns the root node position
// and whether the map is empty. Non-goal: BuildSorted does not itself
// validate ascending order (the original source's equivalent,
// serialize_from_ordered_iter, trusts its exact-size-iterator contract the same way);
// callers constructing a Map from arbitrary data should sort first.
func (m *Map[K, V]) BuildSorted(ser *archive.Serializer, entries []Entry[K, V]) (rootPos int64, isEmpty bool, err error) {
	n := len(entries)
	if n == 0 {
		return 0, true, nil
	}
	i := 0
	next := func() (Entry[K, V], bool) {
		if i >= len(entries) {
			return Entry[K, V]{}, false
		}
		e := entries[i]
		i++
		return e, true
	}
	pos, err := m.build(ser, n, next)
	if err != nil {
		return 0, false, err
	}
	return pos, false, nil
}

// BuildFromIter behaves like BuildSorted but pulls entries from next
// (which must yield them in ascending key order) instead of a slice,
// stopping at the first call returning ok=false. If the number of
// entries actually yielded differs from declaredLen, it returns
// ErrIteratorLengthMismatch without completing the build -- mirroring the
// edge case in this module's serialization spec where a misbehaving
// exact-size iterator causes serialization to fail outright.
func (m *Map[K, V]) BuildFromIter(ser *archive.Serializer, declaredLen int, next func() (Entry[K, V], bool)) (rootPos int64, isEmpty bool, err error) {
	if declaredLen == 0 {
		if _, ok := next(); ok {
			return 0, false, ErrIteratorLengthMismatch
		}
		return 0, true, nil
	}
	yielded := 0
	wrapped := func() (Entry[K, V], bool) {
		e, ok := next()
		if ok {
			yielded++
		}
		return e, ok
	}
	pos, err := m.build(ser, declaredLen, wrapped)
	if err != nil {
		return 0, false, err
	}
	if yielded != declaredLen {
		return 0, false, ErrIteratorLengthMismatch
	}
	if _, ok := next(); ok {
		return 0, false, ErrIteratorLengthMismatch
	}
	return pos, false, nil
}

// childRef is a pending forward reference to an already-closed (or not
// yet existing) child node: either the position a subtree was just
// closed at, or "no subtree here", which closeInner writes as the
// relptr invalid sentinel. Ported from the Option<usize> child_node_pos
// slots in original_source/rkyv/src/collections/btree/map/mod.rs's
// serialize_from_ordered_iter.
type childRef struct {
	pos   int64
	valid bool
}

// pendingInner accumulates the keys, values, and lesser child references
// of one not-yet-closed inner node at some level of the tree, mirroring
// the InlineVec<(K, V, Option<usize>)> entries the original keeps per
// open level while it has not yet reached its capacity of e.
type pendingInner[K any, V any] struct {
	keys   []K
	values []V
	lesser []childRef
}

func (p *pendingInner[K, V]) len() int { return len(p.keys) }

// build lays out the whole tree over n entries pulled from next in a
// single forward pass, following
// original_source/rkyv/src/collections/btree/map/mod.rs's
// serialize_from_ordered_iter exactly: entries accumulate into a leaf
// until either the leaf is full or the last-level boundary (ll_entries)
// is reached, at which point the leaf is closed and its position is
// threaded up through a stack of open inner-node builders (one per
// non-leaf level). Each inner builder consumes entries directly from
// next for its own key/value slots, pairing each with whatever child was
// most recently closed below it; once an inner builder reaches capacity
// e it is itself closed and threaded further up the stack. Because every
// non-leaf level's total entry count is exactly the capacity of a
// completely full (height-1)-tall tree (by the choice of height), this
// process always leaves every inner node fully keyed -- the only
// partially filled nodes anywhere in the tree are leaves.
func (m *Map[K, V]) build(ser *archive.Serializer, n int, next func() (Entry[K, V], bool)) (int64, error) {
	height := heightForLen(m.e, n)
	if height == 1 {
		entries := make([]Entry[K, V], 0, n)
		for len(entries) < n {
			e, ok := next()
			if !ok {
				break
			}
			entries = append(entries, e)
		}
		return m.closeLeaf(ser, entries)
	}
	llEntries := lastLevelEntries(m.e, height, n)

	openInners := make([]*pendingInner[K, V], height-1)
	for i := range openInners {
		openInners[i] = &pendingInner[K, V]{}
	}

	var openLeaf []Entry[K, V]
	leafEntries := 0
	var pending childRef

	closeLeaf := func() error {
		pos, err := m.closeLeaf(ser, openLeaf)
		if err != nil {
			return err
		}
		pending = childRef{pos: pos, valid: true}
		openLeaf = nil
		return nil
	}

	closeInnerNode := func(p *pendingInner[K, V]) error {
		pos, err := m.closeInner(ser, p.keys, p.values, p.lesser, pending)
		if err != nil {
			return err
		}
		pending = childRef{pos: pos, valid: true}
		return nil
	}

	pushKey := func(p *pendingInner[K, V], e Entry[K, V]) {
		p.keys = append(p.keys, e.Key)
		p.values = append(p.values, e.Value)
		p.lesser = append(p.lesser, pending)
		pending = childRef{}
	}

	for {
		e, ok := next()
		if !ok {
			break
		}
		openLeaf = append(openLeaf, e)
		leafEntries++

		if leafEntries != llEntries && len(openLeaf) != m.e {
			continue
		}

		if err := closeLeaf(); err != nil {
			return 0, err
		}

		if leafEntries == llEntries && len(openInners) > 0 {
			bottom := openInners[len(openInners)-1]
			openInners = openInners[:len(openInners)-1]
			for bottom.len() < m.e {
				e2, ok2 := next()
				if !ok2 {
					break
				}
				pushKey(bottom, e2)
			}
			if err := closeInnerNode(bottom); err != nil {
				return 0, err
			}
		}

		popped := 0
		for len(openInners) > 0 {
			last := openInners[len(openInners)-1]
			if last.len() == m.e {
				if err := closeInnerNode(last); err != nil {
					return 0, err
				}
				openInners = openInners[:len(openInners)-1]
				popped++
				continue
			}
			e3, ok3 := next()
			if !ok3 {
				break
			}
			pushKey(last, e3)
			for i := 0; i < popped; i++ {
				openInners = append(openInners, &pendingInner[K, V]{})
			}
			break
		}
	}

	if len(openLeaf) > 0 {
		if err := closeLeaf(); err != nil {
			return 0, err
		}
	}

	for len(openInners) > 0 {
		last := openInners[len(openInners)-1]
		openInners = openInners[:len(openInners)-1]
		if err := closeInnerNode(last); err != nil {
			return 0, err
		}
	}

	return pending.pos, nil
}

func (m *Map[K, V]) closeLeaf(ser *archive.Serializer, entries []Entry[K, V]) (int64, error) {
	if len(entries) > m.e {
		panic("btree: leaf overflow during build")
	}
	size := m.lay.leafSize
	if err := archive.AlignTo(ser.Writer, m.lay.align()); err != nil {
		return 0, err
	}
	pos := ser.Writer.Pos()
	buf := make([]byte, size)
	buf[0] = byte(KindLeaf)
	for i, e := range entries {
		m.keyCodec.Encode(buf[m.lay.keyOff(i):], defaultOrder, e.Key)
		m.valCodec.Encode(buf[m.lay.valOff(i):], defaultOrder, e.Value)
	}
	defaultOrder.PutUint64(buf[m.lay.leafLenOff:], uint64(len(entries)))
	if _, err := ser.Writer.WriteBytes(buf); err != nil {
		return 0, err
	}
	return pos, nil
}

func (m *Map[K, V]) closeInner(ser *archive.Serializer, keys []K, values []V, lesser []childRef, greater childRef) (int64, error) {
	if len(keys) > m.e {
		panic("btree: inner node overflow during build")
	}
	size := m.lay.innerSize
	if err := archive.AlignTo(ser.Writer, m.lay.align()); err != nil {
		return 0, err
	}
	pos := ser.Writer.Pos()
	buf := make([]byte, size)
	buf[0] = byte(KindInner)
	for i := range keys {
		m.keyCodec.Encode(buf[m.lay.keyOff(i):], defaultOrder, keys[i])
		m.valCodec.Encode(buf[m.lay.valOff(i):], defaultOrder, values[i])
	}
	for i, child := range lesser {
		fieldOff := int64(m.lay.lesserOff(i))
		if child.valid {
			relptr.Encode(buf, fieldOff, child.pos-pos, m.ptrWidth, defaultOrder)
		} else {
			relptr.EncodeInvalid(buf, fieldOff, m.ptrWidth, defaultOrder)
		}
	}
	greaterOff := int64(m.lay.innerGreaterOff)
	if greater.valid {
		relptr.Encode(buf, greaterOff, greater.pos-pos, m.ptrWidth, defaultOrder)
	} else {
		relptr.EncodeInvalid(buf, greaterOff, m.ptrWidth, defaultOrder)
	}
	if _, err := ser.Writer.WriteBytes(buf); err != nil {
		return 0, err
	}
	return pos, nil
}

// SortEntries sorts entries in place by key using compare, provided for
// callers that have unsorted input; BuildSorted itself never sorts.
func SortEntries[K any, V any](entries []Entry[K, V], compare func(a, b K) int) {
	sort.Slice(entries, func(i, j int) bool { return compare(entries[i].Key, entries[j].Key) < 0 })
}
