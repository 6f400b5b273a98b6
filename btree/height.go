// Package btree implements an archived, ordered, fixed-fanout B-tree map
// whose on-disk layout is read directly by offset arithmetic rather than
// parsed -- the Go reading of rkyv's ArchivedBTreeMap.
//
// Ported from original_source/rkyv/src/collections/btree/map/mod.rs: the
// height formula, last-level entry count, and the single forward-pass
// builder that writes children before parents are all taken from that
// file's algorithm, adapted from Rust's MaybeUninit-backed fixed arrays
// (sized by a const generic E) to Go slices sized by a runtime E field,
// per the Design Note in this module's serialization spec permitting a
// "select by a runtime field" strategy where Go has no const generics.
package btree

// nodesInLevel returns the number of nodes at level i of a full E-ary
// search tree (the number of children per internal node is E+1): level 0
// has 1 node (the root), level i has (E+1)^i nodes.
func nodesInLevel(e, i int) int {
	n := 1
	for j := 0; j < i; j++ {
		n *= e + 1
	}
	return n
}

// entriesInFullTree returns the total entry count of a completely full
// tree of the given height (height counts leaf level as 1): a full tree
// of height h has nodesInLevel(e, h) - 1 entries, since each of the
// (e+1)^h - 1 non-root... the closed form used directly here matches the
// original's entries_in_full_tree: sum_{i=0}^{h-1} e * (e+1)^i, which
// telescopes to nodesInLevel(e, h) - 1.
func entriesInFullTree(e, h int) int {
	return nodesInLevel(e, h) - 1
}

// heightForLen returns the minimum tree height that can hold n entries
// with fanout e, i.e. 1 + floor(log_{e+1}(n)). n must be > 0; callers must
// special-case n == 0 themselves, since log is undefined there and the
// empty map is represented with no root node at all rather than a
// height-0 or height-1 tree. This mirrors the Open Question noted in this
// module's serialization spec: the original source's two equivalent
// spellings of this formula only disagree at n == 0, and a conformant
// builder must never call either spelling for the empty case.
func heightForLen(e, n int) int {
	if n <= 0 {
		panic("btree: heightForLen called with n <= 0")
	}
	height := 1
	for entriesInFullTree(e, height) < n {
		height++
	}
	return height
}

// lastLevelEntries returns how many entries belong to the last (partially
// filled) level of a tree of the given height holding n entries: the
// total minus however many a completely full tree one level shorter would
// already account for.
func lastLevelEntries(e, height, n int) int {
	return n - entriesInFullTree(e, height-1)
}
