package btree

import "github.com/relarchive/relarchive/validate"

// Verify walks the tree rooted at rootPos (as recorded by a Root) using
// ctx, checking every node pointer for bounds/alignment/cycle safety
// before trusting its contents. Ported from the check_node_rel_ptr /
// check_leaf_node / check_inner_node recursion in
// original_source/rkyv/src/collections/btree/map/mod.rs's verify
// submodule: each node is validated inside ctx.InSubtree so a crafted
// pointer cannot re-enter a node that is still being checked, and every
// leaf's declared len is checked against the fanout.
func (m *Map[K, V]) Verify(ctx *validate.Context, buf []byte, rootPos int64, isEmpty bool) error {
	if isEmpty {
		return nil
	}
	return m.verifyNode(ctx, buf, rootPos)
}

func (m *Map[K, V]) verifyNode(ctx *validate.Context, buf []byte, pos int64) error {
	if pos < 0 || int(pos) >= len(buf) {
		return validate.ErrOutOfBounds
	}
	kind := NodeKind(buf[pos])

	switch kind {
	case KindLeaf:
		size := int64(m.lay.leafSize)
		return ctx.InSubtree(pos, pos+size, "btree.leaf", func() error {
			n := m.leafLen(buf, pos)
			return ctx.CheckLength(pos+int64(m.lay.leafLenOff), uint64(n), uint64(m.e))
		})
	case KindInner:
		size := int64(m.lay.innerSize)
		return ctx.InSubtree(pos, pos+size, "btree.inner", func() error {
			for i := 0; i < m.e; i++ {
				target, isNil, err := ctx.CheckPtr(pos+int64(m.lay.lesserOff(i)), m.ptrWidth, m.lay.align(), int64(m.lay.leafSize))
				if err != nil {
					return err
				}
				if isNil {
					continue
				}
				if err := m.verifyNode(ctx, buf, target); err != nil {
					return err
				}
			}
			target, isNil, err := ctx.CheckPtr(pos+int64(m.lay.innerGreaterOff), m.ptrWidth, m.lay.align(), int64(m.lay.leafSize))
			if err != nil {
				return err
			}
			if isNil {
				return nil
			}
			return m.verifyNode(ctx, buf, target)
		})
	default:
		return validate.ErrTypeMismatch
	}
}
