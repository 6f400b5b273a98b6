package access

import (
	"github.com/relarchive/relarchive/archive"
	"github.com/relarchive/relarchive/btree"
	"github.com/relarchive/relarchive/swisstable"
	"github.com/relarchive/relarchive/validate"
)

// CheckedBTree opens a btree.Root at fieldOffset and runs a full
// validate.Context pass over the resulting tree before returning a view
// over it. Every subsequent Get against the returned BTree is then as
// safe as a checked Decode of any other typed value -- a corrupt or
// adversarial buffer was rejected before the caller ever reached it, the
// property the original project calls "access" as opposed to
// "access_unchecked".
func CheckedBTree[K any, V any](buf []byte, cfg archive.Config, m *btree.Map[K, V], fieldOffset int64) (*BTree[K, V], error) {
	root, empty, _ := m.ReadRoot(buf, fieldOffset)
	ctx := validate.NewContext(buf, cfg.Order)
	if err := m.Verify(ctx, buf, root, empty); err != nil {
		return nil, err
	}
	return &BTree[K, V]{m: m, buf: buf, root: root, empty: empty}, nil
}

// CheckedTable opens a swisstable.Root at fieldOffset and runs a full
// validate.Context pass (including the tail-mirror check) over the
// resulting table before returning a view over it.
func CheckedTable[K any, V any](buf []byte, cfg archive.Config, t *swisstable.Table[K, V], fieldOffset int64) (*Table[K, V], error) {
	control, length, capacity := t.ReadRoot(buf, fieldOffset)
	ctx := validate.NewContext(buf, cfg.Order)
	if err := t.Verify(ctx, buf, control, length, capacity); err != nil {
		return nil, err
	}
	return &Table[K, V]{t: t, buf: buf, control: control, length: length, capacity: capacity}, nil
}
