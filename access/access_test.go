package access_test

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/relarchive/relarchive/access"
	"github.com/relarchive/relarchive/archive"
	"github.com/relarchive/relarchive/btree"
	"github.com/relarchive/relarchive/relptr"
)

type u32Codec struct{}

func (u32Codec) Size() int  { return 4 }
func (u32Codec) Align() int { return 4 }
func (u32Codec) Encode(dst []byte, order binary.ByteOrder, v uint32) { order.PutUint32(dst, v) }
func (u32Codec) Decode(src []byte, order binary.ByteOrder) uint32    { return order.Uint32(src) }

func compareU32(a, b uint32) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func TestUncheckedAndCheckedBTreeAgree(t *testing.T) {
	cfg := archive.DefaultConfig()
	m := btree.NewMap[uint32, uint32](btree.DefaultFanout, u32Codec{}, u32Codec{}, relptr.Width32, compareU32)

	entries := make([]btree.Entry[uint32, uint32], 50)
	for i := range entries {
		entries[i] = btree.Entry[uint32, uint32]{Key: uint32(i), Value: uint32(i * 10)}
	}

	ser := archive.NewSerializer(cfg, 512)
	rootPos, empty, err := m.BuildSorted(ser, entries)
	require.NoError(t, err)
	require.False(t, empty)

	fieldOffset, err := ser.WriteAligned(make([]byte, m.RootSize()), 8)
	require.NoError(t, err)
	buf, err := ser.Finish()
	require.NoError(t, err)
	m.WriteRoot(buf, fieldOffset, rootPos, false, len(entries))

	arc := access.OpenBytes(buf, cfg)
	defer arc.Close()

	view := access.OpenBTree(arc, m, fieldOffset)
	v, ok := view.Get(25)
	require.True(t, ok)
	require.Equal(t, uint32(250), v)

	checked, err := access.CheckedBTree(buf, cfg, m, fieldOffset)
	require.NoError(t, err)
	v2, ok := checked.Get(25)
	require.True(t, ok)
	require.Equal(t, v, v2)

	_, ok = checked.Get(999)
	require.False(t, ok)
}
