package btree_test

import (
	"encoding/binary"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/relarchive/relarchive/archive"
	"github.com/relarchive/relarchive/btree"
	"github.com/relarchive/relarchive/relptr"
	"github.com/relarchive/relarchive/validate"
)

func stringCompare(a, b string) int { return strings.Compare(a, b) }

// stringKeyCodec is a small fixed-width codec used only by these tests,
// padding/truncating to a fixed width so keys stay a constant archived
// size (real string keys would use archive.StringCodec's RelPtr
// indirection instead).
type fixedStringCodec struct{ width int }

func (c fixedStringCodec) Size() int  { return c.width }
func (c fixedStringCodec) Align() int { return 1 }
func (c fixedStringCodec) Encode(dst []byte, _ binary.ByteOrder, v string) {
	copy(dst, v)
	for i := len(v); i < c.width; i++ {
		dst[i] = 0
	}
}
func (c fixedStringCodec) Decode(src []byte, _ binary.ByteOrder) string {
	n := 0
	for n < len(src) && src[n] != 0 {
		n++
	}
	return string(src[:n])
}

func buildMap(t *testing.T, fanout int, pairs map[string]string) (*btree.Map[string, string], []byte, int64, bool) {
	t.Helper()
	keyCodec := fixedStringCodec{width: 16}
	valCodec := fixedStringCodec{width: 16}
	m := btree.NewMap[string, string](fanout, keyCodec, valCodec, relptr.Width32, stringCompare)

	entries := make([]btree.Entry[string, string], 0, len(pairs))
	for k, v := range pairs {
		entries = append(entries, btree.Entry[string, string]{Key: k, Value: v})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })

	ser := archive.NewSerializer(archive.DefaultConfig(), 256)
	rootPos, isEmpty, err := m.BuildSorted(ser, entries)
	require.NoError(t, err)
	buf, err := ser.Finish()
	require.NoError(t, err)
	return m, buf, rootPos, isEmpty
}

func TestSmallMapGet(t *testing.T) {
	pairs := map[string]string{"bar": "1", "bat": "2", "baz": "3", "foo": "4"}
	m, buf, rootPos, isEmpty := buildMap(t, 5, pairs)
	require.False(t, isEmpty)

	for k, v := range pairs {
		got, ok := m.Get(buf, rootPos, isEmpty, k)
		require.True(t, ok, "key %q should be found", k)
		require.Equal(t, v, got)
	}
	_, ok := m.Get(buf, rootPos, isEmpty, "missing")
	require.False(t, ok)
}

func TestSmallMapOrderedIteration(t *testing.T) {
	pairs := map[string]string{"bar": "1", "bat": "2", "baz": "3", "foo": "4"}
	m, buf, rootPos, isEmpty := buildMap(t, 5, pairs)

	it := m.Iterate(buf, rootPos, isEmpty)
	var keys []string
	for {
		k, _, ok := it.Next()
		if !ok {
			break
		}
		keys = append(keys, k)
	}
	require.Equal(t, []string{"bar", "bat", "baz", "foo"}, keys)
}

func TestRangeOverChars(t *testing.T) {
	pairs := map[string]string{}
	for c := 'a'; c <= 'y'; c++ {
		pairs[string(c)] = string(c)
	}
	m, buf, rootPos, isEmpty := buildMap(t, 5, pairs)

	got := m.Range(buf, rootPos, isEmpty, "d", "w")
	require.Len(t, got, int('w'-'d'))
	for i, e := range got {
		require.Equal(t, string(rune('d'+i)), e.Key)
	}
}

func TestLargeMap(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping 100k-entry build in short mode")
	}
	const n = 100_000
	keyCodec := archive.Uint32Codec()
	valCodec := archive.Uint32Codec()
	compare := func(a, b uint32) int {
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		default:
			return 0
		}
	}
	m := btree.NewMap[uint32, uint32](5, keyCodec, valCodec, relptr.Width32, compare)

	entries := make([]btree.Entry[uint32, uint32], n)
	for i := 0; i < n; i++ {
		entries[i] = btree.Entry[uint32, uint32]{Key: uint32(i), Value: uint32(i * 2)}
	}

	ser := archive.NewSerializer(archive.DefaultConfig(), n*16)
	rootPos, isEmpty, err := m.BuildSorted(ser, entries)
	require.NoError(t, err)
	buf, err := ser.Finish()
	require.NoError(t, err)
	require.False(t, isEmpty)

	for _, i := range []int{0, 1, 500, 42000, n - 1} {
		v, ok := m.Get(buf, rootPos, isEmpty, uint32(i))
		require.True(t, ok)
		require.Equal(t, uint32(i*2), v)
	}
	_, ok := m.Get(buf, rootPos, isEmpty, uint32(n+1))
	require.False(t, ok)

	count := 0
	it := m.Iterate(buf, rootPos, isEmpty)
	var last int64 = -1
	for {
		k, _, ok := it.Next()
		if !ok {
			break
		}
		require.Greater(t, int64(k), last)
		last = int64(k)
		count++
	}
	require.Equal(t, n, count)
}

func TestIteratorLengthMismatch(t *testing.T) {
	keyCodec := archive.Uint32Codec()
	valCodec := archive.Uint32Codec()
	compare := func(a, b uint32) int { return int(a) - int(b) }
	m := btree.NewMap[uint32, uint32](5, keyCodec, valCodec, relptr.Width32, compare)

	ser := archive.NewSerializer(archive.DefaultConfig(), 64)
	i := uint32(0)
	_, _, err := m.BuildFromIter(ser, 5, func() (btree.Entry[uint32, uint32], bool) {
		if i >= 3 {
			return btree.Entry[uint32, uint32]{}, false
		}
		e := btree.Entry[uint32, uint32]{Key: i, Value: i}
		i++
		return e, true
	})
	require.ErrorIs(t, err, btree.ErrIteratorLengthMismatch)
}

func TestVerifyAcceptsWellFormedTree(t *testing.T) {
	pairs := map[string]string{"bar": "1", "bat": "2", "baz": "3", "foo": "4"}
	m, buf, rootPos, isEmpty := buildMap(t, 5, pairs)

	ctx := validate.NewContext(buf, binary.LittleEndian)
	require.NoError(t, m.Verify(ctx, buf, rootPos, isEmpty))
}

// TestVerifyAcceptsMultiLevelTree exercises Verify against a tree taller
// than a single leaf, where unused lesser/greater child slots must be
// written as relptr's invalid sentinel rather than left zero -- a zero
// delta decodes as a pointer back into the node's own bytes, which
// Verify's cycle/bounds checks reject.
func TestVerifyAcceptsMultiLevelTree(t *testing.T) {
	pairs := map[string]string{}
	for c := 'a'; c <= 'y'; c++ {
		pairs[string(c)] = string(c)
	}
	m, buf, rootPos, isEmpty := buildMap(t, 5, pairs)
	require.False(t, isEmpty)

	ctx := validate.NewContext(buf, binary.LittleEndian)
	require.NoError(t, m.Verify(ctx, buf, rootPos, isEmpty))

	for k, v := range pairs {
		got, ok := m.Get(buf, rootPos, isEmpty, k)
		require.True(t, ok, "key %q should be found", k)
		require.Equal(t, v, got)
	}
}
