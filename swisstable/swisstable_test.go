package swisstable_test

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/relarchive/relarchive/archive"
	"github.com/relarchive/relarchive/relptr"
	"github.com/relarchive/relarchive/swisstable"
	"github.com/relarchive/relarchive/validate"
)

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

func stringEqual(a, b string) bool { return a == b }

func buildTable(t *testing.T, pairs map[string]string) (*swisstable.Table[string, string], []byte, int64, int) {
	t.Helper()
	keyCodec := fixedStringCodec{width: 16}
	valCodec := fixedStringCodec{width: 16}
	tbl, err := swisstable.NewTable[string, string](keyCodec, valCodec, stringEqual, swisstable.EncodedKeyBytes[string](keyCodec), swisstable.DefaultLoadFactor, relptr.Width32)
	require.NoError(t, err)

	entries := make([]swisstable.Entry[string, string], 0, len(pairs))
	for k, v := range pairs {
		entries = append(entries, swisstable.Entry[string, string]{Key: k, Value: v})
	}

	ser := archive.NewSerializer(archive.DefaultConfig(), 256)
	controlPos, capacity, err := tbl.Build(ser, entries)
	require.NoError(t, err)
	buf, err := ser.Finish()
	require.NoError(t, err)
	return tbl, buf, controlPos, capacity
}

func TestSmallTableGet(t *testing.T) {
	pairs := map[string]string{"Hello": "1", "world": "2", "foo": "3", "bar": "4", "baz": "5"}
	tbl, buf, controlPos, capacity := buildTable(t, pairs)

	for k, v := range pairs {
		got, ok := tbl.Get(buf, controlPos, capacity, k)
		require.True(t, ok, "key %q should be found", k)
		require.Equal(t, v, got)
	}
	_, ok := tbl.Get(buf, controlPos, capacity, "missing")
	require.False(t, ok)
}

func TestSmallTableIteration(t *testing.T) {
	pairs := map[string]string{"Hello": "1", "world": "2", "foo": "3", "bar": "4", "baz": "5"}
	tbl, buf, controlPos, capacity := buildTable(t, pairs)

	seen := map[string]string{}
	it := tbl.Iterate(buf, controlPos, capacity)
	for {
		k, v, ok := it.Next()
		if !ok {
			break
		}
		seen[k] = v
	}
	require.Equal(t, pairs, seen)
}

func TestTailMirrorCorruptionDetected(t *testing.T) {
	pairs := map[string]string{"Hello": "1", "world": "2", "foo": "3"}
	tbl, buf, controlPos, capacity := buildTable(t, pairs)

	ctx := validate.NewContext(buf, binary.LittleEndian)
	require.NoError(t, tbl.Verify(ctx, buf, controlPos, uint64(len(pairs)), uint64(capacity)))

	// Corrupt the first mirrored control byte so it disagrees with its
	// primary copy.
	buf[int(controlPos)+capacity] ^= 0x01

	ctx2 := validate.NewContext(buf, binary.LittleEndian)
	err := tbl.Verify(ctx2, buf, controlPos, uint64(len(pairs)), uint64(capacity))
	require.Error(t, err)
	require.ErrorIs(t, err, validate.ErrUnwrappedControlByte)
}

func TestInvalidLoadFactorRejected(t *testing.T) {
	keyCodec := fixedStringCodec{width: 8}
	valCodec := fixedStringCodec{width: 8}
	_, err := swisstable.NewTable[string, string](keyCodec, valCodec, stringEqual, swisstable.EncodedKeyBytes[string](keyCodec), swisstable.LoadFactor{Num: 8, Den: 8}, relptr.Width32)
	require.ErrorIs(t, err, swisstable.ErrInvalidLoadFactor)

	_, err = swisstable.NewTable[string, string](keyCodec, valCodec, stringEqual, swisstable.EncodedKeyBytes[string](keyCodec), swisstable.LoadFactor{Num: 0, Den: 8}, relptr.Width32)
	require.ErrorIs(t, err, swisstable.ErrInvalidLoadFactor)
}

func TestIteratorLengthMismatch(t *testing.T) {
	keyCodec := fixedStringCodec{width: 8}
	valCodec := fixedStringCodec{width: 8}
	tbl, err := swisstable.NewTable[string, string](keyCodec, valCodec, stringEqual, swisstable.EncodedKeyBytes[string](keyCodec), swisstable.DefaultLoadFactor, relptr.Width32)
	require.NoError(t, err)

	ser := archive.NewSerializer(archive.DefaultConfig(), 64)
	i := 0
	items := []string{"a", "b"}
	_, _, err = tbl.BuildFromIter(ser, 5, func() (swisstable.Entry[string, string], bool) {
		if i >= len(items) {
			return swisstable.Entry[string, string]{}, false
		}
		e := swisstable.Entry[string, string]{Key: items[i], Value: items[i]}
		i++
		return e, true
	})
	require.ErrorIs(t, err, swisstable.ErrIteratorLengthMismatch)
}
