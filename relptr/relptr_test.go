package relptr_test

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/relarchive/relarchive/relptr"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for _, w := range []relptr.Width{relptr.Width16, relptr.Width32, relptr.Width64} {
		buf := make([]byte, 64)
		fieldOff := int64(10)
		targetOff := int64(42)
		relptr.Encode(buf, fieldOff, targetOff, w, binary.LittleEndian)
		got, invalid := relptr.Decode(buf, fieldOff, w, binary.LittleEndian)
		require.False(t, invalid)
		require.Equal(t, targetOff, got)
	}
}

func TestEncodeDecodeNegativeDelta(t *testing.T) {
	buf := make([]byte, 64)
	fieldOff := int64(40)
	targetOff := int64(8)
	relptr.Encode(buf, fieldOff, targetOff, relptr.Width32, binary.LittleEndian)
	got, invalid := relptr.Decode(buf, fieldOff, relptr.Width32, binary.LittleEndian)
	require.False(t, invalid)
	require.Equal(t, targetOff, got)
}

func TestInvalidSentinel(t *testing.T) {
	buf := make([]byte, 64)
	relptr.EncodeInvalid(buf, 16, relptr.Width16, binary.LittleEndian)
	_, invalid := relptr.Decode(buf, 16, relptr.Width16, binary.LittleEndian)
	require.True(t, invalid)
}

func TestEncodeOutOfRangePanics(t *testing.T) {
	buf := make([]byte, 1<<17)
	require.Panics(t, func() {
		relptr.Encode(buf, 0, 1<<16+100, relptr.Width16, binary.LittleEndian)
	})
}
