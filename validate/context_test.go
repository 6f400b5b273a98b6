package validate_test

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/relarchive/relarchive/relptr"
	"github.com/relarchive/relarchive/validate"
)

func TestCheckPtrOutOfBounds(t *testing.T) {
	buf := make([]byte, 16)
	relptr.Encode(buf, 0, 1000, relptr.Width32, binary.LittleEndian)
	ctx := validate.NewContext(buf, binary.LittleEndian)
	_, _, err := ctx.CheckPtr(0, relptr.Width32, 4, 4)
	require.Error(t, err)
	require.True(t, errors.Is(err, validate.ErrOutOfBounds))
}

func TestCheckPtrUnaligned(t *testing.T) {
	buf := make([]byte, 32)
	relptr.Encode(buf, 0, 5, relptr.Width32, binary.LittleEndian)
	ctx := validate.NewContext(buf, binary.LittleEndian)
	_, _, err := ctx.CheckPtr(0, relptr.Width32, 4, 4)
	require.Error(t, err)
	require.True(t, errors.Is(err, validate.ErrUnaligned))
}

func TestCheckPtrNilSentinel(t *testing.T) {
	buf := make([]byte, 16)
	relptr.EncodeInvalid(buf, 0, relptr.Width32, binary.LittleEndian)
	ctx := validate.NewContext(buf, binary.LittleEndian)
	_, isNil, err := ctx.CheckPtr(0, relptr.Width32, 4, 4)
	require.NoError(t, err)
	require.True(t, isNil)
}

func TestInSubtreeRejectsCycle(t *testing.T) {
	buf := make([]byte, 64)
	ctx := validate.NewContext(buf, binary.LittleEndian)
	err := ctx.InSubtree(0, 32, "node", func() error {
		// A pointer inside this subtree claims to point back at offset 4,
		// which is inside the subtree that is still open -- a cycle.
		return ctx.InSubtree(4, 16, "node", func() error { return nil })
	})
	require.Error(t, err)
	require.True(t, errors.Is(err, validate.ErrCycle))
}

func TestInSubtreeAllowsSiblings(t *testing.T) {
	buf := make([]byte, 64)
	ctx := validate.NewContext(buf, binary.LittleEndian)
	err := ctx.InSubtree(0, 64, "root", func() error {
		if err := ctx.InSubtree(0, 16, "left", func() error { return nil }); err != nil {
			return err
		}
		return ctx.InSubtree(16, 32, "right", func() error { return nil })
	})
	require.NoError(t, err)
}

func TestClaimRegionOverlapTypeMismatch(t *testing.T) {
	ctx := validate.NewContext(make([]byte, 64), binary.LittleEndian)
	require.NoError(t, ctx.ClaimRegion(0, 16, "string"))
	err := ctx.ClaimRegion(8, 24, "node")
	require.Error(t, err)
	require.True(t, errors.Is(err, validate.ErrTypeMismatch))
}

func TestClaimRegionSameTypeDedup(t *testing.T) {
	ctx := validate.NewContext(make([]byte, 64), binary.LittleEndian)
	require.NoError(t, ctx.ClaimRegion(0, 16, "string"))
	require.NoError(t, ctx.ClaimRegion(0, 16, "string"))
}
