package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/relarchive/relarchive/access"
	"github.com/relarchive/relarchive/archive"
)

func TestBuildThenVerifyRoundTrip(t *testing.T) {
	cfg := archive.DefaultConfig()
	pairs := map[string]string{"alpha": "1", "beta": "2", "gamma": "3"}

	buf, hdr, err := buildArchive(cfg, pairs)
	require.NoError(t, err)

	parsed, err := parseHeader(buf, cfg)
	require.NoError(t, err)
	require.Equal(t, hdr, parsed)

	m := demoMap()
	btreeView, err := access.CheckedBTree(buf, cfg, m, hdr.btreeOffset)
	require.NoError(t, err)

	for k, v := range pairs {
		got, ok := btreeView.Get(k)
		require.True(t, ok)
		require.Equal(t, v, got)
	}

	tbl, err := demoTable()
	require.NoError(t, err)
	tableView, err := access.CheckedTable(buf, cfg, tbl, hdr.tableOffset)
	require.NoError(t, err)
	require.Equal(t, uint64(len(pairs)), tableView.Len())

	seen := map[string]string{}
	it := btreeView.Iterate()
	for {
		k, v, ok := it.Next()
		if !ok {
			break
		}
		seen[k] = v
	}
	require.Equal(t, pairs, seen)
}

func TestParseHeaderRejectsBadMagic(t *testing.T) {
	cfg := archive.DefaultConfig()
	buf := make([]byte, 64)
	_, err := parseHeader(buf, cfg)
	require.ErrorIs(t, err, errMagicMismatch)
}

func TestBuildArchiveHandlesEmptyInput(t *testing.T) {
	cfg := archive.DefaultConfig()
	buf, hdr, err := buildArchive(cfg, map[string]string{})
	require.NoError(t, err)

	btreeView, err := access.CheckedBTree(buf, cfg, demoMap(), hdr.btreeOffset)
	require.NoError(t, err)
	_, ok := btreeView.Get("anything")
	require.False(t, ok)

	tbl, err := demoTable()
	require.NoError(t, err)
	tableView, err := access.CheckedTable(buf, cfg, tbl, hdr.tableOffset)
	require.NoError(t, err)
	require.Equal(t, uint64(0), tableView.Len())
}
