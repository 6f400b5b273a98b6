// Package access provides the two entry points for reading an archive
// buffer once it has been built: the unchecked views (OpenBTree,
// OpenTable), which trust the buffer and read it directly at whatever
// speed a relative-pointer dereference allows, and the Checked family
// (CheckedBTree, CheckedTable), which runs a validate.Context pass
// over a container before any lookup is permitted against it. This
// mirrors the teacher's own split between a reader that trusts an
// mmap'd hive outright (internal/reader.Open, which validates only the
// HBIN framing, never individual cell contents, before returning) and
// the registry's separate verify pass (hive/verify) that a caller opts
// into when the source of a hive is untrusted.
package access

import (
	"encoding/binary"

	"github.com/relarchive/relarchive/archive"
	"github.com/relarchive/relarchive/archive/mmap"
)

// Archive is an opened archive buffer together with the Config it was
// built under. It has no notion of which containers live inside it;
// callers read specific containers out of it via the package-level
// OpenBTree/OpenTable functions, which take an Archive and a field offset
// within it, or via CheckedBTree/CheckedTable, which take the buffer
// (Bytes) and its Config together with a field offset.
type Archive struct {
	buf     []byte
	cfg     archive.Config
	release func() error
	closed  bool
}

// Open maps the archive file at path read-only and returns an Archive
// over it. The returned Archive must be Closed when no longer needed.
func Open(path string, cfg archive.Config) (*Archive, error) {
	data, release, err := mmap.Load(path)
	if err != nil {
		return nil, err
	}
	return &Archive{buf: data, cfg: cfg, release: release}, nil
}

// OpenBytes wraps an already-in-memory buffer (e.g. one just produced by
// archive.Serializer.Finish) as an Archive with no associated file
// resource to release.
func OpenBytes(buf []byte, cfg archive.Config) *Archive {
	return &Archive{buf: buf, cfg: cfg, release: nil}
}

// Bytes returns the archive's underlying buffer. The returned slice
// aliases Archive's storage and must not be retained past Close.
func (a *Archive) Bytes() []byte { return a.buf }

// Config returns the Config this archive was opened with.
func (a *Archive) Config() archive.Config { return a.cfg }

// Order returns the byte order fields in this archive are encoded with,
// a convenience for callers building a validate.Context.
func (a *Archive) Order() binary.ByteOrder { return a.cfg.Order }

// Close releases the archive's backing resource (the mmap, if Open was
// used). Calling Close more than once is a no-op, and calling it on an
// Archive built with OpenBytes is always a no-op.
func (a *Archive) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true
	if a.release != nil {
		return a.release()
	}
	return nil
}
