package main

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"github.com/relarchive/relarchive/archive"
	"github.com/relarchive/relarchive/btree"
	"github.com/relarchive/relarchive/relptr"
	"github.com/relarchive/relarchive/swisstable"
)

// A .zarc file holds one demo archive: the same key/value pairs laid out
// twice, once as an ArchivedBTreeMap (for ordered iteration) and once as
// an ArchivedSwissTable (for O(1) lookup), so dump/verify can exercise
// both container kinds from a single build. Keys and values are fixed-
// width, null-padded strings -- a CLI demo convenience, not a limitation
// of the containers themselves, which accept any archive.Codec.
const (
	magic        = "ZARC"
	fileVersion  = uint32(1)
	demoKeyWidth = 64
	demoValWidth = 256
)

var errMagicMismatch = errors.New("zarchivectl: not a zarc file (bad magic)")
var errUnsupportedVersion = errors.New("zarchivectl: unsupported zarc file version")

func demoCodecs() (archive.Codec[string], archive.Codec[string]) {
	return fixedStringCodec{width: demoKeyWidth}, fixedStringCodec{width: demoValWidth}
}

func demoMap() *btree.Map[string, string] {
	keyCodec, valCodec := demoCodecs()
	return btree.NewMap[string, string](btree.DefaultFanout, keyCodec, valCodec, relptr.Width32, strings.Compare)
}

func demoTable() (*swisstable.Table[string, string], error) {
	keyCodec, valCodec := demoCodecs()
	return swisstable.NewTable[string, string](keyCodec, valCodec, func(a, b string) bool { return a == b }, swisstable.EncodedKeyBytes[string](keyCodec), swisstable.DefaultLoadFactor, relptr.Width32)
}

// fixedStringCodec truncates/pads a string to a fixed byte width so it
// satisfies archive.Codec, the same approach the btree/swisstable test
// suites use for string keys.
type fixedStringCodec struct{ width int }

func (c fixedStringCodec) Size() int  { return c.width }
func (c fixedStringCodec) Align() int { return 1 }

func (c fixedStringCodec) Encode(dst []byte, _ binary.ByteOrder, v string) {
	n := copy(dst, v)
	for i := n; i < c.width; i++ {
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

// header is the fixed-size record at the start of every .zarc file:
// a magic/version pair followed by a btree.Root and a swisstable.Root,
// mirroring the teacher's REGF header-then-HBINs shape at a much smaller
// scale -- a fixed metadata block in front of the variable-length body.
type header struct {
	btreeOffset int64
	tableOffset int64
}

func headerSize(ptrWidth relptr.Width) int {
	return 8 + (ptrWidth.Size() + 8) + (ptrWidth.Size() + 16)
}

func writeHeaderMagic(buf []byte) {
	copy(buf[0:4], magic)
	binary.LittleEndian.PutUint32(buf[4:8], fileVersion)
}

func readHeaderMagic(buf []byte) error {
	if len(buf) < 8 || string(buf[0:4]) != magic {
		return errMagicMismatch
	}
	if binary.LittleEndian.Uint32(buf[4:8]) != fileVersion {
		return errUnsupportedVersion
	}
	return nil
}

// buildArchive serializes pairs into a btree.Map and a swisstable.Table
// and returns the finished buffer along with the header describing where
// each container's root lives within it.
func buildArchive(cfg archive.Config, pairs map[string]string) ([]byte, header, error) {
	m := demoMap()
	t, err := demoTable()
	if err != nil {
		return nil, header{}, err
	}

	entries := make([]btree.Entry[string, string], 0, len(pairs))
	tableEntries := make([]swisstable.Entry[string, string], 0, len(pairs))
	for k, v := range pairs {
		entries = append(entries, btree.Entry[string, string]{Key: k, Value: v})
		tableEntries = append(tableEntries, swisstable.Entry[string, string]{Key: k, Value: v})
	}
	btree.SortEntries(entries, strings.Compare)

	ser := archive.NewSerializer(cfg, 1024+len(pairs)*(demoKeyWidth+demoValWidth))

	hdrSize := headerSize(cfg.PointerSize)
	if err := ser.Writer.Pad(hdrSize); err != nil {
		return nil, header{}, err
	}

	rootPos, isEmpty, err := m.BuildSorted(ser, entries)
	if err != nil {
		return nil, header{}, fmt.Errorf("build btree: %w", err)
	}

	controlPos, capacity, err := t.Build(ser, tableEntries)
	if err != nil {
		return nil, header{}, fmt.Errorf("build swisstable: %w", err)
	}

	buf, err := ser.Finish()
	if err != nil {
		return nil, header{}, err
	}

	writeHeaderMagic(buf)
	btreeOffset := int64(8)
	tableOffset := btreeOffset + int64(cfg.PointerSize.Size()+8)
	m.WriteRoot(buf, btreeOffset, rootPos, isEmpty, len(entries))
	t.WriteRoot(buf, tableOffset, controlPos, len(tableEntries), capacity)

	return buf, header{btreeOffset: btreeOffset, tableOffset: tableOffset}, nil
}

func parseHeader(buf []byte, cfg archive.Config) (header, error) {
	if err := readHeaderMagic(buf); err != nil {
		return header{}, err
	}
	btreeOffset := int64(8)
	tableOffset := btreeOffset + int64(cfg.PointerSize.Size()+8)
	need := tableOffset + int64(cfg.PointerSize.Size()+16)
	if int64(len(buf)) < need {
		return header{}, fmt.Errorf("zarchivectl: file too short for header (have %d, need %d)", len(buf), need)
	}
	return header{btreeOffset: btreeOffset, tableOffset: tableOffset}, nil
}
