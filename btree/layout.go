package btree

import (
	"github.com/relarchive/relarchive/archive"
	"github.com/relarchive/relarchive/relptr"
)

// NodeKind discriminates a Node's archived form, the first byte of every
// node record.
type NodeKind uint8

const (
	KindLeaf  NodeKind = 0
	KindInner NodeKind = 1
)

// layout precomputes every byte offset within a node record for a given
// fanout E, key/value codec, and pointer width, so node access is pure
// offset arithmetic -- no struct overlay, matching the "read through a
// Codec, not a cast" posture the rest of this module follows.
type layout struct {
	e         int
	keySize   int
	valSize   int
	ptrWidth  relptr.Width
	ptrSize   int

	keysOff  int
	valsOff  int

	leafLenOff  int
	leafSize    int

	innerLesserOff  int
	innerGreaterOff int
	innerSize       int
}

func newLayout(e int, keyAlign, keySize, valAlign, valSize int, ptrWidth relptr.Width) layout {
	ptrSize := ptrWidth.Size()
	keysOff := archive.AlignUp(1, keyAlign)
	valsOff := archive.AlignUp(keysOff+e*keySize, valAlign)
	bodyEnd := valsOff + e*valSize

	leafLenOff := archive.AlignUp(bodyEnd, 8)
	leafSize := leafLenOff + 8

	innerLesserOff := archive.AlignUp(bodyEnd, ptrSize)
	innerGreaterOff := innerLesserOff + e*ptrSize
	innerSize := innerGreaterOff + ptrSize

	return layout{
		e: e, keySize: keySize, valSize: valSize, ptrWidth: ptrWidth, ptrSize: ptrSize,
		keysOff: keysOff, valsOff: valsOff,
		leafLenOff: leafLenOff, leafSize: leafSize,
		innerLesserOff: innerLesserOff, innerGreaterOff: innerGreaterOff, innerSize: innerSize,
	}
}

func (l layout) align() int {
	if l.ptrSize > l.keySize && l.ptrSize > l.valSize {
		return l.ptrSize
	}
	if l.keySize >= l.valSize {
		if l.keySize > 8 {
			return l.keySize
		}
		return 8
	}
	if l.valSize > 8 {
		return l.valSize
	}
	return 8
}

func (l layout) keyOff(i int) int { return l.keysOff + i*l.keySize }
func (l layout) valOff(i int) int { return l.valsOff + i*l.valSize }
func (l layout) lesserOff(i int) int { return l.innerLesserOff + i*l.ptrSize }
