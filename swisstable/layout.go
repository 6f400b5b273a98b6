// Package swisstable implements an archived, open-addressed hash map
// using SwissTable-style control bytes and group probing, ported from
// original_source/rkyv/src/collections/swisstable/mod.rs.
package swisstable

import (
	"github.com/relarchive/relarchive/archive"
	"github.com/relarchive/relarchive/relptr"
)

// MaxGroupWidth is the number of control bytes examined per probe step.
// GroupWidth is the width of one scalar scan group; MaxGroupWidth /
// GroupWidth groups are scanned per step, the same two-constant split the
// original source uses to accommodate SIMD widths narrower than its
// per-step stride.
const (
	GroupWidth    = 8
	MaxGroupWidth = 16
)

// LoadFactor is a (numerator, denominator) pair expressing the maximum
// fraction of the table that may be occupied before it is considered
// full; numerator must be strictly less than denominator.
type LoadFactor struct {
	Num, Den int
}

// DefaultLoadFactor matches the 7/8 factor used throughout this module's
// examples.
var DefaultLoadFactor = LoadFactor{Num: 7, Den: 8}

func (lf LoadFactor) valid() bool {
	return lf.Num > 0 && lf.Den > 0 && lf.Num < lf.Den
}

// capacityFor returns the smallest capacity that holds n entries at the
// given load factor while guaranteeing n < capacity, per this module's
// serialization spec: capacity = max(ceil(n*den/num), n+1).
func capacityFor(n int, lf LoadFactor) int {
	byFactor := (n*lf.Den + lf.Num - 1) / lf.Num
	if byFactor < n+1 {
		return n + 1
	}
	return byFactor
}

// layout precomputes every byte offset needed to build or read a table of
// a given capacity over key/value codecs K, V.
type layout struct {
	capacity     int
	controlCount int
	entrySize    int
	entryAlign   int
	keySize      int
	valSize      int
	bucketRegion int // bytes occupied by the bucket array
	ptrWidth     relptr.Width
}

func newLayout(capacity int, keyCodec, valCodec codecSizer, ptrWidth relptr.Width) layout {
	keySize, valSize := keyCodec.Size(), valCodec.Size()
	align := keyCodec.Align()
	if valCodec.Align() > align {
		align = valCodec.Align()
	}
	entrySize := archive.AlignUp(keySize+valSize, align)
	return layout{
		capacity:     capacity,
		controlCount: capacity + MaxGroupWidth - 1,
		entrySize:    entrySize,
		entryAlign:   align,
		keySize:      keySize,
		valSize:      valSize,
		bucketRegion: capacity * entrySize,
		ptrWidth:     ptrWidth,
	}
}

// codecSizer is the subset of archive.Codec this package needs without
// committing to a concrete value type, letting layout math share code
// between the key and value codecs regardless of K, V.
type codecSizer interface {
	Size() int
	Align() int
}

// bucketOffset returns the scratch-local byte offset of bucket index's
// entry, counting backward from the control region start per the
// original layout: buckets grow downward from the control bytes.
func (l layout) bucketOffset(index int) int {
	return l.bucketRegion - (index+1)*l.entrySize
}
