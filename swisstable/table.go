package swisstable

import (
	"github.com/relarchive/relarchive/archive"
	"github.com/relarchive/relarchive/internal/simd"
	"github.com/relarchive/relarchive/relptr"
)

// Entry is one key-value pair to build into a Table.
type Entry[K any, V any] struct {
	Key   K
	Value V
}

// Table describes the archived layout and operations for a SwissTable
// hash map over K, V. Like btree.Map, a single Table value is reusable
// across any number of archived tables sharing its codec/load-factor/
// pointer-width configuration; all per-table state (capacity, control
// region, entries) lives in the archive buffer itself.
type Table[K any, V any] struct {
	keyCodec archive.Codec[K]
	valCodec archive.Codec[V]
	equal    func(a, b K) bool
	keyBytes func(K) []byte
	lf       LoadFactor
	ptrWidth relptr.Width
}

// NewTable returns a Table. equal compares two keys for equality;
// keyBytes produces the byte sequence hashed to place a key, which for
// fixed-size codecs is typically just the codec's encoded form (see
// EncodedKeyBytes).
func NewTable[K any, V any](keyCodec archive.Codec[K], valCodec archive.Codec[V], equal func(a, b K) bool, keyBytes func(K) []byte, lf LoadFactor, ptrWidth relptr.Width) (*Table[K, V], error) {
	if !lf.valid() {
		return nil, ErrInvalidLoadFactor
	}
	return &Table[K, V]{keyCodec: keyCodec, valCodec: valCodec, equal: equal, keyBytes: keyBytes, lf: lf, ptrWidth: ptrWidth}, nil
}

// EncodedKeyBytes returns a keyBytes function that hashes a key's own
// archived encoding, the natural choice for fixed-size scalar keys.
func EncodedKeyBytes[K any](codec archive.Codec[K]) func(K) []byte {
	return func(k K) []byte {
		buf := make([]byte, codec.Size())
		codec.Encode(buf, defaultOrder, k)
		return buf
	}
}

func (t *Table[K, V]) layoutFor(n int) layout {
	cap := capacityFor(n, t.lf)
	return newLayout(cap, t.keyCodec, t.valCodec, t.ptrWidth)
}

// Build serializes entries (order does not matter for a hash table) into
// ser and returns the absolute position of the first control byte and the
// capacity used.
func (t *Table[K, V]) Build(ser *archive.Serializer, entries []Entry[K, V]) (controlPos int64, capacity int, err error) {
	n := len(entries)
	lay := t.layoutFor(n)
	scratch := ser.Scratch.Push(lay.bucketRegion + lay.controlCount)
	defer ser.Scratch.Pop()

	for i := range scratch[lay.bucketRegion:] {
		scratch[lay.bucketRegion+i] = simd.Empty
	}

	bucketMask := nextPowerOfTwo(lay.capacity) - 1

	for _, e := range entries {
		h := hash64(t.keyBytes(e.Key))
		pos := mod(h1(h), lay.capacity)
		stride := 0
		placed := false
		for !placed {
			for g := 0; g < MaxGroupWidth/GroupWidth; g++ {
				base := pos + g*GroupWidth
				if base+GroupWidth > lay.controlCount {
					break
				}
				group := scratch[lay.bucketRegion+base : lay.bucketRegion+base+GroupWidth]
				mask := simd.MatchEmpty(group)
				if bit, ok := simd.LowestSetBit(mask); ok {
					controlIndex := base + bit
					index := controlIndex % lay.capacity
					scratch[lay.bucketRegion+index] = h2(h)
					if index < MaxGroupWidth-1 {
						scratch[lay.bucketRegion+lay.capacity+index] = h2(h)
					}
					bucketOff := lay.bucketOffset(index)
					t.keyCodec.Encode(scratch[bucketOff:], defaultOrder, e.Key)
					t.valCodec.Encode(scratch[bucketOff+lay.keySize:], defaultOrder, e.Value)
					placed = true
					break
				}
			}
			if placed {
				break
			}
			pos = (pos + stride) & bucketMask
			for pos >= lay.capacity {
				pos -= lay.capacity
			}
			stride += MaxGroupWidth
			if stride > lay.capacity*2+MaxGroupWidth {
				return 0, 0, ErrTableFull
			}
		}
	}

	pos, err := ser.Writer.WriteBytes(scratch)
	if err != nil {
		return 0, 0, err
	}
	return pos + int64(lay.bucketRegion), lay.capacity, nil
}

// BuildFromIter mirrors btree.Map.BuildFromIter's declared-length check.
func (t *Table[K, V]) BuildFromIter(ser *archive.Serializer, declaredLen int, next func() (Entry[K, V], bool)) (controlPos int64, capacity int, err error) {
	entries := make([]Entry[K, V], 0, declaredLen)
	for {
		e, ok := next()
		if !ok {
			break
		}
		entries = append(entries, e)
	}
	if len(entries) != declaredLen {
		return 0, 0, ErrIteratorLengthMismatch
	}
	return t.Build(ser, entries)
}

// Get looks up key in the table whose first control byte is at
// controlPos with the given capacity, using the sweep-then-decide
// variant: every SIMD group in a probe step is checked for an h2 match
// before any empty bit seen in that step causes a miss, since a single
// group may contain both a match and an empty slot.
func (t *Table[K, V]) Get(buf []byte, controlPos int64, capacity int, key K) (V, bool) {
	var zero V
	if capacity == 0 {
		return zero, false
	}
	lay := newLayout(capacity, t.keyCodec, t.valCodec, t.ptrWidth)
	h := hash64(t.keyBytes(key))
	target := h2(h)
	pos := mod(h1(h), capacity)
	bucketMask := nextPowerOfTwo(capacity) - 1
	stride := 0
	maxSteps := 2*capacity + MaxGroupWidth

	for step := 0; step < maxSteps; step++ {
		foundEmpty := false
		for g := 0; g < MaxGroupWidth/GroupWidth; g++ {
			base := pos + g*GroupWidth
			if base+GroupWidth > lay.controlCount {
				break
			}
			group := buf[int(controlPos)+base : int(controlPos)+base+GroupWidth]
			matchMask := simd.MatchByte(group, target)
			for matchMask != 0 {
				bit, _ := simd.LowestSetBit(matchMask)
				matchMask = simd.ClearBit(matchMask, bit)
				index := (base + bit) % capacity
				bucketOff := int(controlPos) - lay.bucketRegion + lay.bucketOffset(index)
				candidate := t.keyCodec.Decode(buf[bucketOff:bucketOff+lay.keySize], defaultOrder)
				if t.equal(candidate, key) {
					value := t.valCodec.Decode(buf[bucketOff+lay.keySize:bucketOff+lay.keySize+lay.valSize], defaultOrder)
					return value, true
				}
			}
			if simd.MatchEmpty(group) != 0 {
				foundEmpty = true
			}
		}
		if foundEmpty {
			return zero, false
		}
		pos = (pos + stride) & bucketMask
		for pos >= capacity {
			pos -= capacity
		}
		stride += MaxGroupWidth
	}
	return zero, false
}

func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}
