package swisstable

// Fixed hasher seeds, ported from the four constant seeds the original
// source passes to SeaHasher::with_seeds -- the source itself notes these
// are a placeholder ("switch hasher / pick nothing-up-my-sleeve numbers")
// but keeps them fixed and never varies them, since reproducibility of
// the archived bytes across runs matters more than hash quality here.
// Kept identical rather than replaced with different constants so this
// port stays bit-for-bit reproducible with itself across builds.
const (
	seed0 uint64 = 0
	seed1 uint64 = 0
	seed2 uint64 = 0
	seed3 uint64 = 0
)

// hash64 computes a 64-bit hash of b using the fixed seeds above, via a
// SeaHash-style multiply-rotate-xor mix. Not a general-purpose hash
// function -- it exists only to place keys deterministically in the
// table, not to resist adversarial input.
func hash64(b []byte) uint64 {
	const (
		c1 = 0x2d358dccaa6c78a5
		c2 = 0x8bb84b93962eacc9
	)
	h := seed0 ^ seed1<<1 ^ seed2<<2 ^ seed3<<3
	for len(b) >= 8 {
		var word uint64
		for i := 0; i < 8; i++ {
			word |= uint64(b[i]) << (8 * i)
		}
		h ^= word
		h *= c1
		h = (h << 31) | (h >> 33)
		h *= c2
		b = b[8:]
	}
	if len(b) > 0 {
		var word uint64
		for i, c := range b {
			word |= uint64(c) << (8 * i)
		}
		h ^= word
		h *= c1
		h = (h << 31) | (h >> 33)
		h *= c2
	}
	h ^= h >> 29
	h *= c2
	h ^= h >> 32
	return h
}

// h1 is the probe-start component of a hash.
func h1(hash uint64) int { return int(hash) }

// h2 is the quick-compare component of a hash: the top 7 bits, stored as
// the control byte (never 0xFF, which is reserved for "empty").
func h2(hash uint64) byte {
	return byte(hash>>57) & 0x7F
}
