package archive

// sharedKey identifies a serialized target by its Go identity (pointer
// value) together with a caller-supplied type name, the structural
// analogue of rkyv's (address, TypeId) dedup key -- Go has no
// address-stable TypeId, so a type name string substitutes for it.
type sharedKey struct {
	addr uintptr
	typ  string
}

// SharingPool deduplicates serialization of values reachable through more
// than one shared-ownership reference (e.g. two B-tree entries that both
// point at the same interned string). The first Serialize call for a
// given identity records where it was written; later calls for the same
// identity reuse that position instead of re-serializing the payload.
type SharingPool struct {
	seen map[sharedKey]int64
}

// NewSharingPool returns an empty pool.
func NewSharingPool() *SharingPool {
	return &SharingPool{seen: make(map[sharedKey]int64)}
}

// Lookup reports the position a value with the given identity was
// previously serialized at, if any.
func (p *SharingPool) Lookup(addr uintptr, typ string) (pos int64, ok bool) {
	pos, ok = p.seen[sharedKey{addr: addr, typ: typ}]
	return
}

// Record remembers that the value identified by (addr, typ) was
// serialized at pos, so a later Lookup with the same identity finds it.
func (p *SharingPool) Record(addr uintptr, typ string, pos int64) {
	p.seen[sharedKey{addr: addr, typ: typ}] = pos
}

// Count returns the number of distinct identities recorded so far.
func (p *SharingPool) Count() int {
	return len(p.seen)
}
