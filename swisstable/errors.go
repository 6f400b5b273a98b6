package swisstable

import "errors"

var (
	// ErrInvalidLoadFactor is returned by NewTable when num >= den or
	// either is non-positive. The original source left this unchecked (a
	// TODO in its capacity computation); this implementation rejects it
	// explicitly, per this module's serialization spec's Open Question
	// resolution.
	ErrInvalidLoadFactor = errors.New("swisstable: load factor numerator must be less than denominator")

	// ErrIteratorLengthMismatch mirrors the B-tree builder's check: the
	// caller's declared entry count must match what was actually
	// provided.
	ErrIteratorLengthMismatch = errors.New("swisstable: iterator yielded a different entry count than declared")

	// ErrTableFull is returned if insertion exhausts every slot without
	// finding an empty one, which indicates capacityFor was computed
	// incorrectly (a bug in this package, not a caller error) since
	// capacity always exceeds len by construction.
	ErrTableFull = errors.New("swisstable: no empty slot found during build")
)
