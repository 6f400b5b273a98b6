package btree

import "errors"

// ErrIteratorLengthMismatch is returned by BuildFromIter when the caller's
// declared entry count does not match how many entries the iterator
// function actually yielded before reporting exhaustion -- the Go analog
// of rkyv's `serialize_from_ordered_iter` trusting (and here, checking)
// an ExactSizeIterator's stated length.
var ErrIteratorLengthMismatch = errors.New("btree: iterator yielded a different entry count than declared")
