// Package validate implements the validation context that checked access
// entry points run before trusting an archived buffer: every relative
// pointer's target must be in bounds, aligned, and fully contained within
// the subtree its parent is allowed to reach, and no pointer may re-enter
// a subtree that is already open (which would make traversal infinite).
//
// Grounded on hive/verify/verify.go's stack-based, cycle-safe tree walk
// (a visited set keyed by cell offset, used there to stop a crafted
// subkey list from looping back on itself) and internal/buf/bounds.go's
// overflow-safe range arithmetic, generalized from "is this a valid NK/VK
// cell offset" to "is this pointer's target fully inside the innermost
// subtree currently being validated."
package validate

import (
	"encoding/binary"
	"fmt"

	"github.com/relarchive/relarchive/relptr"
)

// region is one entry in the nested-subtree stack: the byte range that a
// pointer discovered while validating is allowed to point into.
type region struct {
	start, end int64
	label      string
}

// claim records a byte range already validated as belonging to a value of
// a given type, used to detect two logically distinct values claiming
// overlapping bytes (a corrupt or adversarial buffer trying to alias one
// region as two incompatible types) without re-validating shared targets
// every time they are reached through a different pointer.
type claim struct {
	start, end int64
	typeName   string
}

// Context walks an archived buffer performing the bounds/alignment/
// cycle/overlap checks that together make "checked access" safe to trust.
// A Context is single-use: construct one per top-level validation pass.
type Context struct {
	buf    []byte
	order  binary.ByteOrder
	stack  []region
	claims []claim
	path   []string
}

// NewContext returns a Context over buf using the given byte order for
// decoding relative pointers.
func NewContext(buf []byte, order binary.ByteOrder) *Context {
	return &Context{buf: buf, order: order}
}

// Error is returned from Context methods, carrying the kind of failure
// (one of the Err* sentinels in errors.go, checked with errors.Is), the
// byte offset involved, and the nesting path of container labels that
// led to it -- the "context chain describing the path from the root"
// this module's error design calls for, extending hive/verify's flat
// {Type, Message, Offset} shape with that path.
type Error struct {
	Kind   error
	Offset int64
	Path   []string
}

func (e *Error) Error() string {
	return fmt.Sprintf("validate: %v at offset %d (path: %v)", e.Kind, e.Offset, e.Path)
}

func (e *Error) Unwrap() error { return e.Kind }

func (c *Context) fail(kind error, offset int64) error {
	path := make([]string, len(c.path))
	copy(path, c.path)
	return &Error{Kind: kind, Offset: offset, Path: path}
}

// CheckPtr decodes the relative pointer at fieldOffset and checks that,
// unless it is the "points nowhere" sentinel, its target is: within the
// buffer, aligned to align, and (if a subtree is currently open) fully
// inside the innermost open subtree's allowed region. size is the number
// of bytes the pointed-to value occupies.
func (c *Context) CheckPtr(fieldOffset int64, w relptr.Width, align int, size int64) (target int64, isNil bool, err error) {
	if fieldOffset < 0 || fieldOffset+int64(w.Size()) > int64(len(c.buf)) {
		return 0, false, c.fail(ErrOutOfBounds, fieldOffset)
	}
	target, invalid := relptr.Decode(c.buf, fieldOffset, w, c.order)
	if invalid {
		return 0, true, nil
	}
	if !sliceOK(int64(len(c.buf)), target, size) {
		return 0, false, c.fail(ErrOutOfBounds, target)
	}
	if align > 0 && target%int64(align) != 0 {
		return 0, false, c.fail(ErrUnaligned, target)
	}
	if len(c.stack) > 0 {
		top := c.stack[len(c.stack)-1]
		end, ok := AddOverflowSafe(target, size)
		if !ok || target < top.start || end > top.end {
			return 0, false, c.fail(ErrOverrun, target)
		}
	}
	return target, false, nil
}

// InSubtree runs fn with a new subtree region [start, end) pushed onto
// the allowed-region stack, labeled for error-path reporting. If start
// already lies within any currently-open region's start (i.e. a pointer
// has led back into an ancestor's own subtree rather than strictly
// forward), InSubtree returns ErrCycle without calling fn -- this is the
// generalization of hive/verify's `visited` set, expressed as a stack so
// that distinct, non-overlapping subtrees reached independently (e.g. two
// sibling leaves) are never mistaken for a cycle.
func (c *Context) InSubtree(start, end int64, label string, fn func() error) error {
	for _, r := range c.stack {
		if start >= r.start && start < r.end {
			return c.fail(ErrCycle, start)
		}
	}
	c.stack = append(c.stack, region{start: start, end: end, label: label})
	c.path = append(c.path, label)
	defer func() {
		c.stack = c.stack[:len(c.stack)-1]
		c.path = c.path[:len(c.path)-1]
	}()
	return fn()
}

// ClaimRegion records that [start, end) has been validated as holding a
// value of typeName. If the range overlaps a previously-claimed range of
// a different type, ClaimRegion returns ErrTypeMismatch; if it exactly
// matches a same-typed claim it is treated as a shared target already
// validated and ClaimRegion succeeds without re-adding the claim, so
// pool-deduplicated targets are validated exactly once. Any other overlap
// with a same-typed claim returns ErrClaimOverlap.
func (c *Context) ClaimRegion(start, end int64, typeName string) error {
	for _, existing := range c.claims {
		if start < existing.end && existing.start < end {
			if existing.typeName != typeName {
				return c.fail(ErrTypeMismatch, start)
			}
			if existing.start == start && existing.end == end {
				return nil
			}
			return c.fail(ErrClaimOverlap, start)
		}
	}
	c.claims = append(c.claims, claim{start: start, end: end, typeName: typeName})
	return nil
}

// CheckLength rejects an archived length that exceeds maximum (e.g. a
// B-tree leaf whose len field claims more entries than its fanout E
// allows).
func (c *Context) CheckLength(offset int64, length, maximum uint64) error {
	if length > maximum {
		return c.fail(ErrInvalidLength, offset)
	}
	return nil
}
