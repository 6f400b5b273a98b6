package validate

import "errors"

// Sentinel error kinds, mirroring hive/verify's ValidationError.Type
// discriminant, extended with the entries spec'd for the archive's
// container validators.
var (
	ErrOutOfBounds             = errors.New("validate: pointer target out of bounds")
	ErrUnaligned               = errors.New("validate: pointer target not aligned")
	ErrOverrun                 = errors.New("validate: subtree extends past its allowed region")
	ErrClaimOverlap            = errors.New("validate: two subtrees claim overlapping bytes")
	ErrTypeMismatch            = errors.New("validate: region previously claimed by an incompatible type")
	ErrCycle                   = errors.New("validate: pointer forms a cycle back into an ancestor region")
	ErrInvalidLength           = errors.New("validate: archived length exceeds its declared maximum")
	ErrInvalidLengthCap        = errors.New("validate: archived capacity is not consistent with length")
	ErrIteratorLengthMismatch  = errors.New("validate: iteration did not yield the declared number of entries")
	ErrUnwrappedControlByte    = errors.New("validate: control byte tail mirror does not match its primary copy")
)
