package fragment

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyFragmentSet = errors.New("fragment: empty fragment set")
	ErrDuplicateIndex   = errors.New("fragment: duplicate fragment index")
	ErrMissingFragment  = errors.New("fragment: missing fragment")
	ErrInvalidLength    = errors.New("fragment: invalid fragment length")
	ErrTotalMismatch    = errors.New("fragment: inconsistent fragment total")
	ErrTooManyFragments = errors.New("fragment: too many fragments")
	ErrShortRecord      = errors.New("fragment: short record")
)

// DuplicateIndexError reports the first index seen twice.
type DuplicateIndexError struct {
	Index uint64
}

func (e DuplicateIndexError) Error() string {
	return fmt.Sprintf("fragment: duplicate fragment index %d", e.Index)
}

func (e DuplicateIndexError) Is(target error) bool {
	return target == ErrDuplicateIndex
}

// MissingFragmentError reports the lowest index absent from the set.
type MissingFragmentError struct {
	Index uint64
}

func (e MissingFragmentError) Error() string {
	return fmt.Sprintf("fragment: missing fragment %d", e.Index)
}

func (e MissingFragmentError) Is(target error) bool {
	return target == ErrMissingFragment
}

// LengthError reports a fragment whose length breaks the sizing invariant.
type LengthError struct {
	Index  uint64
	Length uint8
}

func (e LengthError) Error() string {
	return fmt.Sprintf("fragment: fragment %d has invalid length %d", e.Index, e.Length)
}

func (e LengthError) Is(target error) bool {
	return target == ErrInvalidLength
}
