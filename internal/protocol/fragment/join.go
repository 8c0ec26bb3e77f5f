package fragment

import (
	"cmp"
	"slices"
)

// Limits bounds how much a single join may allocate.
type Limits struct {
	MaxFragments uint64
}

// DefaultLimits allows payloads up to 128 MiB.
func DefaultLimits() Limits {
	return Limits{
		MaxFragments: 1 << 20,
	}
}

// Join reassembles frags using DefaultLimits.
func Join(frags []Fragment) ([]byte, error) {
	return JoinWithLimits(frags, DefaultLimits())
}

// JoinWithLimits rebuilds the buffer from an unordered fragment set. The set
// must hold indices 0..n-1 exactly once and agree on the total. frags is not
// modified.
func JoinWithLimits(frags []Fragment, limits Limits) ([]byte, error) {
	if len(frags) == 0 {
		return nil, ErrEmptyFragmentSet
	}
	if limits.MaxFragments > 0 && uint64(len(frags)) > limits.MaxFragments {
		return nil, ErrTooManyFragments
	}

	seen := make(map[uint64]struct{}, len(frags))
	for i := range frags {
		idx := frags[i].Index
		if _, dup := seen[idx]; dup {
			return nil, DuplicateIndexError{Index: idx}
		}
		seen[idx] = struct{}{}
	}

	sorted := slices.Clone(frags)
	slices.SortFunc(sorted, func(a, b Fragment) int {
		return cmp.Compare(a.Index, b.Index)
	})
	if err := validate(sorted); err != nil {
		return nil, err
	}

	last := &sorted[len(sorted)-1]
	size := (len(sorted)-1)*Capacity + int(last.Length)
	out := make([]byte, size)
	for i := range sorted {
		copy(out[int(sorted[i].Index)*Capacity:], sorted[i].Payload())
	}
	return out, nil
}

// validate checks a sorted, duplicate-free set.
func validate(sorted []Fragment) error {
	n := uint64(len(sorted))
	total := sorted[0].Total
	for i := range sorted {
		f := &sorted[i]
		if f.Index != uint64(i) {
			return MissingFragmentError{Index: uint64(i)}
		}
		if f.Total != total {
			return ErrTotalMismatch
		}
		if f.Length > Capacity {
			return LengthError{Index: f.Index, Length: f.Length}
		}
		if uint64(i) < n-1 && f.Length != Capacity {
			return LengthError{Index: f.Index, Length: f.Length}
		}
	}
	if total > n {
		return MissingFragmentError{Index: n}
	}
	if total < n {
		return ErrTotalMismatch
	}
	return nil
}
