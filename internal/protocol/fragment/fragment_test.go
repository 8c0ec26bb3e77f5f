package fragment

import (
	"bytes"
	"errors"
	"math/rand/v2"
	"testing"
)

func patterned(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i % 251)
	}
	return b
}

func TestSplitJoinRoundTrip(t *testing.T) {
	sizes := []int{0, 1, Capacity - 1, Capacity, Capacity + 1, 2 * Capacity, 3*Capacity + 17, 200_001}
	for _, n := range sizes {
		in := patterned(n)
		frags := Split(in)
		out, err := Join(frags)
		if err != nil {
			t.Fatalf("size %d: join: %v", n, err)
		}
		if len(out) != n || !bytes.Equal(out, in) {
			t.Fatalf("size %d: round-trip mismatch (got %d bytes)", n, len(out))
		}
	}
}

func TestSplitInvariants(t *testing.T) {
	for _, n := range []int{1, Capacity, Capacity + 1, 10*Capacity + 5} {
		frags := Split(patterned(n))
		want := uint64((n + Capacity - 1) / Capacity)
		if uint64(len(frags)) != want {
			t.Fatalf("size %d: %d fragments, want %d", n, len(frags), want)
		}
		for i, f := range frags {
			if f.Index != uint64(i) {
				t.Fatalf("size %d: fragment %d has index %d", n, i, f.Index)
			}
			if f.Total != want {
				t.Fatalf("size %d: fragment %d has total %d, want %d", n, i, f.Total, want)
			}
			if i < len(frags)-1 && f.Length != Capacity {
				t.Fatalf("size %d: non-last fragment %d has length %d", n, i, f.Length)
			}
			for _, b := range f.Data[f.Length:] {
				if b != 0 {
					t.Fatalf("size %d: fragment %d has non-zero padding", n, i)
				}
			}
		}
	}
}

func TestSplitEmptyBuffer(t *testing.T) {
	frags := Split(nil)
	if len(frags) != 1 {
		t.Fatalf("expected one fragment, got %d", len(frags))
	}
	if f := frags[0]; f.Index != 0 || f.Total != 1 || f.Length != 0 {
		t.Fatalf("unexpected empty fragment: index=%d total=%d length=%d", f.Index, f.Total, f.Length)
	}
	out, err := Join(frags)
	if err != nil || len(out) != 0 {
		t.Fatalf("expected empty buffer, got %v %v", out, err)
	}
}

func TestSplitBoundaries(t *testing.T) {
	frags := Split(patterned(Capacity))
	if len(frags) != 1 || frags[0].Length != Capacity {
		t.Fatalf("capacity buffer: %d fragments, first length %d", len(frags), frags[0].Length)
	}
	frags = Split(patterned(Capacity + 1))
	if len(frags) != 2 || frags[1].Length != 1 {
		t.Fatalf("capacity+1 buffer: %d fragments, second length %d", len(frags), frags[1].Length)
	}
}

func TestSplitDoesNotAliasInput(t *testing.T) {
	in := patterned(10)
	frags := Split(in)
	in[0] = 0xFF
	if frags[0].Data[0] == 0xFF {
		t.Fatalf("fragment aliases input buffer")
	}
}

func TestJoinOrderIndependent(t *testing.T) {
	in := patterned(50*Capacity + 3)
	frags := Split(in)
	rng := rand.New(rand.NewPCG(1, 2))
	for round := 0; round < 5; round++ {
		rng.Shuffle(len(frags), func(i, j int) { frags[i], frags[j] = frags[j], frags[i] })
		out, err := Join(frags)
		if err != nil {
			t.Fatalf("round %d: join: %v", round, err)
		}
		if !bytes.Equal(out, in) {
			t.Fatalf("round %d: shuffled join mismatch", round)
		}
	}
}

func TestJoinDoesNotReorderInput(t *testing.T) {
	frags := Split(patterned(3 * Capacity))
	frags[0], frags[2] = frags[2], frags[0]
	if _, err := Join(frags); err != nil {
		t.Fatalf("join: %v", err)
	}
	if frags[0].Index != 2 || frags[2].Index != 0 {
		t.Fatalf("join reordered the caller's slice")
	}
}

func TestJoinEmpty(t *testing.T) {
	_, err := Join(nil)
	if !errors.Is(err, ErrEmptyFragmentSet) {
		t.Fatalf("expected ErrEmptyFragmentSet, got %v", err)
	}
}

func TestJoinDuplicateIndex(t *testing.T) {
	frags := Split(patterned(3 * Capacity))
	frags = append(frags, frags[1])
	_, err := Join(frags)
	if !errors.Is(err, ErrDuplicateIndex) {
		t.Fatalf("expected ErrDuplicateIndex, got %v", err)
	}
	var dup DuplicateIndexError
	if !errors.As(err, &dup) || dup.Index != 1 {
		t.Fatalf("expected DuplicateIndexError{1}, got %v", err)
	}
}

func TestJoinMissingMiddleFragment(t *testing.T) {
	frags := Split(patterned(4 * Capacity))
	frags = append(frags[:1], frags[2:]...)
	_, err := Join(frags)
	var missing MissingFragmentError
	if !errors.As(err, &missing) || missing.Index != 1 {
		t.Fatalf("expected MissingFragmentError{1}, got %v", err)
	}
	if !errors.Is(err, ErrMissingFragment) {
		t.Fatalf("expected ErrMissingFragment, got %v", err)
	}
}

func TestJoinMissingTrailingFragment(t *testing.T) {
	frags := Split(patterned(4*Capacity + 9))
	_, err := Join(frags[:len(frags)-1])
	var missing MissingFragmentError
	if !errors.As(err, &missing) || missing.Index != 4 {
		t.Fatalf("expected MissingFragmentError{4}, got %v", err)
	}
}

func TestJoinTotalMismatch(t *testing.T) {
	frags := Split(patterned(3 * Capacity))
	frags[1].Total = 7
	if _, err := Join(frags); !errors.Is(err, ErrTotalMismatch) {
		t.Fatalf("expected ErrTotalMismatch, got %v", err)
	}

	frags = Split(patterned(3 * Capacity))
	for i := range frags {
		frags[i].Total = 2
	}
	if _, err := Join(frags); !errors.Is(err, ErrTotalMismatch) {
		t.Fatalf("expected ErrTotalMismatch for short total, got %v", err)
	}
}

func TestJoinRejectsBadLengths(t *testing.T) {
	frags := Split(patterned(3 * Capacity))
	frags[0].Length = Capacity - 1
	_, err := Join(frags)
	var le LengthError
	if !errors.As(err, &le) || le.Index != 0 {
		t.Fatalf("expected LengthError for short interior fragment, got %v", err)
	}

	frags = Split(patterned(10))
	frags[0].Length = 200
	if _, err := Join(frags); !errors.Is(err, ErrInvalidLength) {
		t.Fatalf("expected ErrInvalidLength for oversized length, got %v", err)
	}
}

func TestJoinWithLimits(t *testing.T) {
	frags := Split(patterned(5 * Capacity))
	_, err := JoinWithLimits(frags, Limits{MaxFragments: 4})
	if !errors.Is(err, ErrTooManyFragments) {
		t.Fatalf("expected ErrTooManyFragments, got %v", err)
	}
	if _, err := JoinWithLimits(frags, Limits{}); err != nil {
		t.Fatalf("zero limits should be unbounded: %v", err)
	}
}

func TestPayloadClampsLength(t *testing.T) {
	f := Fragment{Length: 250}
	if len(f.Payload()) != Capacity {
		t.Fatalf("payload not clamped: %d", len(f.Payload()))
	}
}

func TestCount(t *testing.T) {
	cases := map[int]uint64{0: 1, 1: 1, Capacity: 1, Capacity + 1: 2, 200_001: 1563}
	for n, want := range cases {
		if got := Count(n); got != want {
			t.Fatalf("Count(%d) = %d, want %d", n, got, want)
		}
	}
}
