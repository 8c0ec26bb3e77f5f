package fragment

// Capacity is the size of every fragment's data area.
const Capacity = 128

// Fragment is one fixed-capacity slice of a larger buffer.
type Fragment struct {
	Index  uint64
	Total  uint64
	Length uint8
	Data   [Capacity]byte
}

// Payload returns the meaningful bytes of f. It aliases f.Data.
func (f *Fragment) Payload() []byte {
	n := int(f.Length)
	if n > Capacity {
		n = Capacity
	}
	return f.Data[:n]
}

// Count returns the number of fragments a buffer of size n splits into.
func Count(n int) uint64 {
	if n == 0 {
		return 1
	}
	return uint64((n + Capacity - 1) / Capacity)
}

// Split partitions buf into consecutive Capacity-sized chunks. Every fragment
// owns a copy of its bytes; the data area beyond Length is zero.
func Split(buf []byte) []Fragment {
	total := Count(len(buf))
	frags := make([]Fragment, total)
	for i := range frags {
		start := i * Capacity
		end := min(start+Capacity, len(buf))
		f := &frags[i]
		f.Index = uint64(i)
		f.Total = total
		f.Length = uint8(copy(f.Data[:], buf[start:end]))
	}
	return frags
}
