package fragment

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Record layout: index u64 | total u64 | length u8 | data [Capacity], big endian.
const (
	offsetIndex  = 0
	offsetTotal  = offsetIndex + 8
	offsetLength = offsetTotal + 8
	offsetData   = offsetLength + 1
	RecordSize   = offsetData + Capacity
)

func EncodeRecord(f Fragment) []byte {
	return AppendRecord(make([]byte, 0, RecordSize), f)
}

func AppendRecord(dst []byte, f Fragment) []byte {
	var rec [RecordSize]byte
	binary.BigEndian.PutUint64(rec[offsetIndex:], f.Index)
	binary.BigEndian.PutUint64(rec[offsetTotal:], f.Total)
	rec[offsetLength] = f.Length
	copy(rec[offsetData:], f.Data[:])
	return append(dst, rec[:]...)
}

func DecodeRecord(b []byte) (Fragment, error) {
	if len(b) != RecordSize {
		return Fragment{}, fmt.Errorf("%w: %d bytes, want %d", ErrShortRecord, len(b), RecordSize)
	}
	f := Fragment{
		Index:  binary.BigEndian.Uint64(b[offsetIndex:]),
		Total:  binary.BigEndian.Uint64(b[offsetTotal:]),
		Length: b[offsetLength],
	}
	if f.Length > Capacity {
		return Fragment{}, LengthError{Index: f.Index, Length: f.Length}
	}
	copy(f.Data[:], b[offsetData:])
	return f, nil
}

// WriteFragments writes one record per fragment, in slice order.
func WriteFragments(w io.Writer, frags []Fragment) error {
	buf := make([]byte, 0, RecordSize)
	for i := range frags {
		buf = AppendRecord(buf[:0], frags[i])
		if _, err := w.Write(buf); err != nil {
			return err
		}
	}
	return nil
}

// ReadFragments reads records until EOF. A trailing partial record is an error.
func ReadFragments(r io.Reader, limits Limits) ([]Fragment, error) {
	var frags []Fragment
	var rec [RecordSize]byte
	for {
		if _, err := io.ReadFull(r, rec[:]); err != nil {
			if errors.Is(err, io.EOF) {
				return frags, nil
			}
			if errors.Is(err, io.ErrUnexpectedEOF) {
				return nil, ErrShortRecord
			}
			return nil, err
		}
		if limits.MaxFragments > 0 && uint64(len(frags)) >= limits.MaxFragments {
			return nil, ErrTooManyFragments
		}
		f, err := DecodeRecord(rec[:])
		if err != nil {
			return nil, err
		}
		frags = append(frags, f)
	}
}
