package protocol

import (
	"encoding/binary"
	"fmt"

	"github.com/danmuck/assembler/internal/protocol/tlv"
)

func newFieldUint8(id uint8, v uint8) tlv.Field {
	return tlv.Field{ID: id, Type: tlv.TypeU8, Value: []byte{v}}
}

func newFieldUint64(id uint8, v uint64) tlv.Field {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, v)
	return tlv.Field{ID: id, Type: tlv.TypeU64, Value: buf}
}

func newFieldString(id uint8, v string) tlv.Field {
	return tlv.Field{ID: id, Type: tlv.TypeString, Value: []byte(v)}
}

// newFieldBytes does not copy v; the encoder copies while appending.
func newFieldBytes(id uint8, v []byte) tlv.Field {
	return tlv.Field{ID: id, Type: tlv.TypeBytes, Value: v}
}

func newFieldIDs(id uint8, ids []ID) tlv.Field {
	buf := make([]byte, 8*len(ids))
	for i, v := range ids {
		binary.BigEndian.PutUint64(buf[i*8:], uint64(v))
	}
	return tlv.Field{ID: id, Type: tlv.TypeIDs, Value: buf}
}

func lookupField(fields []tlv.Field, id uint8, typ uint8) (tlv.Field, error) {
	f, ok := tlv.GetField(fields, id)
	if !ok {
		return tlv.Field{}, fmt.Errorf("%w: field %d missing", ErrInvalidValue, id)
	}
	if err := tlv.MustType(f, typ); err != nil {
		return tlv.Field{}, err
	}
	return f, nil
}

func uint8Field(fields []tlv.Field, id uint8) (uint8, error) {
	f, err := lookupField(fields, id, tlv.TypeU8)
	if err != nil {
		return 0, err
	}
	if len(f.Value) != 1 {
		return 0, fmt.Errorf("%w: u8 needs 1 byte, got %d", tlv.ErrFieldLength, len(f.Value))
	}
	return f.Value[0], nil
}

func idField(fields []tlv.Field, id uint8) (ID, error) {
	f, err := lookupField(fields, id, tlv.TypeU64)
	if err != nil {
		return 0, err
	}
	v, err := tlv.U64FromBytes(f.Value)
	return ID(v), err
}

func stringField(fields []tlv.Field, id uint8) (string, error) {
	f, err := lookupField(fields, id, tlv.TypeString)
	if err != nil {
		return "", err
	}
	return string(f.Value), nil
}

// bytesField returns the decoded value directly; tlv.DecodeFields already
// hands out owned copies.
func bytesField(fields []tlv.Field, id uint8) ([]byte, error) {
	f, err := lookupField(fields, id, tlv.TypeBytes)
	if err != nil {
		return nil, err
	}
	return f.Value, nil
}

func idsField(fields []tlv.Field, id uint8) ([]ID, error) {
	f, err := lookupField(fields, id, tlv.TypeIDs)
	if err != nil {
		return nil, err
	}
	if len(f.Value)%8 != 0 {
		return nil, fmt.Errorf("%w: id list of %d bytes", tlv.ErrFieldLength, len(f.Value))
	}
	if len(f.Value) == 0 {
		return nil, nil
	}
	ids := make([]ID, len(f.Value)/8)
	for i := range ids {
		ids[i] = ID(binary.BigEndian.Uint64(f.Value[i*8:]))
	}
	return ids, nil
}
