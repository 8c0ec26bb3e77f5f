package tlv

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// HeaderLen is id(1) + type(1) + length(4).
const HeaderLen = 6

var (
	ErrShortFieldHeader = errors.New("tlv: short field header")
	ErrShortFieldValue  = errors.New("tlv: short field value")
	ErrDuplicateField   = errors.New("tlv: duplicate field id")
	ErrFieldType        = errors.New("tlv: field type mismatch")
	ErrFieldLength      = errors.New("tlv: invalid field value length")
)

// Type IDs carried in the field header.
const (
	TypeU8     uint8 = 1
	TypeU64    uint8 = 2
	TypeString uint8 = 3
	TypeBytes  uint8 = 4
	TypeIDs    uint8 = 5
)

// Field is one decoded TLV field.
type Field struct {
	ID    uint8
	Type  uint8
	Value []byte
}

// Size returns the encoded size of f including its header.
func (f Field) Size() int {
	return HeaderLen + len(f.Value)
}

// AppendField appends the encoding of f to dst.
func AppendField(dst []byte, f Field) []byte {
	var head [HeaderLen]byte
	head[0] = f.ID
	head[1] = f.Type
	binary.BigEndian.PutUint32(head[2:6], uint32(len(f.Value)))
	dst = append(dst, head[:]...)
	return append(dst, f.Value...)
}

func EncodeField(f Field) []byte {
	return AppendField(make([]byte, 0, f.Size()), f)
}

// EncodeFields concatenates fields in order. An empty list encodes to nothing.
func EncodeFields(fields []Field) []byte {
	size := 0
	for _, f := range fields {
		size += f.Size()
	}
	out := make([]byte, 0, size)
	for _, f := range fields {
		out = AppendField(out, f)
	}
	return out
}

// DecodeFields parses a concatenation of fields. Field ids must be unique.
func DecodeFields(payload []byte) ([]Field, error) {
	if len(payload) == 0 {
		return nil, nil
	}
	fields := make([]Field, 0, 3)
	var seen [256]bool
	i := 0
	for i < len(payload) {
		if len(payload)-i < HeaderLen {
			return nil, ErrShortFieldHeader
		}
		id := payload[i]
		typeID := payload[i+1]
		l := binary.BigEndian.Uint32(payload[i+2 : i+6])
		i += HeaderLen
		if uint64(len(payload)-i) < uint64(l) {
			return nil, ErrShortFieldValue
		}
		if seen[id] {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateField, id)
		}
		seen[id] = true
		var val []byte
		if l > 0 {
			val = make([]byte, l)
			copy(val, payload[i:i+int(l)])
		}
		i += int(l)
		fields = append(fields, Field{ID: id, Type: typeID, Value: val})
	}
	return fields, nil
}

func GetField(fields []Field, id uint8) (Field, bool) {
	for _, f := range fields {
		if f.ID == id {
			return f, true
		}
	}
	return Field{}, false
}

func MustType(f Field, expected uint8) error {
	if f.Type != expected {
		return fmt.Errorf("%w: field %d got %d want %d", ErrFieldType, f.ID, f.Type, expected)
	}
	return nil
}

func U64FromBytes(b []byte) (uint64, error) {
	if len(b) != 8 {
		return 0, fmt.Errorf("%w: u64 needs 8 bytes, got %d", ErrFieldLength, len(b))
	}
	return binary.BigEndian.Uint64(b), nil
}
