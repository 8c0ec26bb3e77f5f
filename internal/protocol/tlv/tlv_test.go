package tlv

import (
	"bytes"
	"errors"
	"testing"
)

func TestEncodeDecodeFieldsRoundTripPreservesUnknown(t *testing.T) {
	in := []Field{
		{ID: 1, Type: TypeString, Value: []byte("hello")},
		{ID: 200, Type: TypeBytes, Value: []byte{0xAA, 0xBB}}, // unknown field id
	}
	b := EncodeFields(in)
	out, err := DecodeFields(b)
	if err != nil {
		t.Fatalf("decode fields: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(out))
	}
	if out[1].ID != 200 || out[1].Type != TypeBytes || !bytes.Equal(out[1].Value, []byte{0xAA, 0xBB}) {
		t.Fatalf("unknown field not preserved: %+v", out[1])
	}
}

func TestEncodeFieldsEmptyIsEmpty(t *testing.T) {
	if b := EncodeFields(nil); len(b) != 0 {
		t.Fatalf("expected no bytes, got %d", len(b))
	}
	fields, err := DecodeFields(nil)
	if err != nil || fields != nil {
		t.Fatalf("expected nil fields, got %v %v", fields, err)
	}
}

func TestEncodeFieldLayout(t *testing.T) {
	b := EncodeField(Field{ID: 7, Type: TypeU8, Value: []byte{3}})
	want := []byte{7, TypeU8, 0, 0, 0, 1, 3}
	if !bytes.Equal(b, want) {
		t.Fatalf("layout mismatch: got %v want %v", b, want)
	}
}

func TestDecodeFieldsMalformedHeaderIsDeterministic(t *testing.T) {
	_, err := DecodeFields([]byte{1, 2, 3})
	if !errors.Is(err, ErrShortFieldHeader) {
		t.Fatalf("expected ErrShortFieldHeader, got %v", err)
	}
}

func TestDecodeFieldsMalformedLengthIsDeterministic(t *testing.T) {
	// id=1, type=string, len=5, value only 2 bytes
	payload := []byte{1, TypeString, 0, 0, 0, 5, 'a', 'b'}
	_, err := DecodeFields(payload)
	if !errors.Is(err, ErrShortFieldValue) {
		t.Fatalf("expected ErrShortFieldValue, got %v", err)
	}
}

func TestDecodeFieldsRejectsDuplicateID(t *testing.T) {
	payload := EncodeFields([]Field{
		{ID: 1, Type: TypeU8, Value: []byte{1}},
		{ID: 1, Type: TypeU8, Value: []byte{2}},
	})
	_, err := DecodeFields(payload)
	if !errors.Is(err, ErrDuplicateField) {
		t.Fatalf("expected ErrDuplicateField, got %v", err)
	}
}

func TestZeroLengthValueDecodesNil(t *testing.T) {
	out, err := DecodeFields(EncodeField(Field{ID: 4, Type: TypeBytes}))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out[0].Value != nil {
		t.Fatalf("expected nil value, got %v", out[0].Value)
	}
}

func TestMustTypeAndU64FromBytes(t *testing.T) {
	f := Field{ID: 2, Type: TypeU64, Value: []byte{0, 0, 0, 0, 0, 0, 1, 0}}
	if err := MustType(f, TypeU64); err != nil {
		t.Fatalf("must type: %v", err)
	}
	if err := MustType(f, TypeString); !errors.Is(err, ErrFieldType) {
		t.Fatalf("expected ErrFieldType, got %v", err)
	}
	v, err := U64FromBytes(f.Value)
	if err != nil || v != 256 {
		t.Fatalf("u64: got %d %v", v, err)
	}
	if _, err := U64FromBytes([]byte{1}); !errors.Is(err, ErrFieldLength) {
		t.Fatalf("expected ErrFieldLength, got %v", err)
	}
}
