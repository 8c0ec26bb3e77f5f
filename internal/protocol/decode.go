package protocol

import (
	"fmt"

	"github.com/danmuck/assembler/internal/protocol/schema"
	"github.com/danmuck/assembler/internal/protocol/tlv"
)

// Decode reads the tag byte and dispatches the remaining bytes to the
// variant's payload decoder. An unregistered tag yields UnknownTagError;
// any payload problem yields an error matching ErrMalformedPayload.
func Decode(buf []byte) (Message, error) {
	if len(buf) == 0 {
		return nil, fmt.Errorf("%w: missing tag byte", ErrMalformedPayload)
	}
	tag := Tag(buf[0])
	v, ok := lookup(tag)
	if !ok {
		return nil, UnknownTagError{Tag: tag}
	}

	fields, err := tlv.DecodeFields(buf[1:])
	if err != nil {
		return nil, malformed(tag, err)
	}
	if err := schema.Validate(uint8(tag), v.reqs, fields); err != nil {
		return nil, malformed(tag, err)
	}
	msg, err := v.decode(fields)
	if err != nil {
		return nil, malformed(tag, err)
	}
	return msg, nil
}
