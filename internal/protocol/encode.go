package protocol

import "github.com/danmuck/assembler/internal/protocol/tlv"

// Encode maps msg to [tag] ++ payload. It cannot fail for a non-nil msg;
// variants without a payload encode to the single tag byte.
func Encode(msg Message) []byte {
	fields := msg.fields()
	size := 1
	for _, f := range fields {
		size += f.Size()
	}
	buf := make([]byte, 1, size)
	buf[0] = byte(msg.Tag())
	for _, f := range fields {
		buf = tlv.AppendField(buf, f)
	}
	return buf
}
