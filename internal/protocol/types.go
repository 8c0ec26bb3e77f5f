package protocol

import (
	"strings"

	"github.com/danmuck/assembler/internal/protocol/tlv"
)

// Tag identifies a message variant on the wire. Values are stable and never reused.
type Tag uint8

// ID identifies a client, text or media item.
type ID uint64

// ServerKind is the answer to a server type request.
type ServerKind uint8

const (
	TextServer ServerKind = iota
	MediaServer
	ChatServer
)

func (k ServerKind) String() string {
	switch k {
	case TextServer:
		return "text"
	case MediaServer:
		return "media"
	case ChatServer:
		return "chat"
	default:
		return "invalid"
	}
}

// ParseServerKind is the inverse of ServerKind.String.
func ParseServerKind(name string) (ServerKind, bool) {
	for k := TextServer; k <= ChatServer; k++ {
		if k.String() == strings.ToLower(strings.TrimSpace(name)) {
			return k, true
		}
	}
	return 0, false
}

// Message is the closed set of variants in this package. Only package types
// can satisfy it.
type Message interface {
	Tag() Tag
	fields() []tlv.Field
}
