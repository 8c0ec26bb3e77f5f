package protocol

import (
	"strings"

	"github.com/danmuck/assembler/internal/protocol/schema"
	"github.com/danmuck/assembler/internal/protocol/tlv"
)

// Tag values. Append new variants before tagCount; never renumber.
const (
	TagTextListRequest Tag = iota
	TagTextRequest
	TagMediaListRequest
	TagMediaRequest
	TagClientListRequest
	TagRegisterRequest
	TagSendMessageRequest
	TagServerTypeRequest
	TagTextListResponse
	TagTextResponse
	TagNotFoundResponse
	TagMediaListResponse
	TagMediaResponse
	TagClientListResponse
	TagMessageFromResponse
	TagMessageSentResponse
	TagServerTypeResponse
	TagWrongClientIDResponse

	tagCount
)

type variant struct {
	name   string
	reqs   []schema.Requirement
	decode func([]tlv.Field) (Message, error)
}

func empty(m Message) func([]tlv.Field) (Message, error) {
	return func([]tlv.Field) (Message, error) { return m, nil }
}

var (
	reqID     = []schema.Requirement{{ID: schema.FieldID, Type: tlv.TypeU64}}
	reqIDList = []schema.Requirement{{ID: schema.FieldIDs, Type: tlv.TypeIDs}}
)

// variants is the tag table: the single source of truth for tag <-> variant.
var variants = [tagCount]variant{
	TagTextListRequest: {name: "request.text_list", decode: empty(TextListRequest{})},
	TagTextRequest:     {name: "request.text", reqs: reqID, decode: decodeTextRequest},
	TagMediaListRequest: {
		name:   "request.media_list",
		decode: empty(MediaListRequest{}),
	},
	TagMediaRequest:      {name: "request.media", reqs: reqID, decode: decodeMediaRequest},
	TagClientListRequest: {name: "request.client_list", decode: empty(ClientListRequest{})},
	TagRegisterRequest:   {name: "request.register", reqs: reqID, decode: decodeRegisterRequest},
	TagSendMessageRequest: {
		name: "request.send_message",
		reqs: []schema.Requirement{
			{ID: schema.FieldFrom, Type: tlv.TypeU64},
			{ID: schema.FieldTo, Type: tlv.TypeU64},
			{ID: schema.FieldText, Type: tlv.TypeString},
		},
		decode: decodeSendMessageRequest,
	},
	TagServerTypeRequest: {name: "request.server_type", decode: empty(ServerTypeRequest{})},
	TagTextListResponse:  {name: "response.text_list", reqs: reqIDList, decode: decodeTextListResponse},
	TagTextResponse: {
		name:   "response.text",
		reqs:   []schema.Requirement{{ID: schema.FieldText, Type: tlv.TypeString}},
		decode: decodeTextResponse,
	},
	TagNotFoundResponse:  {name: "response.not_found", decode: empty(NotFoundResponse{})},
	TagMediaListResponse: {name: "response.media_list", reqs: reqIDList, decode: decodeMediaListResponse},
	TagMediaResponse: {
		name:   "response.media",
		reqs:   []schema.Requirement{{ID: schema.FieldBody, Type: tlv.TypeBytes}},
		decode: decodeMediaResponse,
	},
	TagClientListResponse: {name: "response.client_list", reqs: reqIDList, decode: decodeClientListResponse},
	TagMessageFromResponse: {
		name: "response.message_from",
		reqs: []schema.Requirement{
			{ID: schema.FieldFrom, Type: tlv.TypeU64},
			{ID: schema.FieldBody, Type: tlv.TypeBytes},
		},
		decode: decodeMessageFromResponse,
	},
	TagMessageSentResponse: {name: "response.message_sent", decode: empty(MessageSentResponse{})},
	TagServerTypeResponse: {
		name:   "response.server_type",
		reqs:   []schema.Requirement{{ID: schema.FieldKind, Type: tlv.TypeU8}},
		decode: decodeServerTypeResponse,
	},
	TagWrongClientIDResponse: {name: "response.wrong_client", reqs: reqID, decode: decodeWrongClientIDResponse},
}

func lookup(tag Tag) (variant, bool) {
	if int(tag) >= len(variants) {
		return variant{}, false
	}
	v := variants[tag]
	if v.decode == nil {
		return variant{}, false
	}
	return v, true
}

func (t Tag) String() string {
	if v, ok := lookup(t); ok {
		return v.name
	}
	return "unknown"
}

// ParseTag resolves a variant name such as "request.client_list".
func ParseTag(name string) (Tag, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i := range variants {
		if variants[i].name == name {
			return Tag(i), true
		}
	}
	return 0, false
}

// Tags lists every registered tag in ascending order.
func Tags() []Tag {
	out := make([]Tag, 0, len(variants))
	for i := range variants {
		if _, ok := lookup(Tag(i)); ok {
			out = append(out, Tag(i))
		}
	}
	return out
}
