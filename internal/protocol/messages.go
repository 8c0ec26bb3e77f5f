package protocol

import (
	"fmt"

	"github.com/danmuck/assembler/internal/protocol/schema"
	"github.com/danmuck/assembler/internal/protocol/tlv"
)

// Requests.

type TextListRequest struct{}

type TextRequest struct {
	ID ID
}

type MediaListRequest struct{}

type MediaRequest struct {
	ID ID
}

type ClientListRequest struct{}

type RegisterRequest struct {
	Client ID
}

type SendMessageRequest struct {
	From    ID
	To      ID
	Message string
}

type ServerTypeRequest struct{}

// Responses.

type TextListResponse struct {
	IDs []ID
}

type TextResponse struct {
	Text string
}

type NotFoundResponse struct{}

type MediaListResponse struct {
	IDs []ID
}

type MediaResponse struct {
	Media []byte
}

type ClientListResponse struct {
	Clients []ID
}

type MessageFromResponse struct {
	From    ID
	Message []byte
}

type MessageSentResponse struct{}

type ServerTypeResponse struct {
	Kind ServerKind
}

// WrongClientIDResponse is returned by a chat server for an unregistered client.
type WrongClientIDResponse struct {
	Client ID
}

func (TextListRequest) Tag() Tag       { return TagTextListRequest }
func (TextRequest) Tag() Tag           { return TagTextRequest }
func (MediaListRequest) Tag() Tag      { return TagMediaListRequest }
func (MediaRequest) Tag() Tag          { return TagMediaRequest }
func (ClientListRequest) Tag() Tag     { return TagClientListRequest }
func (RegisterRequest) Tag() Tag       { return TagRegisterRequest }
func (SendMessageRequest) Tag() Tag    { return TagSendMessageRequest }
func (ServerTypeRequest) Tag() Tag     { return TagServerTypeRequest }
func (TextListResponse) Tag() Tag      { return TagTextListResponse }
func (TextResponse) Tag() Tag          { return TagTextResponse }
func (NotFoundResponse) Tag() Tag      { return TagNotFoundResponse }
func (MediaListResponse) Tag() Tag     { return TagMediaListResponse }
func (MediaResponse) Tag() Tag         { return TagMediaResponse }
func (ClientListResponse) Tag() Tag    { return TagClientListResponse }
func (MessageFromResponse) Tag() Tag   { return TagMessageFromResponse }
func (MessageSentResponse) Tag() Tag   { return TagMessageSentResponse }
func (ServerTypeResponse) Tag() Tag    { return TagServerTypeResponse }
func (WrongClientIDResponse) Tag() Tag { return TagWrongClientIDResponse }

func (TextListRequest) fields() []tlv.Field     { return nil }
func (MediaListRequest) fields() []tlv.Field    { return nil }
func (ClientListRequest) fields() []tlv.Field   { return nil }
func (ServerTypeRequest) fields() []tlv.Field   { return nil }
func (NotFoundResponse) fields() []tlv.Field    { return nil }
func (MessageSentResponse) fields() []tlv.Field { return nil }

func (m TextRequest) fields() []tlv.Field {
	return []tlv.Field{newFieldUint64(schema.FieldID, uint64(m.ID))}
}

func (m MediaRequest) fields() []tlv.Field {
	return []tlv.Field{newFieldUint64(schema.FieldID, uint64(m.ID))}
}

func (m RegisterRequest) fields() []tlv.Field {
	return []tlv.Field{newFieldUint64(schema.FieldID, uint64(m.Client))}
}

func (m SendMessageRequest) fields() []tlv.Field {
	return []tlv.Field{
		newFieldUint64(schema.FieldFrom, uint64(m.From)),
		newFieldUint64(schema.FieldTo, uint64(m.To)),
		newFieldString(schema.FieldText, m.Message),
	}
}

func (m TextListResponse) fields() []tlv.Field {
	return []tlv.Field{newFieldIDs(schema.FieldIDs, m.IDs)}
}

func (m TextResponse) fields() []tlv.Field {
	return []tlv.Field{newFieldString(schema.FieldText, m.Text)}
}

func (m MediaListResponse) fields() []tlv.Field {
	return []tlv.Field{newFieldIDs(schema.FieldIDs, m.IDs)}
}

func (m MediaResponse) fields() []tlv.Field {
	return []tlv.Field{newFieldBytes(schema.FieldBody, m.Media)}
}

func (m ClientListResponse) fields() []tlv.Field {
	return []tlv.Field{newFieldIDs(schema.FieldIDs, m.Clients)}
}

func (m MessageFromResponse) fields() []tlv.Field {
	return []tlv.Field{
		newFieldUint64(schema.FieldFrom, uint64(m.From)),
		newFieldBytes(schema.FieldBody, m.Message),
	}
}

func (m ServerTypeResponse) fields() []tlv.Field {
	return []tlv.Field{newFieldUint8(schema.FieldKind, uint8(m.Kind))}
}

func (m WrongClientIDResponse) fields() []tlv.Field {
	return []tlv.Field{newFieldUint64(schema.FieldID, uint64(m.Client))}
}

// Payload decoders, one per variant with fields. Required fields and their
// types are already checked against the tag table before these run.

func decodeTextRequest(fields []tlv.Field) (Message, error) {
	id, err := idField(fields, schema.FieldID)
	return TextRequest{ID: id}, err
}

func decodeMediaRequest(fields []tlv.Field) (Message, error) {
	id, err := idField(fields, schema.FieldID)
	return MediaRequest{ID: id}, err
}

func decodeRegisterRequest(fields []tlv.Field) (Message, error) {
	id, err := idField(fields, schema.FieldID)
	return RegisterRequest{Client: id}, err
}

func decodeSendMessageRequest(fields []tlv.Field) (Message, error) {
	from, err := idField(fields, schema.FieldFrom)
	if err != nil {
		return nil, err
	}
	to, err := idField(fields, schema.FieldTo)
	if err != nil {
		return nil, err
	}
	text, err := stringField(fields, schema.FieldText)
	if err != nil {
		return nil, err
	}
	return SendMessageRequest{From: from, To: to, Message: text}, nil
}

func decodeTextListResponse(fields []tlv.Field) (Message, error) {
	ids, err := idsField(fields, schema.FieldIDs)
	return TextListResponse{IDs: ids}, err
}

func decodeTextResponse(fields []tlv.Field) (Message, error) {
	text, err := stringField(fields, schema.FieldText)
	return TextResponse{Text: text}, err
}

func decodeMediaListResponse(fields []tlv.Field) (Message, error) {
	ids, err := idsField(fields, schema.FieldIDs)
	return MediaListResponse{IDs: ids}, err
}

func decodeMediaResponse(fields []tlv.Field) (Message, error) {
	media, err := bytesField(fields, schema.FieldBody)
	return MediaResponse{Media: media}, err
}

func decodeClientListResponse(fields []tlv.Field) (Message, error) {
	ids, err := idsField(fields, schema.FieldIDs)
	return ClientListResponse{Clients: ids}, err
}

func decodeMessageFromResponse(fields []tlv.Field) (Message, error) {
	from, err := idField(fields, schema.FieldFrom)
	if err != nil {
		return nil, err
	}
	body, err := bytesField(fields, schema.FieldBody)
	if err != nil {
		return nil, err
	}
	return MessageFromResponse{From: from, Message: body}, nil
}

func decodeServerTypeResponse(fields []tlv.Field) (Message, error) {
	raw, err := uint8Field(fields, schema.FieldKind)
	if err != nil {
		return nil, err
	}
	kind := ServerKind(raw)
	if kind > ChatServer {
		return nil, fmt.Errorf("%w: server kind %d", ErrInvalidValue, raw)
	}
	return ServerTypeResponse{Kind: kind}, nil
}

func decodeWrongClientIDResponse(fields []tlv.Field) (Message, error) {
	id, err := idField(fields, schema.FieldID)
	return WrongClientIDResponse{Client: id}, err
}
