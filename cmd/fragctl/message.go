package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/danmuck/assembler/internal/protocol"
)

// sendParams carries every field any variant can need; buildMessage picks
// the ones its tag uses.
type sendParams struct {
	id         uint64
	from       uint64
	to         uint64
	text       string
	ids        []string
	mediaFile  string
	serverKind string
}

func runSend(e *env, args []string) (stats, error) {
	flags := newFlagSet(e, "send")
	kind := flags.String("kind", "", "message tag name, as listed by the tags command")
	out := flags.String("out", "", "output record stream")
	var p sendParams
	flags.Uint64Var(&p.id, "id", 0, "text, media or client id")
	flags.Uint64Var(&p.from, "from", 0, "sending client id")
	flags.Uint64Var(&p.to, "to", 0, "receiving client id")
	flags.StringVar(&p.text, "text", "", "text body or chat message")
	flags.StringSliceVar(&p.ids, "ids", nil, "comma separated id list")
	flags.StringVar(&p.mediaFile, "media-file", "", "file holding a media or message body")
	flags.StringVar(&p.serverKind, "server-kind", "", "text|media|chat")
	if err := flags.Parse(args); err != nil {
		return stats{}, err
	}
	if err := requireFlag("kind", *kind); err != nil {
		return stats{}, err
	}
	if err := requireFlag("out", *out); err != nil {
		return stats{}, err
	}
	tag, ok := protocol.ParseTag(*kind)
	if !ok {
		return stats{}, fmt.Errorf("unknown message kind %q", *kind)
	}

	msg, err := buildMessage(tag, p)
	if err != nil {
		return stats{}, err
	}
	frags := e.asm.Disassemble(msg)
	if err := writeRecords(*out, frags); err != nil {
		return stats{}, err
	}
	size := len(protocol.Encode(msg))
	fmt.Fprintf(e.out, "%s: %d bytes in %d fragments -> %s\n", tag, size, len(frags), *out)
	return stats{bytes: size, fragments: len(frags)}, nil
}

func runRecv(e *env, args []string) (stats, error) {
	flags := newFlagSet(e, "recv")
	in := flags.String("in", "", "input record stream")
	if err := flags.Parse(args); err != nil {
		return stats{}, err
	}
	if err := requireFlag("in", *in); err != nil {
		return stats{}, err
	}
	frags, err := readRecords(*in, e.asm.Limits())
	if err != nil {
		return stats{}, err
	}
	msg, err := e.asm.Reassemble(frags)
	if err != nil {
		return stats{fragments: len(frags)}, err
	}
	fmt.Fprintln(e.out, describe(msg))
	return stats{bytes: len(protocol.Encode(msg)), fragments: len(frags)}, nil
}

func buildMessage(tag protocol.Tag, p sendParams) (protocol.Message, error) {
	switch tag {
	case protocol.TagTextListRequest:
		return protocol.TextListRequest{}, nil
	case protocol.TagTextRequest:
		return protocol.TextRequest{ID: protocol.ID(p.id)}, nil
	case protocol.TagMediaListRequest:
		return protocol.MediaListRequest{}, nil
	case protocol.TagMediaRequest:
		return protocol.MediaRequest{ID: protocol.ID(p.id)}, nil
	case protocol.TagClientListRequest:
		return protocol.ClientListRequest{}, nil
	case protocol.TagRegisterRequest:
		return protocol.RegisterRequest{Client: protocol.ID(p.id)}, nil
	case protocol.TagSendMessageRequest:
		return protocol.SendMessageRequest{From: protocol.ID(p.from), To: protocol.ID(p.to), Message: p.text}, nil
	case protocol.TagServerTypeRequest:
		return protocol.ServerTypeRequest{}, nil
	case protocol.TagTextListResponse:
		ids, err := parseIDs(p.ids)
		return protocol.TextListResponse{IDs: ids}, err
	case protocol.TagTextResponse:
		return protocol.TextResponse{Text: p.text}, nil
	case protocol.TagNotFoundResponse:
		return protocol.NotFoundResponse{}, nil
	case protocol.TagMediaListResponse:
		ids, err := parseIDs(p.ids)
		return protocol.MediaListResponse{IDs: ids}, err
	case protocol.TagMediaResponse:
		body, err := readBody(p)
		return protocol.MediaResponse{Media: body}, err
	case protocol.TagClientListResponse:
		ids, err := parseIDs(p.ids)
		return protocol.ClientListResponse{Clients: ids}, err
	case protocol.TagMessageFromResponse:
		body, err := readBody(p)
		return protocol.MessageFromResponse{From: protocol.ID(p.from), Message: body}, err
	case protocol.TagMessageSentResponse:
		return protocol.MessageSentResponse{}, nil
	case protocol.TagServerTypeResponse:
		kind, ok := protocol.ParseServerKind(p.serverKind)
		if !ok {
			return nil, fmt.Errorf("--server-kind must be text, media or chat, got %q", p.serverKind)
		}
		return protocol.ServerTypeResponse{Kind: kind}, nil
	case protocol.TagWrongClientIDResponse:
		return protocol.WrongClientIDResponse{Client: protocol.ID(p.id)}, nil
	}
	return nil, fmt.Errorf("no builder for tag %d", tag)
}

func parseIDs(raw []string) ([]protocol.ID, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	ids := make([]protocol.ID, 0, len(raw))
	for _, s := range raw {
		v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q: %w", s, err)
		}
		ids = append(ids, protocol.ID(v))
	}
	return ids, nil
}

// readBody prefers --media-file and falls back to --text.
func readBody(p sendParams) ([]byte, error) {
	if p.mediaFile == "" {
		if p.text == "" {
			return nil, nil
		}
		return []byte(p.text), nil
	}
	data, err := os.ReadFile(p.mediaFile)
	if err != nil {
		return nil, fmt.Errorf("read media file: %w", err)
	}
	return data, nil
}

func describe(msg protocol.Message) string {
	switch m := msg.(type) {
	case protocol.MediaResponse:
		return fmt.Sprintf("%s media_bytes=%d", m.Tag(), len(m.Media))
	case protocol.MessageFromResponse:
		return fmt.Sprintf("%s from=%d message=%q", m.Tag(), m.From, m.Message)
	case protocol.ServerTypeResponse:
		return fmt.Sprintf("%s kind=%s", m.Tag(), m.Kind)
	default:
		return fmt.Sprintf("%s %+v", msg.Tag(), msg)
	}
}
