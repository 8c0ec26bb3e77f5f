package schema

import (
	"fmt"

	"github.com/danmuck/assembler/internal/protocol/tlv"
	"github.com/rs/zerolog/log"
)

// Payload field IDs shared by all message variants.
const (
	FieldID   uint8 = 1
	FieldFrom uint8 = 2
	FieldTo   uint8 = 3
	FieldText uint8 = 4
	FieldBody uint8 = 5
	FieldIDs  uint8 = 6
	FieldKind uint8 = 7
)

// Requirement is one required payload field of a message variant.
type Requirement struct {
	ID   uint8
	Type uint8
}

type ValidationError struct {
	Tag     uint8
	FieldID uint8
	Reason  string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("schema: tag=%d field=%d: %s", e.Tag, e.FieldID, e.Reason)
}

// Validate enforces required fields and required field types for one variant.
// Unknown fields are ignored.
func Validate(tag uint8, reqs []Requirement, fields []tlv.Field) error {
	log.Debug().Msgf("schema.Validate tag=%d fields=%d", tag, len(fields))
	for _, req := range reqs {
		f, found := tlv.GetField(fields, req.ID)
		if !found {
			return ValidationError{Tag: tag, FieldID: req.ID, Reason: "missing required field"}
		}
		if f.Type != req.Type {
			return ValidationError{
				Tag:     tag,
				FieldID: req.ID,
				Reason:  fmt.Sprintf("type mismatch got=%d want=%d", f.Type, req.Type),
			}
		}
	}
	return nil
}
