package protocol

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownTag       = errors.New("protocol: unknown tag")
	ErrMalformedPayload = errors.New("protocol: malformed payload")
	ErrInvalidValue     = errors.New("protocol: invalid field value")
)

// UnknownTagError reports a tag byte with no registered variant.
type UnknownTagError struct {
	Tag Tag
}

func (e UnknownTagError) Error() string {
	return fmt.Sprintf("protocol: unknown tag %d", uint8(e.Tag))
}

func (e UnknownTagError) Is(target error) bool {
	return target == ErrUnknownTag
}

func malformed(tag Tag, err error) error {
	return fmt.Errorf("%w: tag %d: %w", ErrMalformedPayload, uint8(tag), err)
}
