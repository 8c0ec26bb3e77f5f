// Package assembler composes the message codec with the fragmenter: a message
// goes out as a fragment set and comes back from any ordering of that set.
package assembler

import (
	"fmt"

	"github.com/danmuck/assembler/internal/logging"
	"github.com/danmuck/assembler/internal/observability"
	"github.com/danmuck/assembler/internal/protocol"
	"github.com/danmuck/assembler/internal/protocol/fragment"
	"github.com/rs/zerolog"
)

const rawTag = "raw"

type Config struct {
	Limits fragment.Limits
	Logger zerolog.Logger
}

func DefaultConfig() Config {
	return Config{
		Limits: fragment.DefaultLimits(),
		Logger: logging.Component("assembler"),
	}
}

// Assembler holds no mutable state and is safe for concurrent use.
type Assembler struct {
	limits fragment.Limits
	logger zerolog.Logger
}

func New(cfg Config) *Assembler {
	return &Assembler{limits: cfg.Limits, logger: cfg.Logger}
}

func (a *Assembler) Limits() fragment.Limits {
	return a.limits
}

// Disassemble encodes msg and splits the encoding into fragments.
func (a *Assembler) Disassemble(msg protocol.Message) []fragment.Fragment {
	buf := protocol.Encode(msg)
	frags := fragment.Split(buf)
	observability.RecordTransfer(observability.DirectionDisassemble, msg.Tag().String(), len(buf), len(frags))
	a.logger.Debug().
		Str("tag", msg.Tag().String()).
		Int("bytes", len(buf)).
		Int("fragments", len(frags)).
		Msg("disassemble")
	return frags
}

// Reassemble joins frags in any order and decodes the result.
func (a *Assembler) Reassemble(frags []fragment.Fragment) (protocol.Message, error) {
	buf, err := a.join(frags)
	if err != nil {
		return nil, err
	}
	msg, err := protocol.Decode(buf)
	if err != nil {
		observability.RecordFailure(observability.StageDecode, err)
		return nil, fmt.Errorf("assembler: decode: %w", err)
	}
	observability.RecordTransfer(observability.DirectionReassemble, msg.Tag().String(), len(buf), len(frags))
	a.logger.Debug().
		Str("tag", msg.Tag().String()).
		Int("bytes", len(buf)).
		Int("fragments", len(frags)).
		Msg("reassemble")
	return msg, nil
}

// DisassembleBytes splits an opaque payload without encoding it.
func (a *Assembler) DisassembleBytes(buf []byte) []fragment.Fragment {
	frags := fragment.Split(buf)
	observability.RecordTransfer(observability.DirectionDisassemble, rawTag, len(buf), len(frags))
	a.logger.Debug().Int("bytes", len(buf)).Int("fragments", len(frags)).Msg("disassemble raw")
	return frags
}

// ReassembleBytes joins frags back into the opaque payload.
func (a *Assembler) ReassembleBytes(frags []fragment.Fragment) ([]byte, error) {
	buf, err := a.join(frags)
	if err != nil {
		return nil, err
	}
	observability.RecordTransfer(observability.DirectionReassemble, rawTag, len(buf), len(frags))
	a.logger.Debug().Int("bytes", len(buf)).Int("fragments", len(frags)).Msg("reassemble raw")
	return buf, nil
}

func (a *Assembler) join(frags []fragment.Fragment) ([]byte, error) {
	buf, err := fragment.JoinWithLimits(frags, a.limits)
	if err != nil {
		observability.RecordFailure(observability.StageJoin, err)
		return nil, fmt.Errorf("assembler: join: %w", err)
	}
	return buf, nil
}
