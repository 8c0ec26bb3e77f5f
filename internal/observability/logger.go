package observability

import (
	"time"

	"github.com/rs/zerolog"
)

// Operation describes one completed CLI operation for LogOperation.
type Operation struct {
	Name      string
	Start     time.Time
	Bytes     int
	Fragments int
	Err       error
}

// LogOperation emits one structured line per operation. Failures log at
// error level with their reason label.
func LogOperation(logger zerolog.Logger, op Operation) {
	event := logger.Info()
	if op.Err != nil {
		event = logger.Error().Err(op.Err).Str("reason", Reason(op.Err))
	}
	event.
		Str("op", op.Name).
		Int("bytes", op.Bytes).
		Int("fragments", op.Fragments).
		Dur("duration", time.Since(op.Start)).
		Msg("operation")
}
