package observability

import (
	"errors"
	"sync"

	"github.com/danmuck/assembler/internal/protocol"
	"github.com/danmuck/assembler/internal/protocol/fragment"
	"github.com/prometheus/client_golang/prometheus"
)

// Directions used as the direction label.
const (
	DirectionDisassemble = "disassemble"
	DirectionReassemble  = "reassemble"
)

// Stages used as the stage label of the failure counter.
const (
	StageJoin   = "join"
	StageDecode = "decode"
	StageRead   = "read"
	StageVerify = "verify"
)

var (
	registerOnce sync.Once

	fragmentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "assembler",
			Name:      "fragments_total",
			Help:      "Fragments produced or consumed.",
		},
		[]string{"direction"},
	)
	messagesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "assembler",
			Name:      "messages_total",
			Help:      "Messages disassembled or reassembled, by tag.",
		},
		[]string{"direction", "tag"},
	)
	payloadBytes = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "assembler",
			Name:      "payload_bytes",
			Help:      "Encoded payload size in bytes.",
			Buckets:   prometheus.ExponentialBuckets(fragment.Capacity, 4, 10),
		},
		[]string{"direction"},
	)
	failuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "assembler",
			Name:      "failures_total",
			Help:      "Failed reassembly attempts by stage and reason.",
		},
		[]string{"stage", "reason"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(fragmentsTotal, messagesTotal, payloadBytes, failuresTotal)
	})
}

// RecordTransfer counts one successful disassemble or reassemble. tag is the
// message tag name, or "raw" for untyped payloads.
func RecordTransfer(direction, tag string, payload, fragments int) {
	RegisterMetrics()
	fragmentsTotal.WithLabelValues(direction).Add(float64(fragments))
	messagesTotal.WithLabelValues(direction, tag).Inc()
	payloadBytes.WithLabelValues(direction).Observe(float64(payload))
}

func RecordFailure(stage string, err error) {
	RegisterMetrics()
	failuresTotal.WithLabelValues(stage, Reason(err)).Inc()
}

// Reason maps an error to a stable, low-cardinality label.
func Reason(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, fragment.ErrEmptyFragmentSet):
		return "empty_set"
	case errors.Is(err, fragment.ErrDuplicateIndex):
		return "duplicate_index"
	case errors.Is(err, fragment.ErrMissingFragment):
		return "missing_fragment"
	case errors.Is(err, fragment.ErrInvalidLength):
		return "invalid_length"
	case errors.Is(err, fragment.ErrTotalMismatch):
		return "total_mismatch"
	case errors.Is(err, fragment.ErrTooManyFragments):
		return "too_many_fragments"
	case errors.Is(err, fragment.ErrShortRecord):
		return "short_record"
	case errors.Is(err, protocol.ErrUnknownTag):
		return "unknown_tag"
	case errors.Is(err, protocol.ErrInvalidValue):
		return "invalid_value"
	case errors.Is(err, protocol.ErrMalformedPayload):
		return "malformed_payload"
	}
	return "other"
}

// FailureCounter returns the failure counter child for stage and reason.
func FailureCounter(stage, reason string) prometheus.Counter {
	RegisterMetrics()
	return failuresTotal.WithLabelValues(stage, reason)
}

// WriteTextfile writes every registered metric to path in the text exposition
// format, for node_exporter's textfile collector.
func WriteTextfile(path string) error {
	RegisterMetrics()
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
