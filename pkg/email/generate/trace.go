package generate

import (
	"github.com/Abraxas-365/mailcraft/pkg/logx"
)

// Tracer receives one event per orchestration step. Implementations must be
// safe for reuse across runs; fields carry the run id, attempt and state.
type Tracer interface {
	Event(name string, fields logx.Fields)
}

// Event names emitted by the orchestrator.
const (
	EventRunStarted        = "run_started"
	EventCallingModel      = "calling_model"
	EventCallFailed        = "model_call_failed"
	EventEmptyResponse     = "empty_model_response"
	EventValidating        = "validating_candidate"
	EventAccepted          = "candidate_accepted"
	EventRejected          = "candidate_rejected"
	EventSignatureRepeated = "error_signature_repeated"
	EventTimeout           = "run_timed_out"
	EventExhausted         = "attempts_exhausted"
)

// logTracer is the default Tracer; it forwards events to the global logger.
type logTracer struct{}

func (logTracer) Event(name string, fields logx.Fields) {
	entry := logx.WithFields(fields)
	switch name {
	case EventCallFailed, EventEmptyResponse, EventSignatureRepeated,
		EventTimeout, EventExhausted:
		entry.Warn(name)
	case EventValidating:
		entry.Debug(name)
	default:
		entry.Info(name)
	}
}
