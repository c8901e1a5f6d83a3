// Package trace provides structured execution tracing for the evaluator:
// one JSON line per call/return/error, to stderr by default or to a
// rotating file.
//
// Narrowed from the teacher's TraceSession (internal/trace/trace.go),
// which supports word filters, step levels and frame dumps for a
// general-purpose language debugger. The evaluation core only needs
// call-boundary and error events, so this keeps the atomic-enable /
// lumberjack-backed-file design but drops the filter/verbosity surface
// the teacher built for interactive stepping.
package trace

import (
	"encoding/json"
	"io"
	"os"
	"sync/atomic"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Event is a single trace record.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Kind      string    `json:"kind"` // "call", "return", "error"
	Name      string    `json:"name,omitempty"`
	Depth     int       `json:"depth"`
	Detail    string    `json:"detail,omitempty"`
}

// Session is a tracing sink that can be toggled on/off without
// reallocating its output destination.
type Session struct {
	enabled atomic.Bool
	sink    io.Writer
	logger  *lumberjack.Logger
	enc     *json.Encoder
}

// New creates a Session writing to stderr, or to a rotating file when
// filePath is non-empty.
func New(filePath string, maxSizeMB int) *Session {
	var sink io.Writer = os.Stderr
	var logger *lumberjack.Logger
	if filePath != "" {
		logger = &lumberjack.Logger{
			Filename:   filePath,
			MaxSize:    maxSizeMB,
			MaxBackups: 5,
			Compress:   true,
		}
		sink = logger
	}
	s := &Session{sink: sink, logger: logger}
	s.enc = json.NewEncoder(sink)
	return s
}

// Discard creates a Session whose output is dropped, for tests and
// embeddings that don't want tracing overhead.
func Discard() *Session {
	s := &Session{sink: io.Discard}
	s.enc = json.NewEncoder(io.Discard)
	return s
}

// Enable/Disable toggle emission without touching the output writer.
func (s *Session) Enable()  { s.enabled.Store(true) }
func (s *Session) Disable() { s.enabled.Store(false) }

// Emit writes an event if tracing is enabled.
func (s *Session) Emit(e Event) {
	if !s.enabled.Load() {
		return
	}
	e.Timestamp = timeNow()
	_ = s.enc.Encode(e)
}

// Close flushes and closes the underlying rotating file, if any.
func (s *Session) Close() error {
	if s.logger != nil {
		return s.logger.Close()
	}
	return nil
}

// timeNow is indirected so tests can avoid depending on wall-clock time.
var timeNow = time.Now
