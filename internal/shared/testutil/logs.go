package testutil

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// LogRecord is a captured log line with its attributes flattened, including
// those bound through Logger.With.
type LogRecord struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

type logSink struct {
	mu      sync.Mutex
	records []LogRecord
}

// LogRecorder is a slog.Handler that keeps every record in memory.
type LogRecorder struct {
	sink  *logSink
	bound []slog.Attr
	t     *testing.T
}

// NewTestLogger returns a logger backed by a LogRecorder.
func NewTestLogger(t *testing.T) (*slog.Logger, *LogRecorder) {
	rec := &LogRecorder{sink: &logSink{}, t: t}
	return slog.New(rec), rec
}

// Enabled implements slog.Handler
func (h *LogRecorder) Enabled(context.Context, slog.Level) bool { return true }

// Handle implements slog.Handler
func (h *LogRecorder) Handle(_ context.Context, r slog.Record) error {
	attrs := make(map[string]any, len(h.bound)+r.NumAttrs())
	for _, a := range h.bound {
		attrs[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Any()
		return true
	})

	h.sink.mu.Lock()
	h.sink.records = append(h.sink.records, LogRecord{Level: r.Level, Message: r.Message, Attrs: attrs})
	h.sink.mu.Unlock()

	if h.t != nil {
		h.t.Logf("[%s] %s %v", r.Level, r.Message, attrs)
	}
	return nil
}

// WithAttrs implements slog.Handler
func (h *LogRecorder) WithAttrs(attrs []slog.Attr) slog.Handler {
	bound := make([]slog.Attr, 0, len(h.bound)+len(attrs))
	bound = append(bound, h.bound...)
	bound = append(bound, attrs...)
	return &LogRecorder{sink: h.sink, bound: bound, t: h.t}
}

// WithGroup implements slog.Handler. Groups are flattened.
func (h *LogRecorder) WithGroup(string) slog.Handler { return h }

// Records returns a copy of everything logged so far.
func (h *LogRecorder) Records() []LogRecord {
	h.sink.mu.Lock()
	defer h.sink.mu.Unlock()
	out := make([]LogRecord, len(h.sink.records))
	copy(out, h.sink.records)
	return out
}

// Find returns the first record at level whose message contains msg.
func (h *LogRecorder) Find(level slog.Level, msg string) (LogRecord, bool) {
	for _, r := range h.Records() {
		if r.Level == level && strings.Contains(r.Message, msg) {
			return r, true
		}
	}
	return LogRecord{}, false
}

// AssertLogged fails the test unless a matching record was captured.
func AssertLogged(t *testing.T, h *LogRecorder, level slog.Level, msg string) LogRecord {
	t.Helper()
	r, ok := h.Find(level, msg)
	if !ok {
		t.Errorf("expected %s log containing %q", level, msg)
		for _, got := range h.Records() {
			t.Logf("  - [%s] %s", got.Level, got.Message)
		}
	}
	return r
}
