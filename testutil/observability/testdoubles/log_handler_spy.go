package testdoubles

import (
	"context"
	"log/slog"
	"sync"
)

// SpyLogRecord is one record that reached the handler.
type SpyLogRecord struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// LogHandlerSpy is a slog.Handler that records everything at debug level and above.
type LogHandlerSpy struct {
	mu          *sync.Mutex
	records     *[]SpyLogRecord
	attrs       []slog.Attr
	recordCalls bool
}

func NewLogHandlerSpy(recordCalls bool) *LogHandlerSpy {
	return &LogHandlerSpy{mu: &sync.Mutex{}, records: &[]SpyLogRecord{}, recordCalls: recordCalls}
}

// Logger returns a *slog.Logger writing into the spy.
func (h *LogHandlerSpy) Logger() *slog.Logger {
	return slog.New(h)
}

func (h *LogHandlerSpy) Enabled(context.Context, slog.Level) bool {
	return h.recordCalls
}

func (h *LogHandlerSpy) Handle(_ context.Context, r slog.Record) error {
	attrs := make(map[string]any)
	for _, a := range h.attrs {
		attrs[a.Key] = a.Value.Any()
	}

	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Any()
		return true
	})

	h.mu.Lock()
	defer h.mu.Unlock()

	*h.records = append(*h.records, SpyLogRecord{Level: r.Level, Message: r.Message, Attrs: attrs})

	return nil
}

func (h *LogHandlerSpy) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)

	return &clone
}

func (h *LogHandlerSpy) WithGroup(string) slog.Handler {
	return h
}

// Records returns a copy of all records.
func (h *LogHandlerSpy) Records() []SpyLogRecord {
	h.mu.Lock()
	defer h.mu.Unlock()

	return append([]SpyLogRecord(nil), *h.records...)
}

func (h *LogHandlerSpy) HasMessage(message string) bool {
	for _, r := range h.Records() {
		if r.Message == message {
			return true
		}
	}

	return false
}
