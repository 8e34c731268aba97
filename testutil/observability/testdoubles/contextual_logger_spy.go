package testdoubles

import (
	"context"
	"slices"
	"sync"

	"github.com/parsaloi/value-driven-domain-pattern/eventstore"
)

// SpyContextualLogRecord is one recorded contextual log call.
type SpyContextualLogRecord struct {
	Level   string
	Message string
	Args    []any
	Context context.Context
}

// ContextualLoggerSpy records ContextualLogger calls.
type ContextualLoggerSpy struct {
	mu          sync.Mutex
	records     []SpyContextualLogRecord
	recordCalls bool
}

func NewContextualLoggerSpy(recordCalls bool) *ContextualLoggerSpy {
	return &ContextualLoggerSpy{recordCalls: recordCalls}
}

func (s *ContextualLoggerSpy) DebugContext(ctx context.Context, msg string, args ...any) {
	s.record(ctx, "debug", msg, args)
}

func (s *ContextualLoggerSpy) InfoContext(ctx context.Context, msg string, args ...any) {
	s.record(ctx, "info", msg, args)
}

func (s *ContextualLoggerSpy) WarnContext(ctx context.Context, msg string, args ...any) {
	s.record(ctx, "warn", msg, args)
}

func (s *ContextualLoggerSpy) ErrorContext(ctx context.Context, msg string, args ...any) {
	s.record(ctx, "error", msg, args)
}

func (s *ContextualLoggerSpy) record(ctx context.Context, level, msg string, args []any) {
	if !s.recordCalls {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, SpyContextualLogRecord{Level: level, Message: msg, Args: args, Context: ctx})
}

// Records returns a copy of all records of the given level, all levels for "".
func (s *ContextualLoggerSpy) Records(level string) []SpyContextualLogRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	if level == "" {
		return slices.Clone(s.records)
	}

	var out []SpyContextualLogRecord
	for _, r := range s.records {
		if r.Level == level {
			out = append(out, r)
		}
	}

	return out
}

// HasLog reports whether a record with level and message exists.
func (s *ContextualLoggerSpy) HasLog(level, message string) bool {
	for _, r := range s.Records(level) {
		if r.Message == message {
			return true
		}
	}

	return false
}

var _ eventstore.ContextualLogger = (*ContextualLoggerSpy)(nil)
