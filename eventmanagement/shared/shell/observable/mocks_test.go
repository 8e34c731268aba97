package observable_test

import (
	"context"
	"sync"

	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/shared/shell"
)

type mockCommand struct {
	Name string
}

func (mockCommand) CommandType() string { return "TestCommand" }

type mockCommandHandler struct {
	mu     sync.Mutex
	result shell.HandlerResult
	err    error
	calls  []mockCommand
}

func (h *mockCommandHandler) Handle(_ context.Context, command mockCommand) (shell.HandlerResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.calls = append(h.calls, command)

	return h.result, h.err
}

type mockQuery struct{}

func (mockQuery) QueryType() string    { return "TestQuery" }
func (mockQuery) SnapshotType() string { return "TestQuery" }

type mockResult struct {
	Items          []string
	SequenceNumber uint
}

func (r mockResult) GetSequenceNumber() uint { return r.SequenceNumber }

type mockQueryHandler struct {
	result mockResult
	err    error
}

func (h mockQueryHandler) Handle(context.Context, mockQuery) (mockResult, error) {
	return h.result, h.err
}

func (mockQueryHandler) ExposeEventStore() shell.QueriesEvents          { return nil }
func (mockQueryHandler) ExposeMetricsCollector() shell.MetricsCollector { return nil }
func (mockQueryHandler) ExposeTracingCollector() shell.TracingCollector { return nil }
func (mockQueryHandler) ExposeContextualLogger() shell.ContextualLogger { return nil }
func (mockQueryHandler) ExposeLogger() shell.Logger                     { return nil }
