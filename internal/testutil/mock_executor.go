package testutil

import (
	"context"
	"fmt"
	"os/exec"
	"sync"

	"github.com/JPM1118/cimcheck/internal/suite"
)

// MockExecutor implements suite.Executor for testing. Each invocation runs
// `/bin/sh -c "exit N"` with N taken from ExitCodes by label (default 0).
type MockExecutor struct {
	mu        sync.Mutex
	ExitCodes map[string]int
	// Missing labels spawn a binary that does not exist.
	Missing map[string]bool
	Calls   []suite.Invocation
}

var _ suite.Executor = (*MockExecutor)(nil)

func (m *MockExecutor) Command(ctx context.Context, inv suite.Invocation) *exec.Cmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, inv)

	if m.Missing[inv.Label] {
		return exec.CommandContext(ctx, "/nonexistent/cimcheck-test-binary")
	}
	code := m.ExitCodes[inv.Label]
	return exec.CommandContext(ctx, "/bin/sh", "-c", fmt.Sprintf("echo %q; exit %d", inv.Label, code))
}

// Labels returns the labels of all spawned invocations, in order.
func (m *MockExecutor) Labels() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	labels := make([]string, len(m.Calls))
	for i, c := range m.Calls {
		labels[i] = c.Label
	}
	return labels
}
