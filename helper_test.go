// FILE: lixenwraith/filelog/helper_test.go
package filelog

import (
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// createTestPrinter creates a queued printer writing to log.log in a temp directory
func createTestPrinter(t *testing.T, modify func(*Config)) (*LogPrinter, string) {
	t.Helper()
	tmpDir := t.TempDir()

	cfg := DefaultConfig()
	cfg.Directory = tmpDir
	cfg.Naming = "constant"
	cfg.InternalErrorsToStderr = false
	if modify != nil {
		modify(cfg)
	}

	printer, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = printer.Shutdown() })

	return printer, tmpDir
}

// readLines returns the file content split into lines, without the trailing terminator
func readLines(t *testing.T, path string) []string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	if len(content) == 0 {
		return nil
	}
	return strings.Split(strings.TrimSuffix(string(content), "\n"), "\n")
}

// fixedClock returns a settable clock for deterministic timestamps
type fixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFixedClock(t time.Time) *fixedClock {
	return &fixedClock{now: t}
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fixedClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

// errorRecorder collects reported pipeline failures
type errorRecorder struct {
	mu   sync.Mutex
	errs []error
}

func (r *errorRecorder) Handle(err error) {
	r.mu.Lock()
	r.errs = append(r.errs, err)
	r.mu.Unlock()
}

func (r *errorRecorder) Errors() []error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]error(nil), r.errs...)
}

// hookFlattener returns a flattener that runs hook before emitting the message
func hookFlattener(hook func()) Flattener {
	return flattenerHook{hook: hook}
}

type flattenerHook struct {
	hook func()
}

func (f flattenerHook) Flatten(_ int64, _ int64, _ string, message string) string {
	f.hook()
	return message
}
