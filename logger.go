// FILE: lixenwraith/filelog/logger.go
package filelog

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/agilira/go-timecache"
	"github.com/davecgh/go-spew/spew"
	"github.com/lixenwraith/filelog/formatter"
	"github.com/lixenwraith/filelog/sanitizer"
)

// LogPrinter accepts records from any goroutine and persists them to rotating files.
// In the default queued mode a single worker goroutine owns the file;
// in synchronous mode the calling goroutine writes inline.
type LogPrinter struct {
	cfg      *Config
	state    State
	pipeline *pipeline
	worker   *worker // nil in synchronous mode
	syncMu   sync.Mutex

	reporting atomic.Bool // An ErrorHandler call is in progress

	now       func() time.Time
	timeCache *timecache.TimeCache
	startTime time.Time
	dumper    *spew.ConfigState
}

// New creates a printer from a validated copy of cfg; nil uses DefaultConfig.
// No file is opened and no goroutine started until the first record.
func New(cfg *Config) (*LogPrinter, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	cfg = cfg.Clone()

	if err := cfg.validate(); err != nil {
		return nil, fmtErrorf("invalid configuration: %w", err)
	}

	p := &LogPrinter{
		cfg:       cfg,
		startTime: time.Now(),
		dumper: &spew.ConfigState{
			Indent:                  "  ",
			MaxDepth:                10,
			DisablePointerAddresses: true,
			DisableCapacities:       true,
			SortKeys:                true,
		},
	}

	switch {
	case cfg.Clock != nil:
		p.now = cfg.Clock
	case cfg.CachedClock:
		p.timeCache = timecache.NewWithResolution(time.Millisecond)
		p.now = p.timeCache.CachedTime
	default:
		p.now = time.Now
	}

	names, err := cfg.fileNameGenerator()
	if err != nil {
		return nil, err
	}
	flattener, err := cfg.flattener()
	if err != nil {
		return nil, err
	}

	p.pipeline = &pipeline{
		dir:       cfg.Directory,
		names:     names,
		retention: cfg.retentionPolicy(p.now),
		flattener: flattener,
		sink:      cfg.sink(),
		header:    cfg.OnFileCreated,
		now:       p.now,
		state:     &p.state,
		report:    p.reportError,
		internal:  func(err error) { p.internalLog("%v\n", err) },
		deferred:  cfg.Synchronous,
	}

	if !cfg.Synchronous {
		p.worker = newWorker(newQueue(int(cfg.QueueCapacity)), p.pipeline, &p.state, p.reportError)
	}

	return p, nil
}

// Flush blocks until every record printed before the call has been written, or the timeout expires.
// Synchronous printers have nothing pending and return immediately.
func (p *LogPrinter) Flush(timeout time.Duration) error {
	if p.state.ShutdownCalled.Load() {
		return ErrPrinterClosed
	}
	if p.worker == nil {
		return nil
	}
	return p.worker.flush(timeout)
}

// Shutdown writes pending records, stops the worker and closes the file.
// The printer is terminal afterwards; later records are counted as dropped.
// If no timeout is provided, uses a default of 2 seconds.
func (p *LogPrinter) Shutdown(timeout ...time.Duration) error {
	if !p.state.ShutdownCalled.CompareAndSwap(false, true) {
		return nil
	}

	effectiveTimeout := defaultTimeout
	if len(timeout) > 0 && timeout[0] > 0 {
		effectiveTimeout = timeout[0]
	}

	var finalErr error
	if p.worker != nil {
		exited, err := p.worker.shutdown(effectiveTimeout)
		finalErr = err
		// A worker that did not exit still owns the sink
		if exited {
			finalErr = combineErrors(finalErr, p.pipeline.close())
		}
	} else {
		p.syncMu.Lock()
		finalErr = p.pipeline.close()
		p.syncMu.Unlock()
	}

	if p.timeCache != nil {
		p.timeCache.Stop()
	}

	return finalErr
}

// Stats returns the current counters
func (p *LogPrinter) Stats() Snapshot {
	return p.state.snapshot()
}

// Pending returns the number of queued records not yet written
func (p *LogPrinter) Pending() int {
	if p.worker == nil {
		return 0
	}
	return p.worker.queue.len()
}

// GetConfig returns a copy of the configuration the printer was built with
func (p *LogPrinter) GetConfig() *Config {
	return p.cfg.Clone()
}

// reportError delivers a pipeline failure to the diagnostic channel, never to the caller.
// A failure raised while the handler is already running goes to stderr instead.
func (p *LogPrinter) reportError(err error) {
	if err == nil {
		return
	}
	if p.cfg.ErrorHandler != nil && p.reporting.CompareAndSwap(false, true) {
		defer p.reporting.Store(false)
		p.cfg.ErrorHandler(err)
		return
	}
	p.internalLog("%v\n", err)
}

// internalLog handles writing internal printer diagnostics to stderr, if enabled.
func (p *LogPrinter) internalLog(format string, args ...any) {
	if !p.cfg.InternalErrorsToStderr {
		return
	}

	msg := fmt.Sprintf(format, args...)
	// Ensure consistent "filelog: " prefix
	if !strings.HasPrefix(msg, "filelog: ") {
		msg = "filelog: " + msg
	}
	fmt.Fprint(os.Stderr, msg)
}

// fileNameGenerator resolves the configured or built-in generator
func (c *Config) fileNameGenerator() (FileNameGenerator, error) {
	if c.FileNameGenerator != nil {
		return c.FileNameGenerator, nil
	}

	switch c.Naming {
	case "date":
		return &DateFileNameGenerator{Prefix: c.Prefix, Extension: c.Extension}, nil
	case "level":
		return &LevelFileNameGenerator{Prefix: c.Prefix, Extension: c.Extension}, nil
	case "constant":
		name := c.Prefix
		if c.Extension != "" {
			name += "." + c.Extension
		}
		return NewConstantFileNameGenerator(name), nil
	default:
		return nil, fmtErrorf("invalid naming: '%s'", c.Naming)
	}
}

// retentionPolicy resolves the configured or built-in policy
func (c *Config) retentionPolicy(now func() time.Time) RetentionPolicy {
	if c.RetentionPolicy != nil {
		return c.RetentionPolicy
	}

	switch c.Retention {
	case "count":
		return NewMaxCountPolicy(int(c.MaxFiles))
	case "size":
		return NewMaxTotalSizePolicy(c.MaxTotalSizeMB * sizeMultiplier)
	case "never":
		return NeverDelete{}
	default:
		return &MaxAgePolicy{
			MaxAge: time.Duration(c.MaxAgeHrs * float64(time.Hour)),
			Now:    now,
		}
	}
}

// flattener resolves the configured or built-in flattener and wraps it with the sanitize policy
func (c *Config) flattener() (Flattener, error) {
	f := c.Flattener
	if f == nil {
		var ok bool
		if f, ok = formatter.ByName(c.Format); !ok {
			return nil, fmtErrorf("invalid format: '%s'", c.Format)
		}
	}

	if c.Sanitize == "" || c.Sanitize == string(sanitizer.PolicyRaw) {
		return f, nil
	}
	policy, err := sanitizer.ParsePolicy(c.Sanitize)
	if err != nil {
		return nil, fmtErrorf("invalid sanitize policy: %w", err)
	}
	return formatter.NewSanitized(f, policy), nil
}

// sink resolves the configured or built-in sink
func (c *Config) sink() FileSink {
	switch {
	case c.Sink != nil:
		return c.Sink
	case c.MaxSizeMB > 0:
		sink := NewSizeCappedSink(int(c.MaxSizeMB), int(c.MaxBackups), c.Compress)
		sink.Header = c.OnFileCreated
		return sink
	default:
		return NewAppendSink(c.SyncOnWrite)
	}
}
