// FILE: lixenwraith/filelog/record.go
package filelog

import (
	"fmt"
	"strings"
)

// Print captures a record with the current time and hands it to the pipeline.
// It never blocks on file I/O in queued mode and never returns or panics on failure.
// An empty tag is replaced by the configured default tag, an empty message by EmptyMessage.
func (p *LogPrinter) Print(level int64, tag, message string) {
	if level < p.cfg.Level {
		return
	}
	if p.state.ShutdownCalled.Load() {
		p.state.TotalDropped.Add(1)
		return
	}

	if tag == "" {
		tag = p.cfg.DefaultTag
	}
	if message == "" {
		message = EmptyMessage
	}
	if p.cfg.TraceDepth > 0 {
		if trace := callerTrace(p.cfg.TraceDepth); trace != "" {
			message = trace + "|" + message
		}
	}

	item := LogItem{
		TimeMillis: p.now().UnixMilli(),
		Level:      level,
		Tag:        tag,
		Message:    message,
		diagnostic: p.reporting.Load(),
	}

	if p.worker == nil {
		p.writeSync(item)
		return
	}
	p.worker.enqueue(item)
}

// writeSync runs the pipeline on the calling goroutine.
// Failures are reported after syncMu is released so an error handler may print again.
func (p *LogPrinter) writeSync(item LogItem) {
	for _, err := range p.writeLocked(item) {
		p.pipeline.deliver(item.diagnostic, err)
	}
}

// writeLocked writes item under syncMu and returns the failures it raised
func (p *LogPrinter) writeLocked(item LogItem) (held []error) {
	p.syncMu.Lock()
	defer p.syncMu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			p.state.TotalFailed.Add(1)
			p.pipeline.notify(fmtErrorf("write aborted after panic: %v", r))
		}
		held = p.pipeline.takeHeld()
	}()

	if p.state.ShutdownCalled.Load() {
		p.state.TotalDropped.Add(1)
		return nil
	}

	if err := p.pipeline.writeItem(item); err != nil {
		p.pipeline.notify(err)
	}
	return nil
}

// Printf formats according to a format specifier and prints the result
func (p *LogPrinter) Printf(level int64, tag, format string, args ...any) {
	if level < p.cfg.Level {
		return
	}
	p.Print(level, tag, fmt.Sprintf(format, args...))
}

// Verbose prints args joined by spaces at verbose level
func (p *LogPrinter) Verbose(tag string, args ...any) {
	p.printArgs(LevelVerbose, tag, args)
}

// Debug prints args joined by spaces at debug level
func (p *LogPrinter) Debug(tag string, args ...any) {
	p.printArgs(LevelDebug, tag, args)
}

// Info prints args joined by spaces at info level
func (p *LogPrinter) Info(tag string, args ...any) {
	p.printArgs(LevelInfo, tag, args)
}

// Warn prints args joined by spaces at warn level
func (p *LogPrinter) Warn(tag string, args ...any) {
	p.printArgs(LevelWarn, tag, args)
}

// Error prints args joined by spaces at error level
func (p *LogPrinter) Error(tag string, args ...any) {
	p.printArgs(LevelError, tag, args)
}

// Assert prints args joined by spaces at assert level
func (p *LogPrinter) Assert(tag string, args ...any) {
	p.printArgs(LevelAssert, tag, args)
}

// Dump prints a deep, multi-line rendering of values
func (p *LogPrinter) Dump(level int64, tag string, values ...any) {
	if level < p.cfg.Level {
		return
	}
	p.Print(level, tag, strings.TrimRight(p.dumper.Sdump(values...), "\n"))
}

// printArgs skips formatting work for filtered levels
func (p *LogPrinter) printArgs(level int64, tag string, args []any) {
	if level < p.cfg.Level {
		return
	}
	p.Print(level, tag, joinArgs(args))
}

// joinArgs renders args separated by single spaces
func joinArgs(args []any) string {
	if len(args) == 0 {
		return ""
	}
	return strings.TrimSuffix(fmt.Sprintln(args...), "\n")
}
