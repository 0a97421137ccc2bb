// FILE: lixenwraith/filelog/storage.go
package filelog

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// pipeline performs rotation, retention and the append for one record.
// It is owned by exactly one goroutine at a time: the worker, or the synchronous caller under syncMu.
type pipeline struct {
	dir       string
	names     FileNameGenerator
	retention RetentionPolicy
	flattener Flattener
	sink      FileSink
	header    HeaderFunc
	now       func() time.Time
	state     *State
	report    func(error) // Diagnostic channel, may call back into the printer
	internal  func(error) // stderr-only channel for failures of diagnostic records

	deferred   bool    // Hold reports until the caller has released its lock
	held       []error // Reports waiting for takeHeld
	diagnostic bool    // The record being written was printed by an error handler

	lastName string // Most recently computed non-blank name
}

// writeItem persists one record, returning the reason it was aborted, if any
func (p *pipeline) writeItem(item LogItem) error {
	p.diagnostic = item.diagnostic

	name := p.lastName
	if name == "" || !p.sink.IsOpen() || p.names.IsVolatile() {
		name = p.names.NameFor(item.Level, p.now().UnixMilli())
		if strings.TrimSpace(name) == "" {
			p.state.TotalFailed.Add(1)
			return ErrBlankFileName
		}
		p.lastName = name
	}

	if name != p.sink.Name() || !p.sink.IsOpen() {
		if err := p.rotate(name); err != nil {
			p.state.TotalFailed.Add(1)
			return err
		}
	}

	line := p.flattener.Flatten(item.TimeMillis, item.Level, item.Tag, item.Message)
	if err := p.sink.Append(line); err != nil {
		p.state.TotalFailed.Add(1)
		return err
	}

	p.state.TotalProcessed.Add(1)
	return nil
}

// rotate closes the current file, sweeps the directory, then opens name
func (p *pipeline) rotate(name string) error {
	if err := p.sink.Close(); err != nil {
		p.notify(err)
	}

	// Sweep before opening so the new file is never evaluated
	p.sweep()

	path := filepath.Join(p.dir, name)
	_, statErr := os.Stat(path)
	created := errors.Is(statErr, fs.ErrNotExist)

	if err := p.sink.Open(path); err != nil {
		_ = p.sink.Close()
		return err
	}
	p.state.TotalRotations.Add(1)

	if created && p.header != nil {
		if banner := strings.TrimRight(p.header(path), "\n"); banner != "" {
			if err := p.sink.Append(banner); err != nil {
				p.notify(fmtErrorf("failed to write header to '%s': %w", path, err))
			}
		}
	}
	return nil
}

// sweep applies the retention policy to every regular file in the directory
func (p *pipeline) sweep() {
	entries, err := os.ReadDir(p.dir)
	if err != nil {
		// First rotation into a directory that does not exist yet
		if !errors.Is(err, fs.ErrNotExist) {
			p.notify(fmtErrorf("failed to read log directory '%s' for cleanup: %w", p.dir, err))
		}
		return
	}

	files := make([]LogFile, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		info, errInfo := entry.Info()
		if errInfo != nil {
			continue
		}
		files = append(files, LogFile{
			Path:    filepath.Join(p.dir, entry.Name()),
			Name:    entry.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	if planner, ok := p.retention.(SweepPlanner); ok {
		planner.PlanSweep(files)
	}

	for _, f := range files {
		if !p.retention.ShouldDelete(f) {
			continue
		}
		if err := os.Remove(f.Path); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				p.notify(fmtErrorf("failed to remove old log file '%s': %w", f.Path, err))
			}
			continue
		}
		p.state.TotalDeletions.Add(1)
	}
}

// notify routes a failure raised while writing the current record
func (p *pipeline) notify(err error) {
	if p.deferred {
		p.held = append(p.held, err)
		return
	}
	p.deliver(p.diagnostic, err)
}

// deliver reports err; failures of diagnostic records never reach the error handler again
func (p *pipeline) deliver(diagnostic bool, err error) {
	if diagnostic && p.internal != nil {
		p.internal(err)
		return
	}
	p.report(err)
}

// takeHeld returns and clears the reports held in deferred mode
func (p *pipeline) takeHeld() []error {
	held := p.held
	p.held = nil
	return held
}

// close releases the sink
func (p *pipeline) close() error {
	return p.sink.Close()
}
