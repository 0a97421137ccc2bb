// FILE: lixenwraith/filelog/sink.go
package filelog

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// AppendSink is the default FileSink: one *os.File opened in append mode.
// Every Append is a single write syscall so the record reaches the OS before it returns.
type AppendSink struct {
	// SyncOnWrite additionally fsyncs after every record
	SyncOnWrite bool

	file *os.File
	path string
	name string
	buf  []byte
}

// NewAppendSink creates a closed append sink
func NewAppendSink(syncOnWrite bool) *AppendSink {
	return &AppendSink{SyncOnWrite: syncOnWrite}
}

// Open implements FileSink
func (s *AppendSink) Open(path string) error {
	if s.file != nil {
		_ = s.Close()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmtErrorf("failed to create log directory '%s': %w", filepath.Dir(path), err)
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmtErrorf("failed to open log file '%s': %w", path, err)
	}

	s.file = file
	s.path = path
	s.name = filepath.Base(path)
	return nil
}

// IsOpen implements FileSink; a file removed from disk counts as closed
func (s *AppendSink) IsOpen() bool {
	if s.file == nil {
		return false
	}
	if _, err := os.Stat(s.path); errors.Is(err, fs.ErrNotExist) {
		return false
	}
	return true
}

// Name implements FileSink
func (s *AppendSink) Name() string {
	return s.name
}

// Append implements FileSink
func (s *AppendSink) Append(line string) error {
	if s.file == nil {
		return ErrSinkClosed
	}

	s.buf = append(s.buf[:0], line...)
	s.buf = append(s.buf, '\n')
	if _, err := s.file.Write(s.buf); err != nil {
		return fmtErrorf("failed to write to log file '%s': %w", s.path, err)
	}

	if s.SyncOnWrite {
		if err := s.file.Sync(); err != nil {
			return fmtErrorf("failed to sync log file '%s': %w", s.path, err)
		}
	}
	return nil
}

// Close implements FileSink
func (s *AppendSink) Close() error {
	if s.file == nil {
		return nil
	}

	err := s.file.Close()
	s.file = nil
	s.path = ""
	s.name = ""
	if err != nil {
		return fmtErrorf("failed to close log file: %w", err)
	}
	return nil
}
