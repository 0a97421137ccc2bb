// FILE: lixenwraith/filelog/sink_lumberjack.go
package filelog

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// SizeCappedSink is a FileSink that also rolls a file aside once it reaches MaxSizeMB.
// Backups land next to the active file, so the retention sweep sees them too.
// Header, when set, is written at the top of every file a size rollover creates;
// files created by Open get theirs from the printer.
type SizeCappedSink struct {
	MaxSizeMB  int
	MaxBackups int
	Compress   bool
	Header     HeaderFunc

	lj   *lumberjack.Logger
	path string
	name string
	size int64 // Bytes in the active file
	buf  []byte
}

// NewSizeCappedSink creates a closed size-capped sink
func NewSizeCappedSink(maxSizeMB, maxBackups int, compress bool) *SizeCappedSink {
	return &SizeCappedSink{
		MaxSizeMB:  maxSizeMB,
		MaxBackups: maxBackups,
		Compress:   compress,
	}
}

// Open implements FileSink
func (s *SizeCappedSink) Open(path string) error {
	if s.lj != nil {
		_ = s.Close()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmtErrorf("failed to create log directory '%s': %w", filepath.Dir(path), err)
	}

	// lumberjack opens lazily on first write, open now so failures surface here
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmtErrorf("failed to open log file '%s': %w", path, err)
	}
	info, err := f.Stat()
	_ = f.Close()
	if err != nil {
		return fmtErrorf("failed to stat log file '%s': %w", path, err)
	}

	s.lj = &lumberjack.Logger{
		Filename:   path,
		MaxSize:    s.MaxSizeMB,
		MaxBackups: s.MaxBackups,
		Compress:   s.Compress,
		LocalTime:  true,
	}
	s.path = path
	s.name = filepath.Base(path)
	s.size = info.Size()
	return nil
}

// IsOpen implements FileSink
func (s *SizeCappedSink) IsOpen() bool {
	if s.lj == nil {
		return false
	}
	if _, err := os.Stat(s.path); errors.Is(err, fs.ErrNotExist) {
		return false
	}
	return true
}

// Name implements FileSink
func (s *SizeCappedSink) Name() string {
	return s.name
}

// Append implements FileSink
func (s *SizeCappedSink) Append(line string) error {
	if s.lj == nil {
		return ErrSinkClosed
	}

	s.buf = append(s.buf[:0], line...)
	s.buf = append(s.buf, '\n')

	// Roll over here rather than inside lumberjack so the new file gets its header first
	if s.size > 0 && s.size+int64(len(s.buf)) >= int64(s.MaxSizeMB)*sizeMultiplier {
		if err := s.lj.Rotate(); err != nil {
			return fmtErrorf("failed to roll over log file '%s': %w", s.path, err)
		}
		s.size = 0
		if err := s.writeHeader(); err != nil {
			return err
		}
	}

	return s.write(s.buf)
}

// writeHeader writes the banner for a file created by a rollover
func (s *SizeCappedSink) writeHeader() error {
	if s.Header == nil {
		return nil
	}
	banner := strings.TrimRight(s.Header(s.path), "\n")
	if banner == "" {
		return nil
	}
	return s.write([]byte(banner + "\n"))
}

// write hands p to lumberjack and tracks the active file size
func (s *SizeCappedSink) write(p []byte) error {
	n, err := s.lj.Write(p)
	s.size += int64(n)
	if err != nil {
		return fmtErrorf("failed to write to log file '%s': %w", s.path, err)
	}
	return nil
}

// Close implements FileSink
func (s *SizeCappedSink) Close() error {
	if s.lj == nil {
		return nil
	}

	err := s.lj.Close()
	s.lj = nil
	s.path = ""
	s.name = ""
	s.size = 0
	if err != nil {
		return fmtErrorf("failed to close log file: %w", err)
	}
	return nil
}
