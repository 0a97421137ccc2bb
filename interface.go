// FILE: lixenwraith/filelog/interface.go
package filelog

import (
	"time"

	"github.com/lixenwraith/filelog/formatter"
)

// Flattener turns a record into one line of text, see package formatter
type Flattener = formatter.Flattener

// FileNameGenerator maps a level and timestamp to the file that should receive the record
type FileNameGenerator interface {
	// IsVolatile reports whether the name may change between two calls without
	// an explicit trigger, e.g. because the calendar date rolled over
	IsVolatile() bool
	// NameFor returns the target file name (base name, no directory).
	// An empty or blank result aborts the record.
	NameFor(level int64, timeMillis int64) string
}

// RetentionPolicy decides which existing files are removed when a new file is opened
type RetentionPolicy interface {
	ShouldDelete(f LogFile) bool
}

// SweepPlanner is implemented by policies that need the whole directory listing,
// e.g. count or total-size limits. PlanSweep runs once per sweep before any ShouldDelete call.
type SweepPlanner interface {
	PlanSweep(files []LogFile)
}

// FileSink owns at most one open file handle.
// Only the goroutine performing writes touches a sink.
type FileSink interface {
	// Open opens path for appending, creating it and its parent directories if absent
	Open(path string) error
	// IsOpen reports whether a file is open and still present on disk
	IsOpen() bool
	// Name returns the base name of the open file, or "" if none
	Name() string
	// Append writes line plus one line terminator and flushes it to the OS
	Append(line string) error
	// Close closes the current file, if any
	Close() error
}

// HeaderFunc returns a banner written once when a physical file is first created.
// An empty result writes nothing.
type HeaderFunc func(path string) string

// LogItem is one captured record awaiting persistence
type LogItem struct {
	TimeMillis int64
	Level      int64
	Tag        string
	Message    string

	diagnostic bool // Printed from inside the error handler
}

// LogFile is the metadata a RetentionPolicy sees for one directory entry
type LogFile struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}
