// FILE: lixenwraith/filelog/constant.go
package filelog

import (
	"math"
	"time"
)

// Log level constants, ordered; any int64 is accepted by Print
const (
	LevelVerbose int64 = 2
	LevelDebug   int64 = 3
	LevelInfo    int64 = 4
	LevelWarn    int64 = 5
	LevelError   int64 = 6
	LevelAssert  int64 = 7

	LevelAll  int64 = math.MinInt64 // Min-level value that admits every record
	LevelNone int64 = math.MaxInt64 // Min-level value that admits nothing below it
)

// Defaults
const (
	// DefaultMaxAge is the default retention age, 3 days
	DefaultMaxAge = 3 * 24 * time.Hour
	// DefaultPrefix is the file name prefix for general-purpose logging
	DefaultPrefix = "log"
	// CrashPrefix is the file name prefix used by crash-report installations
	CrashPrefix = "crash"
	// DefaultTag replaces an empty tag
	DefaultTag = "Logger"
	// EmptyMessage replaces an empty message
	EmptyMessage = "Empty/NULL log message"
)

// Timers
const (
	// Minimum wait time used throughout the package
	minWaitTime = 10 * time.Millisecond
	// Default Shutdown/Flush timeout when none is given
	defaultTimeout = 2 * time.Second
)

// Upper bound for trace_depth
const maxTraceDepth = 10

// Size multiplier for MB
const sizeMultiplier = 1024 * 1024
