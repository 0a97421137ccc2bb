// FILE: lixenwraith/filelog/utility.go
package filelog

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

// Frames of the printer front door and the compat bridges, never shown in a trace
var internalFramePrefixes = []string{
	"github.com/lixenwraith/filelog.(*LogPrinter).",
	"github.com/lixenwraith/filelog/compat.(*",
	"go.uber.org/zap.",
	"go.uber.org/zap/zapcore.",
}

// callerTrace returns up to depth frames of the code that called into the printer,
// outermost first, as "pkg.Func(file.go:line)" joined by " -> "
func callerTrace(depth int64) string {
	if depth <= 0 {
		return ""
	}
	if depth > maxTraceDepth {
		depth = maxTraceDepth
	}

	pc := make([]uintptr, int(depth)+32)
	n := runtime.Callers(2, pc) // Skip runtime.Callers and callerTrace
	if n == 0 {
		return "(unknown)"
	}

	frames := runtime.CallersFrames(pc[:n])
	trace := make([]string, 0, depth)
	for len(trace) < int(depth) {
		frame, more := frames.Next()
		if frame.Function != "" && !isInternalFrame(frame.Function) {
			trace = append(trace, filepath.Base(frame.Function)+
				"("+filepath.Base(frame.File)+":"+strconv.Itoa(frame.Line)+")")
		}
		if !more {
			break
		}
	}
	if len(trace) == 0 {
		return "(unknown)"
	}

	// Reverse for caller -> callee order
	for i, j := 0, len(trace)-1; i < j; i, j = i+1, j-1 {
		trace[i], trace[j] = trace[j], trace[i]
	}
	return strings.Join(trace, " -> ")
}

// isInternalFrame reports whether function belongs to the logging call path
func isInternalFrame(function string) bool {
	for _, prefix := range internalFramePrefixes {
		if strings.HasPrefix(function, prefix) {
			return true
		}
	}
	return false
}

// fmtErrorf wrapper
func fmtErrorf(format string, args ...any) error {
	if !strings.HasPrefix(format, "filelog: ") {
		format = "filelog: " + format
	}
	return fmt.Errorf(format, args...)
}

// combineErrors helper
func combineErrors(err1, err2 error) error {
	if err1 == nil {
		return err2
	}
	if err2 == nil {
		return err1
	}
	return fmt.Errorf("%v; %w", err1, err2)
}

// parseKeyValue splits a "key=value" string.
func parseKeyValue(arg string) (string, string, error) {
	parts := strings.SplitN(strings.TrimSpace(arg), "=", 2)
	if len(parts) != 2 {
		return "", "", fmtErrorf("invalid format in override string '%s', expected key=value", arg)
	}
	key := strings.TrimSpace(parts[0])
	value := strings.TrimSpace(parts[1])
	if key == "" {
		return "", "", fmtErrorf("key cannot be empty in override string '%s'", arg)
	}
	return key, value, nil
}

// ParseLevel converts a level name or number to its numeric value
func ParseLevel(levelStr string) (int64, error) {
	s := strings.ToLower(strings.TrimSpace(levelStr))
	switch s {
	case "verbose", "v":
		return LevelVerbose, nil
	case "debug", "d":
		return LevelDebug, nil
	case "info", "i":
		return LevelInfo, nil
	case "warn", "w":
		return LevelWarn, nil
	case "error", "e":
		return LevelError, nil
	case "assert", "a":
		return LevelAssert, nil
	case "all":
		return LevelAll, nil
	case "none":
		return LevelNone, nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	return 0, fmtErrorf("invalid level string: '%s' (use verbose, debug, info, warn, error, assert, all, none or a number)", levelStr)
}
