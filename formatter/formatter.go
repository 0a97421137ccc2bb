// FILE: lixenwraith/filelog/formatter/formatter.go
// Package formatter turns a captured log record into a single line of text.
// Flatteners never add the line terminator; the sink appends exactly one per record.
package formatter

import (
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/lixenwraith/filelog/sanitizer"
)

// Standard level bounds used for naming
const (
	levelVerbose int64 = 2
	levelError   int64 = 6
)

// Flattener converts one record into one line.
// Implementations must be pure: identical inputs give identical output.
type Flattener interface {
	Flatten(timeMillis int64, level int64, tag string, message string) string
}

// FlattenerFunc adapts a plain function to the Flattener interface
type FlattenerFunc func(timeMillis int64, level int64, tag string, message string) string

// Flatten calls f
func (f FlattenerFunc) Flatten(timeMillis int64, level int64, tag string, message string) string {
	return f(timeMillis, level, tag, message)
}

// LevelName converts integer level values to their long name
func LevelName(level int64) string {
	switch level {
	case 2:
		return "VERBOSE"
	case 3:
		return "DEBUG"
	case 4:
		return "INFO"
	case 5:
		return "WARN"
	case 6:
		return "ERROR"
	case 7:
		return "ASSERT"
	default:
		if level < levelVerbose {
			return "VERBOSE-" + strconv.FormatUint(uint64(levelVerbose-level), 10)
		}
		return "ERROR+" + strconv.FormatUint(uint64(level-levelError), 10)
	}
}

// ShortLevelName converts integer level values to the one-letter form used in lines
func ShortLevelName(level int64) string {
	switch level {
	case 2:
		return "V"
	case 3:
		return "D"
	case 4:
		return "I"
	case 5:
		return "W"
	case 6:
		return "E"
	case 7:
		return "A"
	default:
		if level < levelVerbose {
			return "V-" + strconv.FormatUint(uint64(levelVerbose-level), 10)
		}
		return "E+" + strconv.FormatUint(uint64(level-levelError), 10)
	}
}

// Default emits {epochMillis}|{level}|{tag}|{message}
type Default struct{}

// Flatten implements Flattener
func (Default) Flatten(timeMillis int64, level int64, tag string, message string) string {
	buf := make([]byte, 0, 24+len(tag)+len(message))
	buf = strconv.AppendInt(buf, timeMillis, 10)
	return string(appendFields(buf, level, tag, message))
}

// Timestamp emits a local human-readable time instead of epoch millis
type Timestamp struct {
	// Layout overrides the time layout, defaults to TimestampLayout
	Layout string
	// Location overrides the zone, defaults to time.Local
	Location *time.Location
}

// TimestampLayout is the yyyy.MM.dd HH:mm:ss.SSS layout
const TimestampLayout = "2006.01.02 15:04:05.000"

// Flatten implements Flattener
func (t Timestamp) Flatten(timeMillis int64, level int64, tag string, message string) string {
	layout := t.Layout
	if layout == "" {
		layout = TimestampLayout
	}
	loc := t.Location
	if loc == nil {
		loc = time.Local
	}

	buf := make([]byte, 0, len(layout)+8+len(tag)+len(message))
	buf = time.UnixMilli(timeMillis).In(loc).AppendFormat(buf, layout)
	return string(appendFields(buf, level, tag, message))
}

// appendFields writes the shared |level|tag|message tail
func appendFields(buf []byte, level int64, tag string, message string) []byte {
	buf = append(buf, '|')
	buf = append(buf, ShortLevelName(level)...)
	buf = append(buf, '|')
	buf = append(buf, tag...)
	buf = append(buf, '|')
	buf = append(buf, message...)
	return buf
}

// JSON emits one JSON object per line:
// {"time":1000,"level":"D","tag":"T","message":"hello"}
type JSON struct{}

// Flatten implements Flattener
func (JSON) Flatten(timeMillis int64, level int64, tag string, message string) string {
	buf := make([]byte, 0, 64+len(tag)+len(message))
	buf = append(buf, `{"time":`...)
	buf = strconv.AppendInt(buf, timeMillis, 10)
	buf = append(buf, `,"level":`...)
	buf = appendJSONString(buf, ShortLevelName(level))
	buf = append(buf, `,"tag":`...)
	buf = appendJSONString(buf, tag)
	buf = append(buf, `,"message":`...)
	buf = appendJSONString(buf, message)
	buf = append(buf, '}')
	return string(buf)
}

// appendJSONString quotes s, escaping everything that cannot appear raw in a JSON string
func appendJSONString(buf []byte, s string) []byte {
	buf = append(buf, '"')
	for i := 0; i < len(s); {
		c := s[i]
		if c >= ' ' && c != '"' && c != '\\' && c < 0x7f {
			start := i
			for i < len(s) && s[i] >= ' ' && s[i] != '"' && s[i] != '\\' && s[i] < 0x7f {
				i++
			}
			buf = append(buf, s[start:i]...)
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			buf = append(buf, "\\ufffd"...)
		} else {
			sanitizer.AppendEscaped(&buf, r)
		}
		i += size
	}
	return append(buf, '"')
}

// Sanitized cleans tag and message with a sanitizer before delegating.
// With sanitizer.PolicyLine a multi-line message stays on one physical line.
type Sanitized struct {
	next Flattener
	san  *sanitizer.Sanitizer
}

// NewSanitized wraps next, sanitizing with the given policy
func NewSanitized(next Flattener, policy sanitizer.PolicyPreset) *Sanitized {
	if next == nil {
		next = Default{}
	}
	return &Sanitized{
		next: next,
		san:  sanitizer.New().Policy(policy),
	}
}

// Flatten implements Flattener
func (s *Sanitized) Flatten(timeMillis int64, level int64, tag string, message string) string {
	return s.next.Flatten(timeMillis, level, s.san.Sanitize(tag), s.san.Sanitize(message))
}

// ByName returns the built-in flattener registered under name
func ByName(name string) (Flattener, bool) {
	switch name {
	case "default", "":
		return Default{}, true
	case "time":
		return Timestamp{}, true
	case "json":
		return JSON{}, true
	default:
		return nil, false
	}
}
