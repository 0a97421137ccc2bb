// FILE: lixenwraith/filelog/compat/zap.go
package compat

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/lixenwraith/filelog"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var _ zapcore.Core = (*ZapCore)(nil)

// ZapCore is a zapcore.Core that writes entries through a printer.
// Fields are rendered after the message as sorted key=value pairs.
type ZapCore struct {
	printer Printer
	tag     string
	enabler zapcore.LevelEnabler
	fields  []zapcore.Field
}

// NewZapCore creates a core; a nil enabler admits every level
func NewZapCore(printer Printer, tag string, enabler zapcore.LevelEnabler) *ZapCore {
	if enabler == nil {
		enabler = zapcore.DebugLevel
	}
	return &ZapCore{
		printer: printer,
		tag:     tag,
		enabler: enabler,
	}
}

// Enabled implements zapcore.LevelEnabler
func (c *ZapCore) Enabled(level zapcore.Level) bool {
	return c.enabler.Enabled(level)
}

// With implements zapcore.Core
func (c *ZapCore) With(fields []zapcore.Field) zapcore.Core {
	clone := *c
	clone.fields = make([]zapcore.Field, 0, len(c.fields)+len(fields))
	clone.fields = append(clone.fields, c.fields...)
	clone.fields = append(clone.fields, fields...)
	return &clone
}

// Check implements zapcore.Core
func (c *ZapCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

// Write implements zapcore.Core
func (c *ZapCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	enc := zapcore.NewMapObjectEncoder()
	for _, f := range c.fields {
		f.AddTo(enc)
	}
	for _, f := range fields {
		f.AddTo(enc)
	}

	var sb strings.Builder
	sb.WriteString(ent.Message)
	for _, key := range slices.Sorted(maps.Keys(enc.Fields)) {
		fmt.Fprintf(&sb, " %s=%v", key, enc.Fields[key])
	}

	tag := c.tag
	if ent.LoggerName != "" {
		tag = ent.LoggerName
	}

	c.printer.Print(ZapLevel(ent.Level), tag, sb.String())
	return nil
}

// Sync implements zapcore.Core by waiting for queued records
func (c *ZapCore) Sync() error {
	return c.printer.Flush(time.Second)
}

// ZapLevel maps a zap level onto the printer's levels
func ZapLevel(level zapcore.Level) int64 {
	switch {
	case level < zapcore.InfoLevel:
		return filelog.LevelDebug
	case level == zapcore.InfoLevel:
		return filelog.LevelInfo
	case level == zapcore.WarnLevel:
		return filelog.LevelWarn
	case level == zapcore.ErrorLevel:
		return filelog.LevelError
	default:
		return filelog.LevelAssert
	}
}

// ZapErrorHandler returns a Config.ErrorHandler that reports pipeline failures to a zap logger
func ZapErrorHandler(logger *zap.Logger) func(error) {
	return func(err error) {
		logger.Warn("file logging failure", zap.Error(err))
	}
}
