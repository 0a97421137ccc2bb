// FILE: lixenwraith/filelog/compat/gnet.go
package compat

import (
	"fmt"
	"os"

	"github.com/lixenwraith/filelog"
	"github.com/panjf2000/gnet/v2/pkg/logging"
)

var _ logging.Logger = (*GnetAdapter)(nil)

// GnetAdapter wraps a printer to implement the gnet logging.Logger interface
type GnetAdapter struct {
	printer      Printer
	tag          string
	fatalHandler func(msg string) // Customizable fatal behavior
}

// NewGnetAdapter creates a new gnet-compatible logger adapter
func NewGnetAdapter(printer Printer, opts ...GnetOption) *GnetAdapter {
	adapter := &GnetAdapter{
		printer: printer,
		tag:     "gnet",
		fatalHandler: func(msg string) {
			os.Exit(1) // Default behavior matches gnet expectations
		},
	}

	for _, opt := range opts {
		opt(adapter)
	}

	return adapter
}

// GnetOption allows customizing adapter behavior
type GnetOption func(*GnetAdapter)

// WithFatalHandler sets a custom fatal handler
func WithFatalHandler(handler func(string)) GnetOption {
	return func(a *GnetAdapter) {
		a.fatalHandler = handler
	}
}

// WithGnetTag sets the tag of records written by the adapter
func WithGnetTag(tag string) GnetOption {
	return func(a *GnetAdapter) {
		a.tag = tag
	}
}

// Debugf logs at debug level with printf-style formatting
func (a *GnetAdapter) Debugf(format string, args ...any) {
	a.printer.Print(filelog.LevelDebug, a.tag, fmt.Sprintf(format, args...))
}

// Infof logs at info level with printf-style formatting
func (a *GnetAdapter) Infof(format string, args ...any) {
	a.printer.Print(filelog.LevelInfo, a.tag, fmt.Sprintf(format, args...))
}

// Warnf logs at warn level with printf-style formatting
func (a *GnetAdapter) Warnf(format string, args ...any) {
	a.printer.Print(filelog.LevelWarn, a.tag, fmt.Sprintf(format, args...))
}

// Errorf logs at error level with printf-style formatting
func (a *GnetAdapter) Errorf(format string, args ...any) {
	a.printer.Print(filelog.LevelError, a.tag, fmt.Sprintf(format, args...))
}

// Fatalf logs at assert level and triggers fatal handler
func (a *GnetAdapter) Fatalf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	a.printer.Print(filelog.LevelAssert, a.tag, msg)

	// Ensure log is written before exit
	_ = a.printer.Flush(fatalFlushTimeout)

	if a.fatalHandler != nil {
		a.fatalHandler(msg)
	}
}
