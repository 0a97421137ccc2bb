// FILE: lixenwraith/filelog/compat/printer.go
package compat

import (
	"time"
)

// Printer is the part of *filelog.LogPrinter the adapters need
type Printer interface {
	Print(level int64, tag, message string)
	Flush(timeout time.Duration) error
}

// fatalFlushTimeout bounds the flush before a fatal or panic handler runs
const fatalFlushTimeout = 100 * time.Millisecond
