// FILE: lixenwraith/filelog/errors.go
package filelog

import "errors"

var (
	// ErrBlankFileName is reported when the FileNameGenerator returns an empty or blank name
	ErrBlankFileName = errors.New("filelog: file name generator returned a blank name")
	// ErrSinkClosed is returned by a sink asked to append with no file open
	ErrSinkClosed = errors.New("filelog: sink has no open file")
	// ErrPrinterClosed is returned by Flush after Shutdown
	ErrPrinterClosed = errors.New("filelog: printer is shut down")
	// ErrQueueFull is reported when a bounded queue rejects a record
	ErrQueueFull = errors.New("filelog: queue full, record dropped")
)
