// FILE: lixenwraith/filelog/example/sink/main.go
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/lixenwraith/filelog"
)

const (
	logDirectory = "./temp_logs"
	logInterval  = 200 * time.Millisecond
)

// teeSink mirrors every appended line to stdout while a file sink persists it
type teeSink struct {
	*filelog.AppendSink
}

func (s teeSink) Append(line string) error {
	fmt.Println("  >", line)
	return s.AppendSink.Append(line)
}

// hourlyNames starts a new file every hour
type hourlyNames struct{}

func (hourlyNames) IsVolatile() bool { return true }

func (hourlyNames) NameFor(_ int64, timeMillis int64) string {
	return time.UnixMilli(timeMillis).Format("app_2006-01-02_15.log")
}

// keepLogs deletes only files this example created
type keepLogs struct {
	maxAge time.Duration
}

func (k keepLogs) ShouldDelete(f filelog.LogFile) bool {
	return time.Since(f.ModTime) > k.maxAge
}

func main() {
	if err := os.RemoveAll(logDirectory); err != nil {
		fmt.Printf("Warning: could not remove old log directory: %v\n", err)
	}

	fmt.Println("--- Custom Strategy Example ---")
	fmt.Printf("! All logs will be in the '%s' directory.\n\n", logDirectory)

	printer, err := filelog.NewBuilder().
		Directory(logDirectory).
		FileNameGenerator(hourlyNames{}).
		RetentionPolicy(keepLogs{maxAge: 7 * 24 * time.Hour}).
		Sink(teeSink{filelog.NewAppendSink(false)}).
		OnFileCreated(filelog.SystemHeader("sink-example", "dev")).
		ErrorHandler(func(err error) {
			fmt.Fprintln(os.Stderr, "pipeline error:", err)
		}).
		Build()
	if err != nil {
		fmt.Printf("Fatal: could not build printer: %v\n", err)
		os.Exit(1)
	}

	for i := 0; i < 3; i++ {
		printer.Info("event", "phase", i)
		printer.Warn("event", "phase", i, "done")
		time.Sleep(logInterval)
	}

	if err := printer.Shutdown(500 * time.Millisecond); err != nil {
		fmt.Printf("WARNING: shutdown error: %v\n", err)
	}

	stats := printer.Stats()
	fmt.Printf("\nprocessed=%d rotations=%d\n", stats.Processed, stats.Rotations)
}
