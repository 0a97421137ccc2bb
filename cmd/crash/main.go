// FILE: lixenwraith/filelog/cmd/crash/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/lixenwraith/filelog"
	"github.com/urfave/cli/v3"
)

const appVersion = "0.1.0"

// newCrashPrinter builds the synchronous, one-file-per-day crash report printer
func newCrashPrinter(dir string, keep int64) (*filelog.LogPrinter, error) {
	return filelog.NewBuilder().
		Directory(dir).
		Prefix(filelog.CrashPrefix).
		Naming("date").
		Format("time").
		Sanitize("line").
		MaxFiles(keep).
		Synchronous(true).
		SyncOnWrite(true).
		OnFileCreated(filelog.SystemHeader("crash-demo", appVersion)).
		Build()
}

// guard records a panic with its stack before the process exits
func guard(printer *filelog.LogPrinter) {
	if r := recover(); r != nil {
		printer.Printf(filelog.LevelAssert, "panic", "%v\n%s", r, debug.Stack())
		_ = printer.Shutdown(time.Second)
		os.Exit(2)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	printer, err := newCrashPrinter(cmd.String("dir"), int64(cmd.Int("keep")))
	if err != nil {
		return err
	}
	defer guard(printer)

	printer.Info("startup", "crash reporter armed, writing to", cmd.String("dir"))

	if cmd.Bool("panic") {
		var m map[string]int
		m["boom"]++
	}

	return printer.Shutdown()
}

func main() {
	cmd := &cli.Command{
		Name:  "crash",
		Usage: "install a crash report printer and optionally trigger a panic",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "dir", Value: "./crash"},
			&cli.IntFlag{Name: "keep", Value: 10, Usage: "crash files kept"},
			&cli.BoolFlag{Name: "panic", Usage: "trigger a nil map write"},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "crash: %v\n", err)
		os.Exit(1)
	}
}
