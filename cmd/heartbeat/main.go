// FILE: lixenwraith/filelog/cmd/heartbeat/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lixenwraith/filelog"
	"github.com/urfave/cli/v3"
)

func run(ctx context.Context, cmd *cli.Command) error {
	printer, err := filelog.NewBuilder().
		Directory(cmd.String("dir")).
		Naming("level").
		Format("time").
		LevelString("debug").
		Build()
	if err != nil {
		return err
	}
	defer printer.Shutdown()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ticker := time.NewTicker(cmd.Duration("interval"))
	defer ticker.Stop()

	var deadline <-chan time.Time
	if d := cmd.Duration("duration"); d > 0 {
		deadline = time.After(d)
	}

	detail := cmd.Int("detail")
	fmt.Printf("Writing heartbeats (detail %d) every %v into %s\n", detail, cmd.Duration("interval"), cmd.String("dir"))

	for i := 0; ; i++ {
		select {
		case <-ticker.C:
			printer.Debug("load", "iteration", i)
			printer.Info("load", "iteration", i)
			printer.Heartbeat(filelog.LevelWarn, detail)
		case <-deadline:
			return nil
		case <-ctx.Done():
			return nil
		}
	}
}

func main() {
	cmd := &cli.Command{
		Name:  "heartbeat",
		Usage: "write periodic heartbeat records with the printer's own counters",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "dir", Value: "./logs"},
			&cli.DurationFlag{Name: "interval", Value: time.Second},
			&cli.DurationFlag{Name: "duration", Value: 10 * time.Second, Usage: "0 runs until interrupted"},
			&cli.IntFlag{Name: "detail", Value: 2, Usage: "1 for process counters, 2 adds memory statistics"},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "heartbeat: %v\n", err)
		os.Exit(1)
	}
}
