// FILE: lixenwraith/filelog/cmd/stress/main.go
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/filelog"
	"github.com/urfave/cli/v3"
)

var levels = []int64{
	filelog.LevelDebug,
	filelog.LevelInfo,
	filelog.LevelWarn,
	filelog.LevelError,
}

func generateRandomMessage(rng *rand.Rand, size int) string {
	const chars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789 "
	var sb strings.Builder
	sb.Grow(size)
	for i := 0; i < size; i++ {
		sb.WriteByte(chars[rng.Intn(len(chars))])
	}
	return sb.String()
}

// logBurst simulates a burst of logging activity from one producer
func logBurst(printer *filelog.LogPrinter, rng *rand.Rand, burstID, records, maxSize int) {
	for i := 0; i < records; i++ {
		level := levels[rng.Intn(len(levels))]
		msg := generateRandomMessage(rng, rng.Intn(maxSize)+10)
		printer.Printf(level, fmt.Sprintf("burst-%d", burstID), "seq=%d %s", i, msg)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	cfg, err := filelog.NewConfigFromFile(cmd.String("config"))
	if err != nil {
		return err
	}
	if err := cfg.ApplyOverride(cmd.StringSlice("set")...); err != nil {
		return err
	}
	if dir := cmd.String("dir"); dir != "" {
		cfg.Directory = dir
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	printer, err := filelog.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create printer: %w", err)
	}

	workers := cmd.Int("workers")
	bursts := cmd.Int("bursts")
	records := cmd.Int("records")
	maxSize := cmd.Int("max-message")

	fmt.Printf("Starting stress test: %d workers, %d bursts, %d records/burst into %s\n",
		workers, bursts, records, cfg.Directory)

	burstChan := make(chan int, workers)
	var completed atomic.Int64
	var wg sync.WaitGroup
	start := time.Now()

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for burstID := range burstChan {
				logBurst(printer, rng, burstID, records, maxSize)
				if n := completed.Add(1); n%10 == 0 || n == int64(bursts) {
					fmt.Printf("\rProgress: %d/%d bursts completed", n, bursts)
				}
			}
		}(time.Now().UnixNano() + int64(w))
	}

feed:
	for i := 0; i < bursts; i++ {
		select {
		case burstChan <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(burstChan)
	wg.Wait()
	fmt.Println()

	enqueued := time.Since(start)
	if err := printer.Shutdown(cmd.Duration("drain")); err != nil {
		fmt.Fprintf(os.Stderr, "Shutdown: %v\n", err)
	}

	stats := printer.Stats()
	fmt.Printf("Enqueued in %v, drained in %v\n", enqueued, time.Since(start))
	fmt.Printf("processed=%d dropped=%d failed=%d rotations=%d deletions=%d restarts=%d\n",
		stats.Processed, stats.Dropped, stats.Failed, stats.Rotations, stats.Deletions, stats.Restarts)
	return nil
}

func main() {
	cmd := &cli.Command{
		Name:  "stress",
		Usage: "flood a file printer from many goroutines and report its counters",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Value: "stress.toml", Usage: "TOML file with a [filelog] table, missing file keeps defaults"},
			&cli.StringFlag{Name: "dir", Usage: "override the log directory"},
			&cli.StringSliceFlag{Name: "set", Usage: "key=value override, repeatable"},
			&cli.IntFlag{Name: "workers", Value: 64},
			&cli.IntFlag{Name: "bursts", Value: 100},
			&cli.IntFlag{Name: "records", Value: 500, Usage: "records per burst"},
			&cli.IntFlag{Name: "max-message", Value: 2000, Usage: "upper bound of the random message size"},
			&cli.DurationFlag{Name: "drain", Value: 30 * time.Second, Usage: "shutdown timeout"},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "stress: %v\n", err)
		os.Exit(1)
	}
}
