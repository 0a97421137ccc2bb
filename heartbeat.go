// FILE: lixenwraith/filelog/heartbeat.go
package filelog

import (
	"fmt"
	"runtime"
	"strings"
	"time"
)

// HeartbeatTag is the tag of records written by Heartbeat
const HeartbeatTag = "heartbeat"

// Heartbeat prints the printer's own statistics as ordinary records.
// detail 1 writes the pipeline counters, 2 adds runtime memory statistics.
// It is caller-driven; the printer runs no timers.
func (p *LogPrinter) Heartbeat(level int64, detail int) {
	if detail <= 0 || level < p.cfg.Level {
		return
	}

	sequence := p.state.HeartbeatSequence.Add(1)
	stats := p.state.snapshot()

	procArgs := []any{
		"type", "proc",
		"sequence", sequence,
		"uptime_hours", fmt.Sprintf("%.2f", time.Since(p.startTime).Hours()),
		"processed", stats.Processed,
		"dropped", stats.Dropped,
		"failed", stats.Failed,
		"rotations", stats.Rotations,
		"deletions", stats.Deletions,
		"restarts", stats.Restarts,
		"pending", p.Pending(),
	}
	p.Print(level, HeartbeatTag, formatPairs(procArgs))

	if detail >= 2 {
		var memStats runtime.MemStats
		runtime.ReadMemStats(&memStats)

		sysArgs := []any{
			"type", "sys",
			"sequence", sequence,
			"alloc_mb", fmt.Sprintf("%.2f", float64(memStats.Alloc)/(1000*1000)),
			"sys_mb", fmt.Sprintf("%.2f", float64(memStats.Sys)/(1000*1000)),
			"num_gc", memStats.NumGC,
			"num_goroutine", runtime.NumGoroutine(),
		}
		p.Print(level, HeartbeatTag, formatPairs(sysArgs))
	}
}

// formatPairs renders alternating keys and values as key=value pairs
func formatPairs(args []any) string {
	var sb strings.Builder
	for i := 0; i+1 < len(args); i += 2 {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%v=%v", args[i], args[i+1])
	}
	return sb.String()
}
