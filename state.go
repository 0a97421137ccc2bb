// FILE: lixenwraith/filelog/state.go
package filelog

import (
	"sync/atomic"
)

// State encapsulates the runtime counters of a printer
type State struct {
	ShutdownCalled atomic.Bool
	DropReported   atomic.Bool // Set after the first drop of an overflow episode was reported

	TotalProcessed atomic.Uint64 // Records appended to a file
	TotalDropped   atomic.Uint64 // Records rejected by a full queue or after shutdown
	TotalFailed    atomic.Uint64 // Records aborted by a blank name or I/O failure
	TotalRotations atomic.Uint64 // Files opened by the rotation step
	TotalDeletions atomic.Uint64 // Files removed by retention sweeps
	TotalRestarts  atomic.Uint64 // Worker goroutines started after the first

	HeartbeatSequence atomic.Uint64 // Counter for heartbeat sequence numbers
}

// Snapshot is a point-in-time copy of the printer counters
type Snapshot struct {
	Processed uint64
	Dropped   uint64
	Failed    uint64
	Rotations uint64
	Deletions uint64
	Restarts  uint64
}

// snapshot reads every counter
func (s *State) snapshot() Snapshot {
	return Snapshot{
		Processed: s.TotalProcessed.Load(),
		Dropped:   s.TotalDropped.Load(),
		Failed:    s.TotalFailed.Load(),
		Rotations: s.TotalRotations.Load(),
		Deletions: s.TotalDeletions.Load(),
		Restarts:  s.TotalRestarts.Load(),
	}
}
