// FILE: lixenwraith/filelog/retention.go
package filelog

import (
	"sort"
	"sync"
	"time"
)

// MaxAgePolicy deletes files whose last modification is older than MaxAge
type MaxAgePolicy struct {
	MaxAge time.Duration
	// Now is the evaluation clock, nil means time.Now
	Now func() time.Time
}

// NewMaxAgePolicy creates an age-based policy
func NewMaxAgePolicy(maxAge time.Duration) *MaxAgePolicy {
	return &MaxAgePolicy{MaxAge: maxAge}
}

// ShouldDelete implements RetentionPolicy
func (p *MaxAgePolicy) ShouldDelete(f LogFile) bool {
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	return now().Sub(f.ModTime) > p.MaxAge
}

// NeverDelete keeps every file
type NeverDelete struct{}

// ShouldDelete implements RetentionPolicy
func (NeverDelete) ShouldDelete(LogFile) bool {
	return false
}

// MaxCountPolicy keeps the Keep most recently modified files and deletes the rest
type MaxCountPolicy struct {
	Keep int

	mu     sync.Mutex
	doomed map[string]struct{}
}

// NewMaxCountPolicy creates a count-based policy
func NewMaxCountPolicy(keep int) *MaxCountPolicy {
	return &MaxCountPolicy{Keep: keep}
}

// PlanSweep implements SweepPlanner
func (p *MaxCountPolicy) PlanSweep(files []LogFile) {
	sorted := sortByModTime(files)

	doomed := make(map[string]struct{})
	// Newest first survive
	for i := len(sorted) - 1 - p.Keep; i >= 0; i-- {
		doomed[sorted[i].Path] = struct{}{}
	}

	p.mu.Lock()
	p.doomed = doomed
	p.mu.Unlock()
}

// ShouldDelete implements RetentionPolicy
func (p *MaxCountPolicy) ShouldDelete(f LogFile) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.doomed[f.Path]
	return ok
}

// MaxTotalSizePolicy deletes the oldest files until the directory total fits MaxBytes
type MaxTotalSizePolicy struct {
	MaxBytes int64

	mu     sync.Mutex
	doomed map[string]struct{}
}

// NewMaxTotalSizePolicy creates a size-based policy
func NewMaxTotalSizePolicy(maxBytes int64) *MaxTotalSizePolicy {
	return &MaxTotalSizePolicy{MaxBytes: maxBytes}
}

// PlanSweep implements SweepPlanner
func (p *MaxTotalSizePolicy) PlanSweep(files []LogFile) {
	sorted := sortByModTime(files)

	var total int64
	for _, f := range sorted {
		total += f.Size
	}

	doomed := make(map[string]struct{})
	for _, f := range sorted {
		if total <= p.MaxBytes {
			break
		}
		doomed[f.Path] = struct{}{}
		total -= f.Size
	}

	p.mu.Lock()
	p.doomed = doomed
	p.mu.Unlock()
}

// ShouldDelete implements RetentionPolicy
func (p *MaxTotalSizePolicy) ShouldDelete(f LogFile) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.doomed[f.Path]
	return ok
}

// sortByModTime returns a copy ordered oldest first
func sortByModTime(files []LogFile) []LogFile {
	sorted := make([]LogFile, len(files))
	copy(sorted, files)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ModTime.Before(sorted[j].ModTime) })
	return sorted
}
