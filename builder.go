// FILE: lixenwraith/filelog/builder.go
package filelog

import (
	"time"
)

// Builder provides a fluent API for building printer configurations.
// It wraps a Config instance and provides chainable methods for setting values.
type Builder struct {
	cfg *Config
	err error // Accumulate errors for deferred handling
}

// NewBuilder creates a new configuration builder with default values.
func NewBuilder() *Builder {
	return &Builder{
		cfg: DefaultConfig(),
	}
}

// Build creates a new LogPrinter with the specified configuration.
func (b *Builder) Build() (*LogPrinter, error) {
	if b.err != nil {
		return nil, b.err
	}
	return New(b.cfg)
}

// Config returns the validated configuration without building a printer.
func (b *Builder) Config() (*Config, error) {
	if b.err != nil {
		return nil, b.err
	}
	if err := b.cfg.validate(); err != nil {
		return nil, err
	}
	return b.cfg.Clone(), nil
}

// Directory sets the log directory.
func (b *Builder) Directory(dir string) *Builder {
	b.cfg.Directory = dir
	return b
}

// Prefix sets the file name prefix.
func (b *Builder) Prefix(prefix string) *Builder {
	b.cfg.Prefix = prefix
	return b
}

// Extension sets the file extension.
func (b *Builder) Extension(ext string) *Builder {
	b.cfg.Extension = ext
	return b
}

// Level sets the minimum level.
func (b *Builder) Level(level int64) *Builder {
	b.cfg.Level = level
	return b
}

// LevelString sets the minimum level from a string.
func (b *Builder) LevelString(level string) *Builder {
	if b.err != nil {
		return b
	}
	levelVal, err := ParseLevel(level)
	if err != nil {
		b.err = err
		return b
	}
	b.cfg.Level = levelVal
	return b
}

// Format selects a built-in flattener by name.
func (b *Builder) Format(format string) *Builder {
	b.cfg.Format = format
	return b
}

// Naming selects a built-in file name generator by name.
func (b *Builder) Naming(naming string) *Builder {
	b.cfg.Naming = naming
	return b
}

// Sanitize sets the sanitizer policy applied to tag and message.
func (b *Builder) Sanitize(policy string) *Builder {
	b.cfg.Sanitize = policy
	return b
}

// MaxAge selects age retention with the given limit.
func (b *Builder) MaxAge(d time.Duration) *Builder {
	b.cfg.Retention = "age"
	b.cfg.MaxAgeHrs = d.Hours()
	return b
}

// MaxFiles selects count retention.
func (b *Builder) MaxFiles(n int64) *Builder {
	b.cfg.Retention = "count"
	b.cfg.MaxFiles = n
	return b
}

// MaxTotalSizeMB selects total size retention.
func (b *Builder) MaxTotalSizeMB(size int64) *Builder {
	b.cfg.Retention = "size"
	b.cfg.MaxTotalSizeMB = size
	return b
}

// KeepForever disables retention.
func (b *Builder) KeepForever() *Builder {
	b.cfg.Retention = "never"
	return b
}

// MaxSizeMB enables the size-capped sink.
func (b *Builder) MaxSizeMB(size int64) *Builder {
	b.cfg.MaxSizeMB = size
	return b
}

// MaxBackups sets how many size-capped backups are kept.
func (b *Builder) MaxBackups(n int64) *Builder {
	b.cfg.MaxBackups = n
	return b
}

// Synchronous writes on the calling goroutine instead of a worker.
func (b *Builder) Synchronous(enable bool) *Builder {
	b.cfg.Synchronous = enable
	return b
}

// QueueCapacity bounds the queue, 0 is unbounded.
func (b *Builder) QueueCapacity(capacity int64) *Builder {
	b.cfg.QueueCapacity = capacity
	return b
}

// DefaultTag sets the tag used for records printed with an empty tag.
func (b *Builder) DefaultTag(tag string) *Builder {
	b.cfg.DefaultTag = tag
	return b
}

// SyncOnWrite fsyncs after every record.
func (b *Builder) SyncOnWrite(enable bool) *Builder {
	b.cfg.SyncOnWrite = enable
	return b
}

// CachedClock captures timestamps from a millisecond clock cache.
func (b *Builder) CachedClock(enable bool) *Builder {
	b.cfg.CachedClock = enable
	return b
}

// TraceDepth prefixes each message with up to depth caller frames, 0 disables.
func (b *Builder) TraceDepth(depth int64) *Builder {
	b.cfg.TraceDepth = depth
	return b
}

// InternalErrorsToStderr toggles stderr diagnostics.
func (b *Builder) InternalErrorsToStderr(enable bool) *Builder {
	b.cfg.InternalErrorsToStderr = enable
	return b
}

// FileNameGenerator sets a custom generator.
func (b *Builder) FileNameGenerator(g FileNameGenerator) *Builder {
	b.cfg.FileNameGenerator = g
	return b
}

// RetentionPolicy sets a custom policy.
func (b *Builder) RetentionPolicy(rp RetentionPolicy) *Builder {
	b.cfg.RetentionPolicy = rp
	return b
}

// Flattener sets a custom flattener.
func (b *Builder) Flattener(f Flattener) *Builder {
	b.cfg.Flattener = f
	return b
}

// Sink sets a custom sink.
func (b *Builder) Sink(s FileSink) *Builder {
	b.cfg.Sink = s
	return b
}

// OnFileCreated sets the header hook.
func (b *Builder) OnFileCreated(h HeaderFunc) *Builder {
	b.cfg.OnFileCreated = h
	return b
}

// ErrorHandler routes diagnostics to fn instead of stderr.
func (b *Builder) ErrorHandler(fn func(error)) *Builder {
	b.cfg.ErrorHandler = fn
	return b
}

// Clock overrides the capture and rotation clock.
func (b *Builder) Clock(now func() time.Time) *Builder {
	b.cfg.Clock = now
	return b
}

// Example usage:
// printer, err := filelog.NewBuilder().
//
//	Directory("/var/log/app").
//	Prefix("crash").
//	LevelString("warn").
//	MaxAge(72 * time.Hour).
//	Build()
//
// if err == nil {
//
//	 defer printer.Shutdown()
//	 printer.Info("main", "printer initialized")
//
// }
