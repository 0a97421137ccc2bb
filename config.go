// FILE: lixenwraith/filelog/config.go
package filelog

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/lixenwraith/config"
	"github.com/lixenwraith/filelog/formatter"
	"github.com/lixenwraith/filelog/sanitizer"
)

// Settings holds the scalar configuration values that can be loaded from TOML
type Settings struct {
	// Destination
	Directory string `toml:"directory"` // Folder receiving the log files
	Prefix    string `toml:"prefix"`    // File name prefix, "crash" for crash reports
	Extension string `toml:"extension"` // File extension without dot

	// Built-in strategy selection, used when the matching Config field is nil
	Naming    string `toml:"naming"`    // "date", "level", or "constant"
	Format    string `toml:"format"`    // "default", "time", or "json"
	Retention string `toml:"retention"` // "age", "count", "size", or "never"
	Sanitize  string `toml:"sanitize"`  // "raw", "line", "hex", or "field"

	// Retention limits
	MaxAgeHrs      float64 `toml:"max_age_hrs"`       // Age limit for "age" retention
	MaxFiles       int64   `toml:"max_files"`         // File count limit for "count" retention
	MaxTotalSizeMB int64   `toml:"max_total_size_mb"` // Directory size limit for "size" retention

	// Size-capped sink, 0 keeps the plain append sink
	MaxSizeMB  int64 `toml:"max_size_mb"` // Size at which a file is moved aside as a backup
	MaxBackups int64 `toml:"max_backups"` // Backups kept per file name, 0 keeps all
	Compress   bool  `toml:"compress"`    // Gzip backups

	// Pipeline
	Synchronous   bool   `toml:"synchronous"`    // Write on the calling goroutine, no worker
	QueueCapacity int64  `toml:"queue_capacity"` // 0 is unbounded, otherwise overflow drops
	Level         int64  `toml:"level"`          // Records below this level are ignored
	DefaultTag    string `toml:"default_tag"`    // Tag used when Print receives ""
	SyncOnWrite   bool   `toml:"sync_on_write"`  // fsync after every record
	CachedClock   bool   `toml:"cached_clock"`   // Capture timestamps from a millisecond clock cache
	TraceDepth    int64  `toml:"trace_depth"`    // Caller frames prefixed to each message, 0 disables

	// Internal error handling
	InternalErrorsToStderr bool `toml:"internal_errors_to_stderr"` // Report pipeline failures on stderr
}

// Config is the full, immutable-after-New configuration of a LogPrinter
type Config struct {
	Settings

	// Strategy overrides, nil selects the built-in named by Settings
	FileNameGenerator FileNameGenerator
	RetentionPolicy   RetentionPolicy
	Flattener         Flattener
	Sink              FileSink

	// OnFileCreated writes a banner into each newly created file
	OnFileCreated HeaderFunc
	// ErrorHandler receives pipeline failures, overrides InternalErrorsToStderr
	ErrorHandler func(error)
	// Clock supplies capture and rotation time, nil means time.Now
	Clock func() time.Time
}

// defaultSettings is the single source for all configurable default values
var defaultSettings = Settings{
	Directory: "./logs",
	Prefix:    DefaultPrefix,
	Extension: "log",

	Naming:    "date",
	Format:    "default",
	Retention: "age",
	Sanitize:  string(sanitizer.PolicyRaw),

	MaxAgeHrs:      DefaultMaxAge.Hours(),
	MaxFiles:       0,
	MaxTotalSizeMB: 0,

	MaxSizeMB:  0,
	MaxBackups: 0,
	Compress:   false,

	Synchronous:   false,
	QueueCapacity: 0,
	Level:         LevelAll,
	DefaultTag:    DefaultTag,
	SyncOnWrite:   false,
	CachedClock:   false,
	TraceDepth:    0,

	InternalErrorsToStderr: true,
}

// DefaultConfig returns a copy of the default configuration
func DefaultConfig() *Config {
	return &Config{Settings: defaultSettings}
}

// NewConfigFromFile loads settings under the [filelog] table of a TOML file and returns a validated Config
func NewConfigFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	loader := config.New()

	if err := loader.RegisterStruct("filelog.", cfg.Settings); err != nil {
		return nil, fmtErrorf("failed to register config struct: %w", err)
	}

	// A missing file leaves the defaults in place
	if err := loader.Load(path, nil); err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		return nil, fmtErrorf("failed to load config from %s: %w", path, err)
	}

	if err := extractConfig(loader, "filelog.", &cfg.Settings); err != nil {
		return nil, fmtErrorf("failed to extract config values: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// NewConfigFromDefaults creates a Config with default values and applies typed overrides keyed by toml name
func NewConfigFromDefaults(overrides map[string]any) (*Config, error) {
	cfg := DefaultConfig()

	if err := applyOverrides(&cfg.Settings, overrides); err != nil {
		return nil, fmtErrorf("failed to apply overrides: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// extractConfig copies values found by the loader into settings
func extractConfig(loader *config.Config, prefix string, s *Settings) error {
	v := reflect.ValueOf(s).Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tomlTag := field.Tag.Get("toml")
		if tomlTag == "" || tomlTag == "-" {
			continue
		}

		val, found := loader.Get(prefix + tomlTag)
		if !found {
			continue
		}

		if err := setFieldValue(v.Field(i), val); err != nil {
			return fmt.Errorf("failed to set field %s: %w", field.Name, err)
		}
	}

	return nil
}

// applyOverrides applies a map of overrides to the settings
func applyOverrides(s *Settings, overrides map[string]any) error {
	v := reflect.ValueOf(s).Elem()
	t := v.Type()

	fieldMap := make(map[string]reflect.Value)
	for i := 0; i < t.NumField(); i++ {
		if tomlTag := t.Field(i).Tag.Get("toml"); tomlTag != "" {
			fieldMap[tomlTag] = v.Field(i)
		}
	}

	for key, value := range overrides {
		fieldValue, exists := fieldMap[key]
		if !exists {
			return fmt.Errorf("unknown config key: %s", key)
		}

		if err := setFieldValue(fieldValue, value); err != nil {
			return fmt.Errorf("failed to set %s: %w", key, err)
		}
	}

	return nil
}

// setFieldValue sets a reflect.Value with proper type conversion
func setFieldValue(field reflect.Value, value any) error {
	switch field.Kind() {
	case reflect.String:
		strVal, ok := value.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", value)
		}
		field.SetString(strVal)

	case reflect.Int64:
		switch v := value.(type) {
		case int64:
			field.SetInt(v)
		case int:
			field.SetInt(int64(v))
		default:
			return fmt.Errorf("expected int64, got %T", value)
		}

	case reflect.Float64:
		switch v := value.(type) {
		case float64:
			field.SetFloat(v)
		case int64:
			field.SetFloat(float64(v))
		case int:
			field.SetFloat(float64(v))
		default:
			return fmt.Errorf("expected float64, got %T", value)
		}

	case reflect.Bool:
		boolVal, ok := value.(bool)
		if !ok {
			return fmt.Errorf("expected bool, got %T", value)
		}
		field.SetBool(boolVal)

	default:
		return fmt.Errorf("unsupported field type: %v", field.Kind())
	}

	return nil
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if strings.TrimSpace(c.Directory) == "" {
		return fmtErrorf("directory cannot be empty")
	}

	if strings.HasPrefix(c.Extension, ".") {
		return fmtErrorf("extension should not start with dot: %s", c.Extension)
	}

	if c.FileNameGenerator == nil {
		switch c.Naming {
		case "date", "level", "constant":
		default:
			return fmtErrorf("invalid naming: '%s' (use date, level, or constant)", c.Naming)
		}
		if strings.TrimSpace(c.Prefix) == "" {
			return fmtErrorf("prefix cannot be empty")
		}
	}

	if c.Flattener == nil {
		if _, ok := formatter.ByName(c.Format); !ok {
			return fmtErrorf("invalid format: '%s' (use default, time, or json)", c.Format)
		}
	}

	if c.Sanitize != "" {
		if _, err := sanitizer.ParsePolicy(c.Sanitize); err != nil {
			return fmtErrorf("invalid sanitize policy: %w", err)
		}
	}

	if c.MaxAgeHrs < 0 || c.MaxFiles < 0 || c.MaxTotalSizeMB < 0 {
		return fmtErrorf("retention limits cannot be negative")
	}

	if c.RetentionPolicy == nil {
		switch c.Retention {
		case "age":
			if c.MaxAgeHrs <= 0 {
				return fmtErrorf("max_age_hrs must be positive for age retention: %f", c.MaxAgeHrs)
			}
		case "count":
			if c.MaxFiles <= 0 {
				return fmtErrorf("max_files must be positive for count retention: %d", c.MaxFiles)
			}
		case "size":
			if c.MaxTotalSizeMB <= 0 {
				return fmtErrorf("max_total_size_mb must be positive for size retention: %d", c.MaxTotalSizeMB)
			}
		case "never":
		default:
			return fmtErrorf("invalid retention: '%s' (use age, count, size, or never)", c.Retention)
		}
	}

	if c.MaxSizeMB < 0 || c.MaxBackups < 0 {
		return fmtErrorf("size cap settings cannot be negative")
	}

	if c.MaxSizeMB > 0 && c.Sink != nil {
		return fmtErrorf("max_size_mb cannot be combined with a custom sink")
	}

	if c.TraceDepth < 0 || c.TraceDepth > maxTraceDepth {
		return fmtErrorf("trace_depth must be between 0 and %d: %d", maxTraceDepth, c.TraceDepth)
	}

	if c.QueueCapacity < 0 {
		return fmtErrorf("queue_capacity cannot be negative: %d", c.QueueCapacity)
	}

	return nil
}

// Validate checks the configuration without building a printer
func (c *Config) Validate() error {
	if c == nil {
		return fmtErrorf("configuration cannot be nil")
	}
	return c.validate()
}

// Clone creates a copy of the configuration; strategy instances are shared
func (c *Config) Clone() *Config {
	copiedConfig := *c
	return &copiedConfig
}
