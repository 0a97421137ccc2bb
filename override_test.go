// FILE: lixenwraith/filelog/override_test.go
package filelog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigFromOverrides(t *testing.T) {
	tests := []struct {
		name      string
		overrides []string
		verify    func(t *testing.T, cfg *Config)
		wantError string
	}{
		{
			name:      "basic overrides",
			overrides: []string{"directory=/tmp/app", "level=warn", "format=json", "naming=level"},
			verify: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "/tmp/app", cfg.Directory)
				assert.Equal(t, LevelWarn, cfg.Level)
				assert.Equal(t, "json", cfg.Format)
				assert.Equal(t, "level", cfg.Naming)
			},
		},
		{
			name:      "numeric level and typed fields",
			overrides: []string{"level=-3", "max_age_hrs=1.5", "queue_capacity=64", "sync_on_write=true"},
			verify: func(t *testing.T, cfg *Config) {
				assert.Equal(t, int64(-3), cfg.Level)
				assert.Equal(t, 1.5, cfg.MaxAgeHrs)
				assert.Equal(t, int64(64), cfg.QueueCapacity)
				assert.True(t, cfg.SyncOnWrite)
			},
		},
		{
			name:      "whitespace tolerated",
			overrides: []string{"  retention = never "},
			verify: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "never", cfg.Retention)
			},
		},
		{
			name:      "unknown key",
			overrides: []string{"heartbeat_level=1"},
			wantError: "unknown configuration key 'heartbeat_level'",
		},
		{
			name:      "bad integer",
			overrides: []string{"max_files=many"},
			wantError: "invalid integer value for max_files",
		},
		{
			name:      "bad bool",
			overrides: []string{"synchronous=sometimes"},
			wantError: "invalid boolean value for synchronous",
		},
		{
			name:      "bad level",
			overrides: []string{"level=loud"},
			wantError: "invalid level string",
		},
		{
			name:      "missing equals",
			overrides: []string{"directory"},
			wantError: "expected key=value",
		},
		{
			name:      "multiple errors combined",
			overrides: []string{"nope=1", "max_files=x"},
			wantError: "multiple configuration errors",
		},
		{
			name:      "validation after overrides",
			overrides: []string{"retention=count"},
			wantError: "max_files must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := NewConfigFromOverrides(tt.overrides...)
			if tt.wantError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantError)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			tt.verify(t, cfg)
		})
	}
}

func TestCombineConfigErrors(t *testing.T) {
	assert.NoError(t, combineConfigErrors(nil))

	single := fmtErrorf("one")
	assert.Equal(t, single, combineConfigErrors([]error{single}))

	err := combineConfigErrors([]error{fmtErrorf("first"), fmtErrorf("second")})
	assert.Equal(t, "filelog: multiple configuration errors:\n  1. first\n  2. second", err.Error())
}
