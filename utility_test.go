// FILE: lixenwraith/filelog/utility_test.go
package filelog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected int64
		wantErr  bool
	}{
		{"verbose", LevelVerbose, false},
		{"DEBUG", LevelDebug, false},
		{" info ", LevelInfo, false},
		{"w", LevelWarn, false},
		{"error", LevelError, false},
		{"assert", LevelAssert, false},
		{"all", LevelAll, false},
		{"none", LevelNone, false},
		{"-3", -3, false},
		{"invalid", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := ParseLevel(tt.input)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, level)
			}
		})
	}
}

func TestParseKeyValue(t *testing.T) {
	tests := []struct {
		input     string
		wantKey   string
		wantValue string
		wantErr   bool
	}{
		{"key=value", "key", "value", false},
		{" key = value ", "key", "value", false},
		{"key=value=with=equals", "key", "value=with=equals", false},
		{"noequals", "", "", true},
		{"=value", "", "", true},
		{"key=", "key", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			key, value, err := parseKeyValue(tt.input)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantKey, key)
				assert.Equal(t, tt.wantValue, value)
			}
		})
	}
}

func TestFmtErrorf(t *testing.T) {
	err := fmtErrorf("test error: %s", "details")
	assert.Equal(t, "filelog: test error: details", err.Error())

	err = fmtErrorf("filelog: already prefixed")
	assert.Equal(t, "filelog: already prefixed", err.Error())
}

func TestCombineErrors(t *testing.T) {
	e1 := errors.New("first")
	e2 := errors.New("second")

	assert.Nil(t, combineErrors(nil, nil))
	assert.Equal(t, e1, combineErrors(e1, nil))
	assert.Equal(t, e2, combineErrors(nil, e2))

	combined := combineErrors(e1, e2)
	assert.Equal(t, "first; second", combined.Error())
	assert.ErrorIs(t, combined, e2)
}
