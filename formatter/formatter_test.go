// FILE: lixenwraith/filelog/formatter/formatter_test.go
package formatter

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/lixenwraith/filelog/sanitizer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultFlattener(t *testing.T) {
	t.Run("round trip example", func(t *testing.T) {
		assert.Equal(t, "1000|D|T|hello", Default{}.Flatten(1000, 3, "T", "hello"))
	})

	t.Run("deterministic", func(t *testing.T) {
		a := Default{}.Flatten(1700000000123, 6, "net", "dial failed")
		b := Default{}.Flatten(1700000000123, 6, "net", "dial failed")
		assert.Equal(t, a, b)
		assert.Equal(t, "1700000000123|E|net|dial failed", a)
	})

	t.Run("no terminator added", func(t *testing.T) {
		line := Default{}.Flatten(1, 4, "t", "m")
		assert.False(t, strings.HasSuffix(line, "\n"))
	})

	t.Run("embedded newline carried through", func(t *testing.T) {
		line := Default{}.Flatten(1, 4, "t", "a\nb")
		assert.Equal(t, "1|I|t|a\nb", line)
	})

	t.Run("empty tag keeps delimiters", func(t *testing.T) {
		assert.Equal(t, "5|W||m", Default{}.Flatten(5, 5, "", "m"))
	})
}

func TestTimestampFlattener(t *testing.T) {
	ts := time.Date(2024, 3, 9, 7, 5, 4, 321*int(time.Millisecond), time.UTC)

	f := Timestamp{Location: time.UTC}
	line := f.Flatten(ts.UnixMilli(), 4, "app", "started")
	assert.Equal(t, "2024.03.09 07:05:04.321|I|app|started", line)

	custom := Timestamp{Layout: time.RFC3339, Location: time.UTC}
	assert.Equal(t, "2024-03-09T07:05:04Z|A|x|y", custom.Flatten(ts.UnixMilli(), 7, "x", "y"))
}

func TestJSONFlattener(t *testing.T) {
	line := JSON{}.Flatten(1000, 3, "T", "line1\nline2 \"quoted\" 世界")
	assert.NotContains(t, line, "\n")

	var result map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &result))
	assert.Equal(t, float64(1000), result["time"])
	assert.Equal(t, "D", result["level"])
	assert.Equal(t, "T", result["tag"])
	assert.Equal(t, "line1\nline2 \"quoted\" 世界", result["message"])

	t.Run("control and invalid bytes", func(t *testing.T) {
		line := JSON{}.Flatten(1, 4, "t", "a\x00b\xffc")
		var r map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &r))
		assert.Equal(t, "a\x00b�c", r["message"])
	})
}

func TestSanitizedFlattener(t *testing.T) {
	f := NewSanitized(Default{}, sanitizer.PolicyLine)
	assert.Equal(t, `1|E|crash|panic: boom\n\tgoroutine 1`, f.Flatten(1, 6, "crash", "panic: boom\n\tgoroutine 1"))

	field := NewSanitized(nil, sanitizer.PolicyField)
	assert.Equal(t, "1|I|a b|x y", field.Flatten(1, 4, "a|b", "x|y"))
}

func TestFlattenerFunc(t *testing.T) {
	var f Flattener = FlattenerFunc(func(ts int64, level int64, tag, msg string) string {
		return tag + ":" + msg
	})
	assert.Equal(t, "t:m", f.Flatten(0, 0, "t", "m"))
}

func TestByName(t *testing.T) {
	for _, name := range []string{"", "default", "time", "json"} {
		f, ok := ByName(name)
		assert.True(t, ok, name)
		assert.NotNil(t, f)
	}
	_, ok := ByName("xml")
	assert.False(t, ok)
}

func TestLevelNames(t *testing.T) {
	tests := []struct {
		level int64
		short string
		long  string
	}{
		{2, "V", "VERBOSE"},
		{3, "D", "DEBUG"},
		{4, "I", "INFO"},
		{5, "W", "WARN"},
		{6, "E", "ERROR"},
		{7, "A", "ASSERT"},
		{1, "V-1", "VERBOSE-1"},
		{-1, "V-3", "VERBOSE-3"},
		{8, "E+2", "ERROR+2"},
		{20, "E+14", "ERROR+14"},
	}

	for _, tt := range tests {
		t.Run(tt.long, func(t *testing.T) {
			assert.Equal(t, tt.short, ShortLevelName(tt.level))
			assert.Equal(t, tt.long, LevelName(tt.level))
		})
	}

	t.Run("extremes", func(t *testing.T) {
		assert.Equal(t, "V-9223372036854775810", ShortLevelName(math.MinInt64))
		assert.Equal(t, "E+9223372036854775801", ShortLevelName(math.MaxInt64))
	})
}

func BenchmarkDefaultFlatten(b *testing.B) {
	f := Default{}
	for i := 0; i < b.N; i++ {
		_ = f.Flatten(1700000000000, 4, "bench", "benchmark message")
	}
}
