// FILE: lixenwraith/filelog/naming.go
package filelog

import (
	"strings"
	"time"

	"github.com/lixenwraith/filelog/formatter"
)

// DateFileNameGenerator names files {prefix}_{yyyy-MM-dd}.{ext}, one per local calendar day
type DateFileNameGenerator struct {
	Prefix    string
	Extension string
	// Location is resolved at call time; nil means time.Local
	Location *time.Location
}

// NewDateFileNameGenerator creates a date generator with the "log" extension
func NewDateFileNameGenerator(prefix string) *DateFileNameGenerator {
	return &DateFileNameGenerator{Prefix: prefix, Extension: "log"}
}

// IsVolatile is always true, the date can roll over between calls
func (g *DateFileNameGenerator) IsVolatile() bool {
	return true
}

// NameFor implements FileNameGenerator
func (g *DateFileNameGenerator) NameFor(_ int64, timeMillis int64) string {
	loc := g.Location
	if loc == nil {
		loc = time.Local
	}

	var sb strings.Builder
	sb.WriteString(g.Prefix)
	sb.WriteByte('_')
	var day [10]byte
	sb.Write(time.UnixMilli(timeMillis).In(loc).AppendFormat(day[:0], "2006-01-02"))
	if g.Extension != "" {
		sb.WriteByte('.')
		sb.WriteString(g.Extension)
	}
	return sb.String()
}

// ConstantFileNameGenerator always returns the same name
type ConstantFileNameGenerator struct {
	FileName string
}

// NewConstantFileNameGenerator creates a generator for a fixed file name
func NewConstantFileNameGenerator(name string) *ConstantFileNameGenerator {
	return &ConstantFileNameGenerator{FileName: name}
}

// IsVolatile is false, the name only needs computing when no file is open
func (g *ConstantFileNameGenerator) IsVolatile() bool {
	return false
}

// NameFor implements FileNameGenerator
func (g *ConstantFileNameGenerator) NameFor(int64, int64) string {
	return g.FileName
}

// LevelFileNameGenerator names files per level: {prefix}_{LEVEL}.{ext}
type LevelFileNameGenerator struct {
	Prefix    string
	Extension string
}

// NewLevelFileNameGenerator creates a per-level generator with the "log" extension
func NewLevelFileNameGenerator(prefix string) *LevelFileNameGenerator {
	return &LevelFileNameGenerator{Prefix: prefix, Extension: "log"}
}

// IsVolatile is true, consecutive records may carry different levels
func (g *LevelFileNameGenerator) IsVolatile() bool {
	return true
}

// NameFor implements FileNameGenerator
func (g *LevelFileNameGenerator) NameFor(level int64, _ int64) string {
	name := g.Prefix + "_" + strings.ToLower(formatter.LevelName(level))
	if g.Extension != "" {
		name += "." + g.Extension
	}
	return name
}
