// FILE: lixenwraith/filelog/storage_test.go
package filelog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lixenwraith/filelog/formatter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingSink is an in-memory FileSink that logs every call
type recordingSink struct {
	name      string
	open      bool
	lines     []string
	calls     []string
	openErr   error
	appendErr error
}

func (s *recordingSink) Open(path string) error {
	s.calls = append(s.calls, "open "+filepath.Base(path))
	if s.openErr != nil {
		return s.openErr
	}
	s.name = filepath.Base(path)
	s.open = true
	return nil
}

func (s *recordingSink) IsOpen() bool { return s.open }
func (s *recordingSink) Name() string { return s.name }

func (s *recordingSink) Append(line string) error {
	if s.appendErr != nil {
		return s.appendErr
	}
	s.lines = append(s.lines, line)
	return nil
}

func (s *recordingSink) Close() error {
	if s.open {
		s.calls = append(s.calls, "close "+s.name)
	}
	s.open = false
	s.name = ""
	return nil
}

// countingGenerator counts NameFor calls
type countingGenerator struct {
	volatile bool
	name     string
	calls    int
}

func (g *countingGenerator) IsVolatile() bool { return g.volatile }

func (g *countingGenerator) NameFor(int64, int64) string {
	g.calls++
	return g.name
}

// recordingPolicy remembers the files it was asked about
type recordingPolicy struct {
	seen []string
	sink *recordingSink
}

func (p *recordingPolicy) ShouldDelete(f LogFile) bool {
	p.seen = append(p.seen, f.Name)
	if p.sink != nil {
		p.sink.calls = append(p.sink.calls, "sweep "+f.Name)
	}
	return false
}

func newTestPipeline(t *testing.T, g FileNameGenerator, sink FileSink) (*pipeline, *[]error) {
	var errs []error
	p := &pipeline{
		dir:       t.TempDir(),
		names:     g,
		retention: NeverDelete{},
		flattener: formatter.Default{},
		sink:      sink,
		now:       time.Now,
		state:     &State{},
		report:    func(err error) { errs = append(errs, err) },
	}
	return p, &errs
}

func TestPipelineNameRecompute(t *testing.T) {
	t.Run("stable generator computed once while open", func(t *testing.T) {
		g := &countingGenerator{name: "a.log"}
		p, _ := newTestPipeline(t, g, &recordingSink{})

		for i := 0; i < 3; i++ {
			require.NoError(t, p.writeItem(LogItem{Level: LevelInfo, Tag: "t", Message: "m"}))
		}
		assert.Equal(t, 1, g.calls)
	})

	t.Run("volatile generator computed every record", func(t *testing.T) {
		g := &countingGenerator{name: "a.log", volatile: true}
		sink := &recordingSink{}
		p, _ := newTestPipeline(t, g, sink)

		for i := 0; i < 3; i++ {
			require.NoError(t, p.writeItem(LogItem{Level: LevelInfo, Tag: "t", Message: "m"}))
		}
		assert.Equal(t, 3, g.calls)
		assert.Equal(t, []string{"open a.log"}, sink.calls, "unchanged name must not reopen")
	})

	t.Run("closed sink forces recompute", func(t *testing.T) {
		g := &countingGenerator{name: "a.log"}
		sink := &recordingSink{}
		p, _ := newTestPipeline(t, g, sink)

		require.NoError(t, p.writeItem(LogItem{Message: "1"}))
		sink.open = false
		require.NoError(t, p.writeItem(LogItem{Message: "2"}))
		assert.Equal(t, 2, g.calls)
	})
}

func TestPipelineBlankName(t *testing.T) {
	g := &countingGenerator{name: "a.log", volatile: true}
	sink := &recordingSink{}
	p, _ := newTestPipeline(t, g, sink)

	require.NoError(t, p.writeItem(LogItem{Message: "1"}))
	callsBefore := append([]string(nil), sink.calls...)

	g.name = ""
	err := p.writeItem(LogItem{Message: "2"})
	assert.ErrorIs(t, err, ErrBlankFileName)
	assert.Equal(t, callsBefore, sink.calls, "no sink state change")
	assert.True(t, sink.IsOpen())
	assert.Equal(t, "a.log", sink.Name())
	assert.Len(t, sink.lines, 1)
	assert.Equal(t, uint64(1), p.state.TotalFailed.Load())
}

func TestPipelineRotationOrder(t *testing.T) {
	g := &countingGenerator{name: "a.log", volatile: true}
	sink := &recordingSink{}
	p, _ := newTestPipeline(t, g, sink)
	policy := &recordingPolicy{sink: sink}
	p.retention = policy

	require.NoError(t, os.WriteFile(filepath.Join(p.dir, "existing.log"), nil, 0644))

	require.NoError(t, p.writeItem(LogItem{Message: "1"}))
	g.name = "b.log"
	require.NoError(t, p.writeItem(LogItem{Message: "2"}))

	assert.Equal(t, []string{
		"sweep existing.log",
		"open a.log",
		"close a.log",
		"sweep existing.log",
		"open b.log",
	}, sink.calls, "close, sweep, then open")
	assert.Equal(t, uint64(2), p.state.TotalRotations.Load())
}

func TestPipelineOpenFailure(t *testing.T) {
	g := &countingGenerator{name: "a.log"}
	sink := &recordingSink{openErr: errors.New("permission denied")}
	p, _ := newTestPipeline(t, g, sink)

	err := p.writeItem(LogItem{Message: "1"})
	require.Error(t, err)
	assert.False(t, sink.IsOpen())
	assert.Empty(t, sink.lines)

	// Next record retries from scratch
	sink.openErr = nil
	require.NoError(t, p.writeItem(LogItem{Message: "2"}))
	assert.Len(t, sink.lines, 1)
	assert.Equal(t, 2, g.calls)
}

func TestPipelineAppendFailure(t *testing.T) {
	g := &countingGenerator{name: "a.log"}
	sink := &recordingSink{}
	p, _ := newTestPipeline(t, g, sink)

	require.NoError(t, p.writeItem(LogItem{Message: "1"}))
	sink.appendErr = errors.New("disk full")

	err := p.writeItem(LogItem{Message: "2"})
	require.Error(t, err)
	assert.True(t, sink.IsOpen(), "append failure leaves the sink open")
	assert.Equal(t, uint64(1), p.state.TotalFailed.Load())
	assert.Equal(t, uint64(1), p.state.TotalRotations.Load())
}

func TestPipelineSweepSkipsDirectories(t *testing.T) {
	g := &countingGenerator{name: "a.log"}
	p, _ := newTestPipeline(t, g, &recordingSink{})
	policy := &recordingPolicy{}
	p.retention = policy

	require.NoError(t, os.Mkdir(filepath.Join(p.dir, "archive"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(p.dir, "x.txt"), nil, 0644))

	require.NoError(t, p.writeItem(LogItem{Message: "1"}))
	assert.Equal(t, []string{"x.txt"}, policy.seen)
}

func TestPipelineSweepMissingDirectory(t *testing.T) {
	g := &countingGenerator{name: "a.log"}
	p, errs := newTestPipeline(t, g, &recordingSink{})
	p.dir = filepath.Join(p.dir, "missing")

	require.NoError(t, p.writeItem(LogItem{Message: "1"}))
	assert.Empty(t, *errs)
}

func TestAppendSink(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "dir", "a.log")

	s := NewAppendSink(true)
	assert.False(t, s.IsOpen())
	assert.Equal(t, "", s.Name())
	assert.ErrorIs(t, s.Append("x"), ErrSinkClosed)

	require.NoError(t, s.Open(path))
	assert.True(t, s.IsOpen())
	assert.Equal(t, "a.log", s.Name())
	require.NoError(t, s.Append("one"))
	require.NoError(t, s.Append("two"))

	// Written before Close, no buffering between records
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\n", string(content))

	require.NoError(t, s.Close())
	assert.False(t, s.IsOpen())
	assert.NoError(t, s.Close(), "double close is a no-op")

	require.NoError(t, s.Open(path))
	require.NoError(t, s.Append("three"))
	require.NoError(t, s.Close())
	content, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\nthree\n", string(content), "reopen appends")

	t.Run("removed file reports closed", func(t *testing.T) {
		require.NoError(t, s.Open(path))
		defer s.Close()
		require.NoError(t, os.Remove(path))
		assert.False(t, s.IsOpen())
	})
}

func TestSizeCappedSinkBasics(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "sub", "capped.log")

	s := NewSizeCappedSink(1, 2, false)
	assert.ErrorIs(t, s.Append("x"), ErrSinkClosed)

	require.NoError(t, s.Open(path))
	assert.FileExists(t, path, "open creates the file")
	assert.True(t, s.IsOpen())
	assert.Equal(t, "capped.log", s.Name())

	require.NoError(t, s.Append("line"))
	require.NoError(t, s.Close())
	assert.False(t, s.IsOpen())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "line\n", string(content))

	t.Run("open failure surfaces", func(t *testing.T) {
		blocker := filepath.Join(tmpDir, "blocker")
		require.NoError(t, os.WriteFile(blocker, nil, 0644))
		assert.Error(t, s.Open(filepath.Join(blocker, "x.log")))
		assert.False(t, s.IsOpen())
	})
}
