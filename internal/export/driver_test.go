package export

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/neurochelplus/NeuroScreenCaster/internal/cursor"
	"github.com/neurochelplus/NeuroScreenCaster/internal/geometry"
	"github.com/neurochelplus/NeuroScreenCaster/internal/segment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct{ w, h int }

func (f fakeSource) FrameAt(tsMs float64) ([]byte, int, int, error) {
	return make([]byte, f.w*f.h*4), f.w, f.h, nil
}

type fakeEncoder struct {
	frames int
	closed bool
}

func (f *fakeEncoder) WriteFrame(rgba []byte, w, h int) error {
	f.frames++
	return nil
}
func (f *fakeEncoder) Close() error { f.closed = true; return nil }

type erroringSource struct{}

func (erroringSource) FrameAt(tsMs float64) ([]byte, int, int, error) {
	return nil, 0, 0, errors.New("decode failed")
}

func TestRunCompletesAndReportsDone(t *testing.T) {
	segs := []segment.Segment{
		{ID: "a", StartTsMs: 0, EndTsMs: 500, InitialRect: geometry.Rect{X: 0.2, Y: 0.2, W: 0.3, H: 0.3}, Spring: segment.DefaultSpring, Mode: segment.ModeFixed},
	}
	d := NewDriver(nil)
	enc := &fakeEncoder{}
	final := d.Run(segs, []cursor.Sample{{TsMs: 0, X: 0.5, Y: 0.5}}, nil, fakeSource{w: 64, h: 64}, enc, Params{
		OutputFps: 30, OutputWidth: 64, OutputHeight: 64, DurationMs: 1000, CursorSizeSetting: 1, OutputPath: "/tmp/out.mp4",
	})
	assert.False(t, final.IsRunning)
	assert.InDelta(t, 1.0, final.Progress, 1e-9)
	assert.Empty(t, final.Error)
	assert.True(t, enc.closed)
	assert.Greater(t, enc.frames, 0)
}

func TestRunPropagatesFrameSourceErrorAsTerminalStatus(t *testing.T) {
	d := NewDriver(nil)
	enc := &fakeEncoder{}
	final := d.Run(nil, nil, nil, erroringSource{}, enc, Params{
		OutputFps: 30, OutputWidth: 64, OutputHeight: 64, DurationMs: 200, CursorSizeSetting: 1, OutputPath: "/tmp/out2.mp4",
	})
	require.NotEmpty(t, final.Error)
	assert.False(t, final.IsRunning)
	assert.True(t, enc.closed)
}

func TestCancelStopsRunEarlyAndRemovesPartialFile(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "cancelled.mp4")
	require.NoError(t, os.WriteFile(outPath, []byte("partial"), 0o644))
	d := NewDriver(nil)
	d.Cancel()
	enc := &fakeEncoder{}
	final := d.Run(nil, nil, nil, fakeSource{w: 16, h: 16}, enc, Params{
		OutputFps: 30, OutputWidth: 16, OutputHeight: 16, DurationMs: 1000, CursorSizeSetting: 1, OutputPath: outPath,
	})
	assert.Equal(t, "cancelled", final.Error)
	assert.False(t, final.IsRunning)
	assert.Equal(t, 0, enc.frames)
	assert.NoFileExists(t, outPath)
}
