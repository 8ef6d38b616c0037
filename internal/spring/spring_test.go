package spring

import (
	"testing"

	"github.com/neurochelplus/NeuroScreenCaster/internal/geometry"
	"github.com/neurochelplus/NeuroScreenCaster/internal/segment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegrateStartsAtZeroEndsAtDuration(t *testing.T) {
	track := Integrate(nil, 1000, PreviewStepMs)
	require.NotEmpty(t, track)
	assert.Equal(t, 0.0, track[0].TsMs)
	assert.Equal(t, 1000.0, track[len(track)-1].TsMs)
	for i := 1; i < len(track); i++ {
		assert.Greater(t, track[i].TsMs, track[i-1].TsMs)
	}
}

func TestIntegrateWithNoSegmentsStaysAtFullRect(t *testing.T) {
	track := Integrate(nil, 500, PreviewStepMs)
	for _, s := range track {
		assert.InDelta(t, geometry.FullRect.X, s.Rect.X, 1e-9)
		assert.InDelta(t, geometry.FullRect.W, s.Rect.W, 1e-9)
	}
}

func TestIntegrateApproachesSegmentTarget(t *testing.T) {
	target := geometry.Rect{X: 0.2, Y: 0.2, W: 0.4, H: 0.4}
	segs := []segment.Segment{
		{ID: "a", StartTsMs: 0, EndTsMs: 2000, InitialRect: target, Spring: segment.DefaultSpring, Mode: segment.ModeFixed},
	}
	track := Integrate(segs, 2000, PreviewStepMs)
	last := track[len(track)-1].Rect
	assert.InDelta(t, target.X, last.X, 0.02)
	assert.InDelta(t, target.W, last.W, 0.02)
}

func TestSampleAtInterpolatesBetweenTrackSamples(t *testing.T) {
	track := []Sample{
		{TsMs: 0, Rect: geometry.Rect{X: 0, Y: 0, W: 1, H: 1}},
		{TsMs: 100, Rect: geometry.Rect{X: 0.5, Y: 0, W: 0.5, H: 0.5}},
	}
	r := SampleAt(track, 50)
	assert.InDelta(t, 0.25, r.X, 1e-9)
	assert.InDelta(t, 0.75, r.W, 1e-9)
}

func TestVisualBoundsExtendsPastSegmentEndForReturnTail(t *testing.T) {
	target := geometry.Rect{X: 0.1, Y: 0.1, W: 0.3, H: 0.3}
	seg := segment.Segment{ID: "a", StartTsMs: 500, EndTsMs: 1500, InitialRect: target, Spring: segment.DefaultSpring, Mode: segment.ModeFixed}
	track := Integrate([]segment.Segment{seg}, 3000, PreviewStepMs)

	start, end := VisualBounds(track, seg)
	assert.LessOrEqual(t, start, seg.StartTsMs)
	assert.GreaterOrEqual(t, end, seg.EndTsMs)
}

// With the default spring, settling back to the full frame below
// visuallyActiveDelta takes well over a second past the nominal
// segment end, so the tail must be capped at
// TimelineVisualReturnTailMs past seg.EndTsMs rather than added on top
// of wherever the spring happens to settle.
func TestVisualBoundsCapsReturnTailAtTheConfiguredMax(t *testing.T) {
	target := geometry.Rect{X: 0.1, Y: 0.1, W: 0.3, H: 0.3}
	seg := segment.Segment{ID: "a", StartTsMs: 500, EndTsMs: 1500, InitialRect: target, Spring: segment.DefaultSpring, Mode: segment.ModeFixed}
	track := Integrate([]segment.Segment{seg}, 4000, PreviewStepMs)

	_, end := VisualBounds(track, seg)
	assert.LessOrEqual(t, end, seg.EndTsMs+TimelineVisualReturnTailMs)
}
