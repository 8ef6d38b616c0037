package compose

import (
	"testing"

	"github.com/neurochelplus/NeuroScreenCaster/internal/cursor"
	"github.com/neurochelplus/NeuroScreenCaster/internal/geometry"
	"github.com/stretchr/testify/assert"
)

func TestRectTransformCentersFullRectAtFrameCenter(t *testing.T) {
	xform := RectTransform(geometry.FullRect, 1920, 1080)
	assert.InDelta(t, 1.0, xform.Scale, 1e-9)
	x, y := xform.Apply(0.5, 0.5, 1920, 1080)
	assert.InDelta(t, 960, x, 1e-6)
	assert.InDelta(t, 540, y, 1e-6)
}

func TestRectTransformMapsZoomedRectCenterToFrameCenter(t *testing.T) {
	r := geometry.Rect{X: 0.3, Y: 0.3, W: 0.2, H: 0.2}
	xform := RectTransform(r, 1920, 1080)
	cx, cy := r.Center()
	x, y := xform.Apply(cx, cy, 1920, 1080)
	assert.InDelta(t, 960, x, 1e-6)
	assert.InDelta(t, 540, y, 1e-6)
	assert.InDelta(t, 5.0, xform.Scale, 1e-9)
}

func TestMapToTimelineScalesByDurationRatio(t *testing.T) {
	got := MapToTimeline(1000, 10000, 11000)
	assert.InDelta(t, 1100, got, 1e-9)
}

func TestComposeCursorSizeRespectsFloorAndCeiling(t *testing.T) {
	samples := []cursor.Sample{{TsMs: 0, X: 0.5, Y: 0.5}}
	xform := Transform{Scale: 1, TranslateX: 0, TranslateY: 0}
	pulse := cursor.NewPulseSignal(nil)

	tooSmall := ComposeCursor(0, samples, pulse, xform, 0.0001, 1920, 1080)
	assert.GreaterOrEqual(t, tooSmall.SizePx, CursorSizeMinPx)

	tooBig := ComposeCursor(0, samples, pulse, xform, 1000, 1920, 1080)
	assert.LessOrEqual(t, tooBig.SizePx, CursorSizeMaxPx*4) // zoomFactor can scale past the base ceiling
}

func TestComposeCursorAppliesTimingOffset(t *testing.T) {
	samples := []cursor.Sample{
		{TsMs: 0, X: 0, Y: 0},
		{TsMs: 100, X: 1, Y: 1},
	}
	xform := Transform{Scale: 1, TranslateX: 0, TranslateY: 0}
	pulse := cursor.NewPulseSignal(nil)

	placement := ComposeCursor(0, samples, pulse, xform, 1.0, 1000, 1000)
	// At tTimeline=0, the sample is taken at 0+45ms, not 0ms.
	x, _ := xform.Apply(0.45, 0.45, 1000, 1000)
	assert.InDelta(t, x, placement.X, 1.0)
}
