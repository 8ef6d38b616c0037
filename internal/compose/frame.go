// Package compose implements the frame composer: it turns a timeline
// timestamp into a frame transform plus a cursor placement, sampling
// the same camera track and cursor stream preview and export both
// consume; the source of the preview/export parity guarantee.
package compose

import (
	"math"

	"github.com/neurochelplus/NeuroScreenCaster/internal/cursor"
	"github.com/neurochelplus/NeuroScreenCaster/internal/geometry"
)

// CursorTimingOffsetMs compensates for video decode lag so the drawn
// cursor aligns with the on-screen interaction that produced it.
const CursorTimingOffsetMs = 45.0

// Cursor sizing constants.
const (
	CursorSizeMinPx   = 8.0
	CursorSizeMaxPx   = 280.0
	CursorSizeFactor  = 0.03
	CursorScaleFloor  = 0.25
)

// CursorSVGAspect is the fixed vector-cursor silhouette's width:height
// ratio: any re-skin must preserve this ratio and the
// tip hotspot, or preview/export drift from whatever asset produced
// the original design.
const CursorSVGAspect = 72.0 / 110.0

// Transform is the affine map from normalized source coordinates to
// frame pixel coordinates for one output frame.
type Transform struct {
	Scale      float64
	TranslateX float64
	TranslateY float64
}

// RectTransform builds the frame transform for a sampled viewport
// rect: translate((0.5-center*scale)*frameSize) then scale(scale).
func RectTransform(r geometry.Rect, frameW, frameH float64) Transform {
	scale := 1 / math.Max(r.W, r.H)
	cx, cy := r.Center()
	return Transform{
		Scale:      scale,
		TranslateX: (0.5 - cx*scale) * frameW,
		TranslateY: (0.5 - cy*scale) * frameH,
	}
}

// Apply maps a normalized source point to frame pixel coordinates.
func (t Transform) Apply(nx, ny, frameW, frameH float64) (x, y float64) {
	return nx*t.Scale*frameW + t.TranslateX, ny*t.Scale*frameH + t.TranslateY
}

// MapToTimeline converts a preview-clock timestamp into timeline time:
// the two may differ when the decoded video's duration disagrees with
// Project.durationMs.
func MapToTimeline(tPreviewMs, previewDurationMs, timelineDurationMs float64) float64 {
	if previewDurationMs <= 0 {
		return tPreviewMs
	}
	return tPreviewMs * (timelineDurationMs / previewDurationMs)
}

// CursorPlacement is where and how big to draw the vector cursor for
// one frame.
type CursorPlacement struct {
	X, Y   float64
	SizePx float64
}

// ComposeCursor places the vector cursor for one output frame. It
// samples the cursor CursorTimingOffsetMs ahead of
// the frame's timeline time, maps that position through the frame
// transform, and sizes it: a base size derived from the cursor
// setting and frame dimensions, scaled by the click-pulse signal and
// by the camera zoom (floored at CursorScaleFloor so the cursor never
// shrinks relative to the magnified content as the camera zooms in).
func ComposeCursor(tTimelineMs float64, samples []cursor.Sample, pulse cursor.PulseSignal, xform Transform, cursorSizeSetting, frameW, frameH float64) CursorPlacement {
	sampleTs := tTimelineMs + CursorTimingOffsetMs
	ux, uy := cursor.Interpolate(samples, sampleTs)
	x, y := xform.Apply(ux, uy, frameW, frameH)

	base := clampF(cursorSizeSetting*math.Min(frameW, frameH)*CursorSizeFactor, CursorSizeMinPx, CursorSizeMaxPx)
	zoomFactor := math.Max(CursorScaleFloor, xform.Scale)
	size := base * pulse.Scale(sampleTs) * zoomFactor

	return CursorPlacement{X: x, Y: y, SizePx: size}
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
