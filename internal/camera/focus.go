package camera

import (
	"github.com/neurochelplus/NeuroScreenCaster/internal/geometry"
	"github.com/neurochelplus/NeuroScreenCaster/internal/schema"
)

// Semantic focus constants.
const (
	SemanticPad = 0.06
	MaxZoom     = 2.0
)

// semanticFocus computes the zoom rect a click's cluster anchors on.
// With a UI-context bounding rect present, it pads, aspect-locks to
// the output frame, and caps the zoom at MaxZoom. With no bounding
// rect (the documented MissingContext case, not an error), it falls
// back to a MaxZoom rect centered on the raw click position.
func semanticFocus(click schema.InputEvent, screenW, screenH, videoAspect float64) geometry.Rect {
	if click.UIContext != nil && click.UIContext.BoundingRect != nil {
		br := click.UIContext.BoundingRect
		r := geometry.PixelRect{X: br.X, Y: br.Y, Width: br.Width, Height: br.Height}.
			Normalize(screenW, screenH)
		r = r.Pad(SemanticPad)
		r = r.AspectLock(videoAspect)
		if r.ZoomStrength() > MaxZoom {
			r = r.WithZoomStrength(MaxZoom)
		}
		// WithZoomStrength's own CenteredAt already re-clamps into
		// [0,1]^2, which wins over the focus's original center when a
		// click near an edge forces a MaxZoom-sized rect to spill past
		// that edge: the rect invariant (never spill the frame) is the
		// hard constraint, the focus center is only a target. This
		// Clamp is a no-op in every other case.
		return r.Clamp()
	}
	return fallbackFocus(click.X/screenW, click.Y/screenH, videoAspect)
}

// fallbackFocus builds the MaxZoom rect centered on a normalized point,
// with the longer axis sized exactly 1/MaxZoom.
func fallbackFocus(cx, cy, videoAspect float64) geometry.Rect {
	size := 1 / MaxZoom
	var w, h float64
	if videoAspect >= 1 {
		w, h = size, size/videoAspect
	} else {
		h, w = size, size*videoAspect
	}
	return geometry.Rect{W: w, H: h}.CenteredAt(cx, cy)
}
