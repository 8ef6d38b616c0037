// Package geometry provides the normalized-rectangle primitives every
// other camera package builds on: clamping to the NormalizedRect
// invariants, aspect-preserving resize, and containment checks.
package geometry

import "math"

// MinRectSize is the smallest width/height a NormalizedRect may have.
// Clamping w,h to this floor keeps 1/max(w,h) (zoom strength) from
// exploding as a rectangle shrinks to nothing.
const MinRectSize = 0.05

// Epsilon is the tolerance used across the camera packages when
// comparing zoom strength to 1 ("is this effectively no zoom").
const Epsilon = 1e-3

// FullRect is the un-zoomed viewport covering the entire source frame.
var FullRect = Rect{X: 0, Y: 0, W: 1, H: 1}

// Rect is a NormalizedRect: a rectangle in [0,1]^2 source-frame
// coordinates. Invariants: W,H in [MinRectSize, 1]; X+W <= 1; Y+H <= 1.
type Rect struct {
	X, Y, W, H float64
}

// ZoomStrength returns 1/max(w,h): how many times the longer axis of
// this rect is magnified relative to the full frame.
func (r Rect) ZoomStrength() float64 {
	return 1 / math.Max(r.W, r.H)
}

// Center returns the rectangle's center point.
func (r Rect) Center() (cx, cy float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// CenteredAt returns a copy of r re-centered at (cx, cy), re-clamped
// so it stays inside [0,1]^2.
func (r Rect) CenteredAt(cx, cy float64) Rect {
	r.X = cx - r.W/2
	r.Y = cy - r.H/2
	return r.Clamp()
}

// Clamp enforces the NormalizedRect invariants: W,H floored at
// MinRectSize and capped at 1, then X,Y constrained so the rect
// doesn't spill past the [0,1]^2 frame.
func (r Rect) Clamp() Rect {
	r.W = clampFloat(r.W, MinRectSize, 1)
	r.H = clampFloat(r.H, MinRectSize, 1)
	r.X = clampFloat(r.X, 0, 1-r.W)
	r.Y = clampFloat(r.Y, 0, 1-r.H)
	return r
}

// Valid reports whether r satisfies the NormalizedRect invariants
// within a 1e-6 slack for floating point roundoff.
func (r Rect) Valid() bool {
	const slack = 1e-6
	if r.W < MinRectSize-slack || r.W > 1+slack {
		return false
	}
	if r.H < MinRectSize-slack || r.H > 1+slack {
		return false
	}
	if r.X+r.W > 1+slack || r.Y+r.H > 1+slack {
		return false
	}
	if r.X < -slack || r.Y < -slack {
		return false
	}
	return true
}

// AspectLock expands the shorter axis of r so its aspect ratio equals
// targetAspect (width/height), preserving the center and the longer
// axis's extent. Used by the semantic-focus step to lock a
// padded UI bounding rect to the output frame's aspect ratio.
func (r Rect) AspectLock(targetAspect float64) Rect {
	if targetAspect <= 0 {
		return r
	}
	currentAspect := r.W / r.H
	cx, cy := r.Center()
	if currentAspect < targetAspect {
		// Too tall for the target aspect: widen W.
		r.W = r.H * targetAspect
	} else if currentAspect > targetAspect {
		// Too wide: grow H.
		r.H = r.W / targetAspect
	}
	return r.CenteredAt(cx, cy)
}

// Contains reports whether inner is fully inside outer.
func (outer Rect) Contains(inner Rect) bool {
	return inner.X >= outer.X &&
		inner.Y >= outer.Y &&
		inner.X+inner.W <= outer.X+outer.W &&
		inner.Y+inner.H <= outer.Y+outer.H
}

// Shrink returns r inset by margin on each side (a fraction of r's own
// W/H), used to build the "safe zone" containment check in the smart
// camera engine's retarget decision.
func (r Rect) Shrink(margin float64) Rect {
	dw := r.W * margin
	dh := r.H * margin
	return Rect{
		X: r.X + dw,
		Y: r.Y + dh,
		W: math.Max(r.W-2*dw, 0),
		H: math.Max(r.H-2*dh, 0),
	}
}

// WithZoomStrength returns a copy of r resized (about its center) so
// its zoom strength is exactly z, preserving aspect ratio.
func (r Rect) WithZoomStrength(z float64) Rect {
	if z <= 0 {
		return r
	}
	longer := math.Max(r.W, r.H)
	if longer == 0 {
		return r
	}
	scale := (1 / z) / longer
	cx, cy := r.Center()
	r.W *= scale
	r.H *= scale
	return r.CenteredAt(cx, cy)
}

func clampFloat(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
