// Package followcursor implements the follow-cursor target generator:
// for a segment with mode=follow-cursor, it produces the TargetPoint
// series a moving cursor drives, with dead-zone / hard-edge
// discipline.
package followcursor

import (
	"math"

	"github.com/neurochelplus/NeuroScreenCaster/internal/cursor"
	"github.com/neurochelplus/NeuroScreenCaster/internal/geometry"
	"github.com/neurochelplus/NeuroScreenCaster/internal/segment"
)

// Follow-cursor tuning constants.
const (
	SampleStepMs     = 75.0
	DeadRatio        = 0.2
	HardRatio        = 0.35
	MaxSpeedPxPerSec = 800.0
)

// CursorSampler resolves the interpolated cursor position at a given
// timestamp, in normalized [0,1] source-frame coordinates. A
// cursor.Sample slice satisfies this via FromCursorSamples below;
// kept as an interface here so this package has no dependency on how
// the samples were produced.
type CursorSampler interface {
	At(tsMs float64) (x, y float64)
}

// SamplerFunc adapts a plain function to CursorSampler.
type SamplerFunc func(tsMs float64) (x, y float64)

func (f SamplerFunc) At(tsMs float64) (x, y float64) { return f(tsMs) }

// Generate produces the TargetPoint series for seg, at
// SampleStepMs spacing from seg.StartTsMs to seg.EndTsMs inclusive.
// sourceWidth/sourceHeight are the captured screen's pixel dimensions,
// used to convert MaxSpeedPxPerSec into a normalized speed.
func Generate(seg segment.Segment, sampler CursorSampler, sourceWidth, sourceHeight float64) []segment.TargetPoint {
	if seg.EndTsMs <= seg.StartTsMs {
		return nil
	}
	rectW, rectH := seg.InitialRect.W, seg.InitialRect.H
	cx, cy := seg.InitialRect.Center()

	var points []segment.TargetPoint
	prevTs := seg.StartTsMs
	for ts := seg.StartTsMs; ; ts += SampleStepMs {
		last := false
		if ts >= seg.EndTsMs {
			ts = seg.EndTsMs
			last = true
		}
		dt := (ts - prevTs) / 1000.0
		cx, cy = step(cx, cy, rectW, rectH, sampler, ts, dt, sourceWidth, sourceHeight)

		rect := geometry.Rect{X: cx - rectW/2, Y: cy - rectH/2, W: rectW, H: rectH}.Clamp()
		cx, cy = rect.Center()
		points = append(points, segment.TargetPoint{TsMs: ts, Rect: rect})

		prevTs = ts
		if last {
			break
		}
	}
	return points
}

// step advances the viewport center by one follow-cursor tick:
// dead-zone then hard-edge clamp, speed-limited.
func step(cx, cy, rectW, rectH float64, sampler CursorSampler, ts, dt, sourceWidth, sourceHeight float64) (float64, float64) {
	cursorX, cursorY := sampler.At(ts)

	ox := cursorX - cx
	oy := cursorY - cy

	dx := 0.5 * rectW * DeadRatio
	dy := 0.5 * rectH * DeadRatio
	hx := 0.5 * rectW * HardRatio
	hy := 0.5 * rectH * HardRatio

	cx = advanceAxis(cx, ox, dx, hx, dt, sourceWidth)
	cy = advanceAxis(cy, oy, dy, hy, dt, sourceHeight)
	return cx, cy
}

func advanceAxis(center, offset, deadHalf, hardHalf, dt, sourceDim float64) float64 {
	abs := math.Abs(offset)
	if abs <= deadHalf {
		return center
	}
	span := hardHalf - deadHalf
	frac := 1.0
	if span > 0 {
		frac = clamp01((abs - deadHalf) / span)
	}
	speed := MaxSpeedPxPerSec / sourceDim // normalized units / second
	delta := speed * frac * dt
	if delta > abs-deadHalf {
		delta = abs - deadHalf
	}
	if offset < 0 {
		delta = -delta
	}
	return center + delta
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// FromCursorSamples adapts a sorted cursor.Sample slice into a
// CursorSampler backed by cursor.Interpolate.
func FromCursorSamples(samples []cursor.Sample) CursorSampler {
	return SamplerFunc(func(tsMs float64) (float64, float64) {
		return cursor.Interpolate(samples, tsMs)
	})
}
