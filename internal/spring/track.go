// Package spring implements the spring camera integrator: fixed-step
// second-order integration of the viewport rectangle toward the active
// segment's target, independently per coordinate, plus the timeline
// visual-bounds pass.
package spring

import (
	"sort"

	"github.com/neurochelplus/NeuroScreenCaster/internal/geometry"
	"github.com/neurochelplus/NeuroScreenCaster/internal/segment"
)

// PreviewStepMs is the preview integration cadence: 60 fps.
const PreviewStepMs = 1000.0 / 60.0

// dtMin/dtMax bound the integration step in seconds, clamping the
// spring step so a large wall-clock gap between samples never blows up
// the integration.
const (
	dtMinSec = 1e-4
	dtMaxSec = 0.1
)

// Sample is one entry of a CameraTrack: the integrated viewport at ts.
type Sample struct {
	TsMs float64
	Rect geometry.Rect
}

// axisState carries one coordinate's spring value/velocity across
// steps; velocities are NOT reset across segment boundaries.
type axisState struct {
	value, velocity float64
}

func (a *axisState) step(target, stiffness, damping, mass, dt float64) {
	accel := (target-a.value)*stiffness - damping*a.velocity
	accel /= mass
	a.velocity += accel * dt
	a.value += a.velocity * dt
}

// Integrate produces a dense CameraTrack over [0, durationMs] at
// stepMs spacing. segs must be sorted and non-overlapping.
// The track always has a sample at ts=0 and a final sample at exactly
// ts=durationMs.
func Integrate(segs []segment.Segment, durationMs, stepMs float64) []Sample {
	if durationMs <= 0 || stepMs <= 0 {
		return []Sample{{TsMs: 0, Rect: geometry.FullRect}}
	}

	x := &axisState{value: geometry.FullRect.X}
	y := &axisState{value: geometry.FullRect.Y}
	w := &axisState{value: geometry.FullRect.W}
	h := &axisState{value: geometry.FullRect.H}

	var track []Sample
	prevTs := 0.0
	track = append(track, Sample{TsMs: 0, Rect: clampRect(x, y, w, h)})

	for ts := stepMs; ; ts += stepMs {
		last := false
		if ts >= durationMs {
			ts = durationMs
			last = true
		}
		dt := (ts - prevTs) / 1000.0
		if dt < dtMinSec {
			dt = dtMinSec
		}
		if dt > dtMaxSec {
			dt = dtMaxSec
		}

		target, spr := activeTarget(segs, prevTs)
		x.step(target.X, spr.Stiffness, spr.Damping, spr.Mass, dt)
		y.step(target.Y, spr.Stiffness, spr.Damping, spr.Mass, dt)
		w.step(target.W, spr.Stiffness, spr.Damping, spr.Mass, dt)
		h.step(target.H, spr.Stiffness, spr.Damping, spr.Mass, dt)

		track = append(track, Sample{TsMs: ts, Rect: clampRect(x, y, w, h)})
		prevTs = ts
		if last {
			break
		}
	}
	return track
}

// activeTarget returns the target rect and spring constants sampled
// at the START of the current interval (boundary-aligned sampling, not
// interpolated). If no segment is active at t, the target is the full
// frame integrated with the default spring.
func activeTarget(segs []segment.Segment, t float64) (geometry.Rect, segment.Spring) {
	for _, s := range segs {
		if s.Contains(t) {
			return s.RectAt(t), s.Spring
		}
	}
	return geometry.FullRect, segment.DefaultSpring
}

func clampRect(x, y, w, h *axisState) geometry.Rect {
	return geometry.Rect{X: x.value, Y: y.value, W: w.value, H: h.value}.Clamp()
}

// SampleAt samples a CameraTrack at an arbitrary timestamp via binary
// search + linear interpolation between the two adjacent samples.
func SampleAt(track []Sample, ts float64) geometry.Rect {
	n := len(track)
	if n == 0 {
		return geometry.FullRect
	}
	if n == 1 || ts <= track[0].TsMs {
		return track[0].Rect
	}
	if ts >= track[n-1].TsMs {
		return track[n-1].Rect
	}
	idx := sort.Search(n, func(i int) bool { return track[i].TsMs >= ts })
	hi := track[idx]
	lo := track[idx-1]
	span := hi.TsMs - lo.TsMs
	if span <= 0 {
		return hi.Rect
	}
	frac := (ts - lo.TsMs) / span
	return geometry.Rect{
		X: lo.Rect.X + frac*(hi.Rect.X-lo.Rect.X),
		Y: lo.Rect.Y + frac*(hi.Rect.Y-lo.Rect.Y),
		W: lo.Rect.W + frac*(hi.Rect.W-lo.Rect.W),
		H: lo.Rect.H + frac*(hi.Rect.H-lo.Rect.H),
	}
}
