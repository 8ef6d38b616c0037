package spring

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/neurochelplus/NeuroScreenCaster/internal/geometry"
	"github.com/neurochelplus/NeuroScreenCaster/internal/segment"
)

// visuallyActiveDelta is the minimum rect-vs-full-frame distance below
// which a sample is considered "settled back to free roam" even if its
// zoom strength is still fractionally above 1.
const visuallyActiveDelta = 5e-5

// VisualBounds derives a segment's displayed timeline bar from the
// integrated track rather than its raw [StartTsMs,EndTsMs]: it locates
// the peak zoom inside the segment's span, walks outward while the
// track is still "visually active", and caps the end at
// TimelineVisualReturnTailMs past the nominal segment end to show (but
// not overstate) the settle-back tail.
const TimelineVisualReturnTailMs = 200.0

func VisualBounds(track []Sample, seg segment.Segment) (startMs, endMs float64) {
	lo, hi := windowIndices(track, seg.StartTsMs, seg.EndTsMs)
	if lo >= hi {
		return seg.StartTsMs, seg.EndTsMs
	}

	zooms := make([]float64, hi-lo)
	for i := lo; i < hi; i++ {
		zooms[i-lo] = track[i].Rect.ZoomStrength()
	}
	peak := lo + floats.MaxIdx(zooms)

	left := peak
	for left > 0 && isVisuallyActive(track[left-1].Rect) {
		left--
	}
	right := peak
	for right < len(track)-1 && isVisuallyActive(track[right+1].Rect) {
		right++
	}

	startMs = math.Min(seg.StartTsMs, track[left].TsMs)
	endMs = math.Min(math.Max(seg.EndTsMs, track[right].TsMs), seg.EndTsMs+TimelineVisualReturnTailMs)
	return startMs, endMs
}

func isVisuallyActive(r geometry.Rect) bool {
	if r.ZoomStrength() > 1+geometry.Epsilon {
		return true
	}
	return rectDelta(r, geometry.FullRect) > visuallyActiveDelta
}

func rectDelta(a, b geometry.Rect) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	dw := a.W - b.W
	dh := a.H - b.H
	return math.Sqrt(dx*dx + dy*dy + dw*dw + dh*dh)
}

// windowIndices returns the half-open [lo,hi) index range of track
// samples whose TsMs falls inside [startMs,endMs].
func windowIndices(track []Sample, startMs, endMs float64) (lo, hi int) {
	lo = -1
	for i, s := range track {
		if lo == -1 && s.TsMs >= startMs {
			lo = i
		}
		if s.TsMs <= endMs {
			hi = i + 1
		}
	}
	if lo == -1 {
		return 0, 0
	}
	return lo, hi
}
