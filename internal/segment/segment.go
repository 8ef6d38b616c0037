// Package segment implements the zoom-segment model: normalization,
// trimming, the non-overlap invariant, and gap search for manual
// placement.
package segment

import (
	"sort"

	"github.com/neurochelplus/NeuroScreenCaster/internal/geometry"
)

// Timing constants.
const (
	MinSegmentMs    = 200.0
	MinSegmentGapMs = 200.0
)

// Mode is a ZoomSegment's framing mode.
type Mode int

const (
	ModeFixed Mode = iota
	ModeFollowCursor
)

// Trigger identifies what caused an auto segment to start.
type Trigger int

const (
	TriggerManual Trigger = iota
	TriggerAutoClick
	TriggerAutoScroll
)

// TargetPoint is a timestamped rect inside the owning segment.
type TargetPoint struct {
	TsMs float64
	Rect geometry.Rect
}

// Spring holds the per-segment spring constants. Zero value
// is invalid; use DefaultSpring for the documented defaults.
type Spring struct {
	Mass      float64
	Stiffness float64
	Damping   float64
}

// DefaultSpring is the default spring constants used whenever a
// segment or the idle full-frame target carries no explicit spring.
var DefaultSpring = Spring{Mass: 1, Stiffness: 170, Damping: 26}

// Segment is a ZoomSegment.
type Segment struct {
	ID          string
	StartTsMs   float64
	EndTsMs     float64
	InitialRect geometry.Rect
	TargetPoint []TargetPoint
	Spring      Spring
	Mode        Mode
	Trigger     Trigger
	IsAuto      bool
}

// DurationMs returns end-start.
func (s Segment) DurationMs() float64 { return s.EndTsMs - s.StartTsMs }

// RectAt returns the rect to frame at ts inside this segment: for
// ModeFixed it's always InitialRect; for ModeFollowCursor it's the
// latest TargetPoint with ts <= the query (step semantics, not
// interpolated), or InitialRect if the segment has no target points
// yet or ts precedes the first one.
func (s Segment) RectAt(ts float64) geometry.Rect {
	if s.Mode == ModeFixed || len(s.TargetPoint) == 0 {
		return s.InitialRect
	}
	lo, hi := 0, len(s.TargetPoint)
	for lo < hi {
		mid := (lo + hi) / 2
		if s.TargetPoint[mid].TsMs <= ts {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo == 0 {
		return s.InitialRect
	}
	return s.TargetPoint[lo-1].Rect
}

// Contains reports whether ts falls inside [StartTsMs, EndTsMs].
func (s Segment) Contains(ts float64) bool {
	return ts >= s.StartTsMs && ts <= s.EndTsMs
}

// SortSegments sorts segments in place by StartTsMs.
func SortSegments(segs []Segment) {
	sort.Slice(segs, func(i, j int) bool { return segs[i].StartTsMs < segs[j].StartTsMs })
}

// TrimAutoNoop drops leading TargetPoints whose zoom strength is <=
// 1+epsilon from auto segments; if none remain after trimming, ok is
// false and the segment should be dropped entirely. Manual segments
// (IsAuto == false) pass through unchanged.
//
// A segment that never carried any TargetPoints is a different case
// from one that carried some and had all of them trimmed away: the
// former is the common single-focus auto segment, whose zoom lives
// entirely in InitialRect, so it is kept whenever InitialRect itself
// is zoomed. The latter means every target point this segment ever
// had was a no-op retarget; InitialRect is a stale pre-trim value at
// that point, not evidence of an active zoom, so the whole segment is
// dropped regardless of what InitialRect still holds.
//
// TrimAutoNoop is idempotent: applying it twice yields the same
// result as applying it once, since the function only ever inspects
// and drops a *prefix* of already-sorted target points; a second
// pass finds nothing left to drop.
func TrimAutoNoop(s Segment) (out Segment, ok bool) {
	if !s.IsAuto {
		return s, true
	}
	hadTargetPoints := len(s.TargetPoint) > 0
	i := 0
	for i < len(s.TargetPoint) && s.TargetPoint[i].Rect.ZoomStrength() <= 1+geometry.Epsilon {
		i++
	}
	if i == len(s.TargetPoint) {
		if hadTargetPoints {
			return Segment{}, false
		}
		if s.InitialRect.ZoomStrength() <= 1+geometry.Epsilon {
			return Segment{}, false
		}
	}
	s.TargetPoint = s.TargetPoint[i:]
	if len(s.TargetPoint) > 0 {
		s.StartTsMs = maxF(s.StartTsMs, s.TargetPoint[0].TsMs)
	}
	return s, true
}

// Gap is an open interval between two segments (or before the first /
// after the last) available for a new manual segment.
type Gap struct {
	StartMs, EndMs float64
}

// neighborBoundsOf returns the previous segment's end and the next
// segment's start around index i in a sorted list, or +/-Inf-like
// sentinels (0 and the caller-provided horizon) at the ends.
func neighborBoundsOf(segs []Segment, i int, horizonMs float64) (prevEnd, nextStart float64) {
	prevEnd = 0
	if i > 0 {
		prevEnd = segs[i-1].EndTsMs
	}
	nextStart = horizonMs
	if i < len(segs) {
		nextStart = segs[i].StartTsMs
	}
	return
}

// NeighborBounds returns the start/end bounds a segment identified by
// id may move within without violating non-overlap against its
// immediate neighbors, each inset by MinSegmentGapMs. duration does
// not affect the returned bounds. segs must be sorted. If id is not
// found, ok is false.
func NeighborBounds(segs []Segment, id string, duration, horizonMs float64) (minStart, maxEnd float64, ok bool) {
	for i, s := range segs {
		if s.ID != id {
			continue
		}
		var prevEnd float64
		if i > 0 {
			prevEnd = segs[i-1].EndTsMs
		}
		nextStart := horizonMs
		if i+1 < len(segs) {
			nextStart = segs[i+1].StartTsMs
		}
		minStart = prevEnd
		if prevEnd > 0 {
			minStart = prevEnd + MinSegmentGapMs
		}
		maxEnd = nextStart
		if i+1 < len(segs) {
			maxEnd = nextStart - MinSegmentGapMs
		}
		return minStart, maxEnd, true
	}
	return 0, 0, false
}

// MoveSegment translates segment id so it starts at newStart,
// preserving its current duration, clamped against its neighbors to
// keep the non-overlap invariant on manual edits: if the translated
// end would exceed nextStart-gap, the segment is pinned to that
// ceiling and its start recomputed backward from there; if that pins
// the start below prevEnd+gap, the start is pinned there instead
// (producing as much overlap as the neighbors themselves already
// leave no room for).
func MoveSegment(segs []Segment, id string, newStart, horizonMs float64) (start, end float64, ok bool) {
	var duration float64
	found := false
	for _, s := range segs {
		if s.ID == id {
			duration = s.DurationMs()
			found = true
			break
		}
	}
	if !found {
		return 0, 0, false
	}
	minStart, maxEnd, _ := NeighborBounds(segs, id, duration, horizonMs)

	start = newStart
	end = start + duration
	if end > maxEnd {
		end = maxEnd
		start = end - duration
	}
	if start < minStart {
		start = minStart
		end = start + duration
	}
	return start, end, true
}

// ResizeSegment clamps a proposed [newStart,newEnd] for segment id
// against its neighbors, changing one edge: start >=
// prevEnd+gap, end <= nextStart-gap, and length >= MinSegmentMs, with
// a 1ms hard floor tolerated only on the edge actually being dragged.
func ResizeSegment(segs []Segment, id string, newStart, newEnd, horizonMs float64, resizingStart bool) (start, end float64, ok bool) {
	minStart, maxEnd, found := NeighborBounds(segs, id, newEnd-newStart, horizonMs)
	if !found {
		return newStart, newEnd, false
	}
	if newStart < minStart {
		newStart = minStart
	}
	if newEnd > maxEnd {
		newEnd = maxEnd
	}
	length := newEnd - newStart
	if length < MinSegmentMs {
		if resizingStart {
			newStart = maxF(newEnd-MinSegmentMs, minStart)
			if newEnd-newStart < 1 {
				newStart = newEnd - 1 // 1ms hard minimum on the grabbed edge
			}
		} else {
			newEnd = newStart + MinSegmentMs
			if newEnd > maxEnd {
				newEnd = maxEnd
			}
			if newEnd-newStart < 1 {
				newEnd = newStart + 1
			}
		}
	}
	return newStart, newEnd, true
}

// FindAvailableGap scans the inter-segment gaps of a sorted segment
// list (each bounded by MinSegmentGapMs on either side) and returns a
// slot for a new segment of up to 1600ms (or the full gap, whichever
// is smaller) inside whichever gap contains preferredStartTs. Returns
// ok=false if the containing gap, after accounting for the required
// separation, is narrower than MinSegmentMs.
func FindAvailableGap(segs []Segment, preferredStartMs, horizonMs float64) (g Gap, ok bool) {
	const maxSlotMs = 1600.0
	sorted := append([]Segment(nil), segs...)
	SortSegments(sorted)

	bounds := make([]Gap, 0, len(sorted)+1)
	cursor := 0.0
	for _, s := range sorted {
		bounds = append(bounds, Gap{StartMs: cursor, EndMs: s.StartTsMs})
		cursor = s.EndTsMs
	}
	bounds = append(bounds, Gap{StartMs: cursor, EndMs: horizonMs})

	for _, b := range bounds {
		usableStart := b.StartMs
		usableEnd := b.EndMs
		if usableStart > 0 {
			usableStart += MinSegmentGapMs
		}
		if usableEnd < horizonMs {
			usableEnd -= MinSegmentGapMs
		}
		if preferredStartMs < usableStart || preferredStartMs > usableEnd {
			continue
		}
		total := usableEnd - usableStart
		if total < MinSegmentMs {
			return Gap{}, false
		}
		slot := total
		if slot > maxSlotMs {
			slot = maxSlotMs
		}
		slotStart := preferredStartMs
		if slotStart+slot > usableEnd {
			slotStart = usableEnd - slot
		}
		if slotStart < usableStart {
			slotStart = usableStart
		}
		return Gap{StartMs: slotStart, EndMs: slotStart + slot}, true
	}
	return Gap{}, false
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
