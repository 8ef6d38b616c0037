package camera

import (
	"github.com/neurochelplus/NeuroScreenCaster/internal/followcursor"
	"github.com/neurochelplus/NeuroScreenCaster/internal/segment"
)

// ExpandFollowCursor replaces each follow-cursor segment's TargetPoint
// list, which Run leaves holding only the semantic retarget/scroll
// waypoints it produced, with the dense, cursor-driven series the
// follow-cursor generator owns.
//
// A segment can be retargeted mid-flight, each retarget changing the
// framed rect's size as well as its position, something the
// generator's single-rect algorithm (rect size and aspect preserved
// from initialRect) does not itself model. ExpandFollowCursor
// reconciles the two: it runs the generator once per interval between
// consecutive waypoints, using the waypoint active at the start of
// that interval as the interval's fixed framing rect, and concatenates
// the results. A segment with no retargets (the common case) is a
// single interval, identical to calling followcursor.Generate directly.
func ExpandFollowCursor(segs []segment.Segment, sampler followcursor.CursorSampler, sourceWidth, sourceHeight float64) []segment.Segment {
	out := make([]segment.Segment, len(segs))
	for i, s := range segs {
		if s.Mode != segment.ModeFollowCursor {
			out[i] = s
			continue
		}
		out[i] = expandOne(s, sampler, sourceWidth, sourceHeight)
	}
	return out
}

func expandOne(s segment.Segment, sampler followcursor.CursorSampler, sourceWidth, sourceHeight float64) segment.Segment {
	type interval struct {
		startMs, endMs float64
		rect           segment.TargetPoint // reuse: TsMs unused, Rect is the framing rect
	}

	var intervals []interval
	prevTs := s.StartTsMs
	prevRect := s.InitialRect
	for _, wp := range s.TargetPoint {
		if wp.TsMs > prevTs {
			intervals = append(intervals, interval{startMs: prevTs, endMs: wp.TsMs, rect: segment.TargetPoint{Rect: prevRect}})
		}
		prevTs = wp.TsMs
		prevRect = wp.Rect
	}
	intervals = append(intervals, interval{startMs: prevTs, endMs: s.EndTsMs, rect: segment.TargetPoint{Rect: prevRect}})

	var dense []segment.TargetPoint
	for _, iv := range intervals {
		if iv.endMs <= iv.startMs {
			continue
		}
		sub := segment.Segment{
			StartTsMs:   iv.startMs,
			EndTsMs:     iv.endMs,
			InitialRect: iv.rect.Rect,
			Mode:        segment.ModeFollowCursor,
		}
		points := followcursor.Generate(sub, sampler, sourceWidth, sourceHeight)
		if len(dense) > 0 && len(points) > 0 && points[0].TsMs == dense[len(dense)-1].TsMs {
			points = points[1:]
		}
		dense = append(dense, points...)
	}

	s.TargetPoint = dense
	return s
}
