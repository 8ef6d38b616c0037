package camera

import (
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/neurochelplus/NeuroScreenCaster/internal/geometry"
	"github.com/neurochelplus/NeuroScreenCaster/internal/schema"
	"github.com/neurochelplus/NeuroScreenCaster/internal/segment"
	"github.com/neurochelplus/NeuroScreenCaster/internal/telemetry"
)

// negInf stands in for "no previous auto-start/retarget has happened
// yet" so the MinZoomIntervalMs check always passes the first time.
const negInf = -1e18

// Config bundles the per-recording inputs Run needs beyond the fixed
// engine constants.
type Config struct {
	Policy       Policy
	ScreenWidth  float64
	ScreenHeight float64
	VideoWidth   float64
	VideoHeight  float64
	DurationMs   float64
}

type tickKind int

const (
	tickCluster tickKind = iota
	tickScroll
)

type tick struct {
	kind  tickKind
	ts    float64
	click schema.InputEvent
	dyPx  float64
}

// Run executes the Smart Camera Engine over one recording: clustering,
// trigger policy, and the FreeRoam/LockedFocus state machine, followed
// by a post-processing pass that trims auto no-ops and enforces
// non-overlap. An empty result is not an error; it's the documented
// CaptureShortfall case, logged as a warning and left to the caller to
// decide how to proceed (typically: fall back to a single fixed
// full-frame segment).
func Run(ef schema.EventsFile, cfg Config, log *zap.SugaredLogger) []segment.Segment {
	log = telemetry.Or(log)
	if cfg.VideoWidth <= 0 || cfg.VideoHeight <= 0 || cfg.ScreenWidth <= 0 || cfg.ScreenHeight <= 0 {
		log.Warnw("camera: missing frame dimensions, no segments produced")
		return nil
	}
	videoAspect := cfg.VideoWidth / cfg.VideoHeight

	eligible := eligibleClicksForPolicy(ef.Events, cfg.Policy)
	clusters := clusterClicks(eligible)
	moves := moveEvents(ef.Events)

	var ticks []tick
	for _, c := range clusters {
		ticks = append(ticks, tick{kind: tickCluster, ts: c.Anchor.TsMs, click: c.Anchor})
	}
	for _, e := range ef.Events {
		if e.Type == schema.EventScroll && e.Delta != nil {
			ticks = append(ticks, tick{kind: tickScroll, ts: e.TsMs, dyPx: e.Delta.Dy})
		}
	}
	sort.SliceStable(ticks, func(i, j int) bool { return ticks[i].ts < ticks[j].ts })

	eng := &engine{
		cfg:           cfg,
		videoAspect:   videoAspect,
		moves:         moves,
		log:           log,
		lastAutoStart: negInf,
		lastRetarget:  negInf,
	}
	for _, t := range ticks {
		eng.advanceTo(t.ts)
		switch t.kind {
		case tickCluster:
			eng.onCluster(t.click)
		case tickScroll:
			eng.onScroll(t.ts, t.dyPx)
		}
	}
	eng.advanceTo(cfg.DurationMs)
	eng.closeIfOpen(cfg.DurationMs)

	if len(eng.segments) == 0 {
		log.Warnw("camera: no eligible clicks produced an auto segment")
	}
	return postProcess(eng.segments)
}

type camState int

const (
	stateFreeRoam camState = iota
	stateLockedFocus
)

type engine struct {
	cfg         Config
	videoAspect float64
	moves       []schema.InputEvent
	log         *zap.SugaredLogger

	state         camState
	segments      []segment.Segment
	current       *segment.Segment
	lastAutoStart float64
	lastRetarget  float64
	lastAnchorTs  float64
	lockedFocus   geometry.Rect

	scrollActive   bool
	scrollStartTs  float64
	scrollSumAbsPx float64
}

// advanceTo closes the in-progress segment on an idle timeout before
// ts is processed, if ts has crossed that boundary: LockedFocus ->
// FreeRoam after IdleTimeoutMs with no eligible click.
func (e *engine) advanceTo(ts float64) {
	if e.state != stateLockedFocus {
		return
	}
	if ts-e.lastAnchorTs > IdleTimeoutMs {
		e.log.Debugw("camera: idle timeout", "closedAt", e.lastAnchorTs+IdleTimeoutMs)
		e.closeSegment(e.lastAnchorTs + IdleTimeoutMs)
		e.state = stateFreeRoam
	}
}

func (e *engine) onCluster(click schema.InputEvent) {
	focus := semanticFocus(click, e.cfg.ScreenWidth, e.cfg.ScreenHeight, e.videoAspect)

	switch e.state {
	case stateFreeRoam:
		if click.TsMs-e.lastAutoStart < MinZoomIntervalMs {
			return
		}
		preRoll := preRollFor(e.moves, click.TsMs)
		start := click.TsMs - preRoll
		if start < 0 {
			start = 0
		}
		e.current = &segment.Segment{
			ID:          uuid.New().String(),
			StartTsMs:   start,
			InitialRect: focus,
			Spring:      segment.DefaultSpring,
			Mode:        segment.ModeFollowCursor,
			Trigger:     segment.TriggerAutoClick,
			IsAuto:      true,
		}
		e.lockedFocus = focus
		e.lastAutoStart = click.TsMs
		e.lastRetarget = click.TsMs
		e.lastAnchorTs = click.TsMs
		e.scrollActive = false
		e.scrollSumAbsPx = 0
		e.state = stateLockedFocus
		e.log.Debugw("camera: locked focus", "startTs", start, "anchorTs", click.TsMs)

	case stateLockedFocus:
		e.lastAnchorTs = click.TsMs
		safeZone := e.lockedFocus.Shrink(ContainmentMargin)
		if !safeZone.Contains(focus) && click.TsMs-e.lastRetarget >= MinZoomIntervalMs {
			e.current.TargetPoint = append(e.current.TargetPoint, segment.TargetPoint{TsMs: click.TsMs, Rect: focus})
			e.lockedFocus = focus
			e.lastRetarget = click.TsMs
			e.log.Debugw("camera: retarget", "ts", click.TsMs)
		}
	}
}

func (e *engine) onScroll(ts, dyPx float64) {
	if e.state != stateLockedFocus {
		return
	}
	if !e.scrollActive {
		e.scrollActive = true
		e.scrollStartTs = ts
	}
	e.scrollSumAbsPx += absF(dyPx)

	dyNorm := dyPx / e.cfg.ScreenHeight
	cx, cy := e.lockedFocus.Center()
	shifted := e.lockedFocus.CenteredAt(cx, cy+dyNorm)
	e.lockedFocus = shifted
	e.current.TargetPoint = append(e.current.TargetPoint, segment.TargetPoint{TsMs: ts, Rect: shifted})

	if ts-e.scrollStartTs > GlobalScrollTimeoutMs || e.scrollSumAbsPx > ScrollDistanceFactor*e.cfg.ScreenHeight {
		e.log.Debugw("camera: scroll exit", "ts", ts)
		e.closeSegment(ts)
		e.state = stateFreeRoam
	}
}

func (e *engine) closeIfOpen(durationMs float64) {
	if e.state == stateLockedFocus {
		end := e.lastAnchorTs + IdleTimeoutMs
		if end > durationMs {
			end = durationMs
		}
		e.closeSegment(end)
		e.state = stateFreeRoam
	}
}

func (e *engine) closeSegment(endTs float64) {
	if e.current == nil {
		return
	}
	e.current.EndTsMs = endTs
	if e.current.EndTsMs < e.current.StartTsMs+segment.MinSegmentMs {
		e.current.EndTsMs = e.current.StartTsMs + segment.MinSegmentMs
	}
	e.segments = append(e.segments, *e.current)
	e.current = nil
}

func absF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// postProcess applies the segment-level invariants: trim auto no-op
// leading target points, drop segments that collapse below
// MinSegmentMs, sort, and enforce the MinSegmentGapMs separation
// sequentially.
func postProcess(segs []segment.Segment) []segment.Segment {
	segment.SortSegments(segs)

	trimmed := make([]segment.Segment, 0, len(segs))
	for _, s := range segs {
		out, ok := segment.TrimAutoNoop(s)
		if !ok {
			continue
		}
		if out.DurationMs() < segment.MinSegmentMs {
			continue
		}
		trimmed = append(trimmed, out)
	}

	final := make([]segment.Segment, 0, len(trimmed))
	for i, s := range trimmed {
		if i > 0 {
			prevEnd := final[len(final)-1].EndTsMs
			if s.StartTsMs < prevEnd+segment.MinSegmentGapMs {
				s.StartTsMs = prevEnd + segment.MinSegmentGapMs
			}
		}
		if s.EndTsMs-s.StartTsMs < segment.MinSegmentMs {
			continue
		}
		final = append(final, s)
	}
	return final
}
