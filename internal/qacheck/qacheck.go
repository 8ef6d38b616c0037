// Package qacheck implements the smoke-check invariants the neurocheck
// CLI runs over a project directory: the same schema/id/monotonicity
// checks schema.Project/EventsFile already enforce on load, plus the
// cursor-bounds and duration-drift checks that only make sense as a
// standalone QA pass rather than a load-time invariant.
package qacheck

import (
	"fmt"
	"math"

	"github.com/neurochelplus/NeuroScreenCaster/internal/config"
	"github.com/neurochelplus/NeuroScreenCaster/internal/schema"
)

// Result collects every failure found; Pass reports whether the
// project/events pair is clean.
type Result struct {
	Failures []string
	Warnings []string
}

func (r *Result) Pass() bool { return len(r.Failures) == 0 }

func (r *Result) fail(format string, args ...any) {
	r.Failures = append(r.Failures, fmt.Sprintf(format, args...))
}

func (r *Result) warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Check runs every static (non-export) invariant against a loaded
// project/events pair: schema.Project.Validate and ValidatePair already
// cover schema version, id equality, monotonic timestamps, segment
// non-overlap, and rect bounds, so Check re-derives those plus the
// cursor-bounds DPI check the load path doesn't perform.
func Check(p schema.Project, ef schema.EventsFile, cfg *config.Config) Result {
	var r Result

	if err := p.Validate(); err != nil {
		r.fail("project: %v", err)
	}
	if err := ef.Validate(); err != nil {
		r.fail("events: %v", err)
	}
	if err := schema.ValidatePair(p, ef); err != nil {
		r.fail("pair: %v", err)
	}

	checkCursorBounds(&r, ef, cfg)
	checkSegmentBounds(&r, p)

	return r
}

// checkCursorBounds verifies every event's coordinates fit inside the
// captured screen, within a DPI tolerance: up to CursorBoundsTolerancePx
// negative slack, or acceptance of logical-coordinate events whose
// scaleFactor-adjusted extent still fits inside the physical screen
// bounds with CursorBoundsScaleSlack headroom.
func checkCursorBounds(r *Result, ef schema.EventsFile, cfg *config.Config) {
	screenW := float64(ef.ScreenWidth)
	screenH := float64(ef.ScreenHeight)
	tol := cfg.QA.CursorBoundsTolerancePx
	slack := cfg.QA.CursorBoundsScaleSlack

	for i, e := range ef.Events {
		if e.Type != schema.EventMove && e.Type != schema.EventClick {
			continue
		}
		withinPhysical := e.X >= -tol && e.X <= screenW+tol && e.Y >= -tol && e.Y <= screenH+tol
		withinLogical := e.X*ef.ScaleFactor <= screenW*slack && e.Y*ef.ScaleFactor <= screenH*slack
		if !withinPhysical && !withinLogical {
			r.fail("events[%d]: cursor (%.1f, %.1f) out of screen bounds %dx%d", i, e.X, e.Y, ef.ScreenWidth, ef.ScreenHeight)
		}
	}
}

// checkSegmentBounds verifies every rect produced by the timeline sits
// inside [0,1]^2 and inside [0, durationMs+1].
func checkSegmentBounds(r *Result, p schema.Project) {
	for _, s := range p.Segments() {
		if !s.InitialRect.Valid() {
			r.fail("segment %s: invalid initialRect", s.ID)
		}
		if s.StartTsMs < 0 || s.EndTsMs > p.DurationMs+1 {
			r.fail("segment %s: [%g,%g] outside [0,%g]", s.ID, s.StartTsMs, s.EndTsMs, p.DurationMs)
		}
		for _, tp := range s.TargetPoint {
			if !tp.Rect.Valid() {
				r.fail("segment %s: invalid target rect at ts=%g", s.ID, tp.TsMs)
			}
		}
	}
}

// CheckDurationDrift compares a decoded source video's duration against
// Project.durationMs, classifying the drift ratio against the
// configured critical/warning thresholds.
func CheckDurationDrift(r *Result, projectDurationMs, decodedDurationMs float64, cfg *config.Config) {
	if projectDurationMs <= 0 {
		r.fail("duration: project.durationMs is %g", projectDurationMs)
		return
	}
	ratio := math.Abs(decodedDurationMs-projectDurationMs) / projectDurationMs
	switch {
	case ratio > cfg.QA.DurationDriftCriticalRatio:
		r.fail("duration drift %.1f%% exceeds critical threshold %.0f%% (project=%gms, decoded=%gms)",
			ratio*100, cfg.QA.DurationDriftCriticalRatio*100, projectDurationMs, decodedDurationMs)
	case ratio > cfg.QA.DurationDriftWarningRatio:
		r.warn("duration drift %.1f%% exceeds warning threshold %.0f%%",
			ratio*100, cfg.QA.DurationDriftWarningRatio*100)
	}
}
