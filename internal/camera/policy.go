// Package camera implements the Smart Camera Engine: click clustering,
// trigger policy, and the FreeRoam/LockedFocus state machine that
// turns an event log into a sorted, non-overlapping list of auto zoom
// segments.
package camera

import (
	"strings"

	"github.com/neurochelplus/NeuroScreenCaster/internal/schema"
)

// Policy selects which clicks are eligible to start or extend a
// locked focus.
type Policy int

const (
	PolicySingleClick Policy = iota
	PolicyMultiClickWindow
	PolicyCtrlClick
)

// Tuning constants.
const (
	ClusterGapMs          = 300.0
	MultiClickWindowMs    = 3000.0
	MinZoomIntervalMs     = 2000.0
	PreRollMs             = 400.0
	SlowdownPxPerSec      = 300.0
	IdleTimeoutMs         = 2000.0
	GlobalScrollTimeoutMs = 3000.0
	ScrollDistanceFactor  = 1.5 // x screenHeight
	ContainmentMargin     = 0.1
)

// modifierTimeline answers whether a ctrl-family key was held at a
// given timestamp, built from the keyDown/keyUp stream.
type modifierTimeline struct {
	// intervals where ctrl was held, as [start,end) pairs; an
	// unterminated hold (no matching keyUp before the stream ends)
	// extends to +Inf.
	holds []modHold
}

type modHold struct {
	startMs, endMs float64
}

const infTs = 1e18

func isCtrlKey(code string) bool {
	c := strings.ToLower(code)
	return c == "ctrl" || c == "control" || c == "lcontrol" || c == "rcontrol" ||
		c == "lctrl" || c == "rctrl" || c == "controlleft" || c == "controlright"
}

func buildModifierTimeline(events []schema.InputEvent) modifierTimeline {
	var mt modifierTimeline
	downTs := -1.0
	for _, e := range events {
		switch e.Type {
		case schema.EventKeyDown:
			if isCtrlKey(e.KeyCode) && downTs < 0 {
				downTs = e.TsMs
			}
		case schema.EventKeyUp:
			if isCtrlKey(e.KeyCode) && downTs >= 0 {
				mt.holds = append(mt.holds, modHold{startMs: downTs, endMs: e.TsMs})
				downTs = -1
			}
		}
	}
	if downTs >= 0 {
		mt.holds = append(mt.holds, modHold{startMs: downTs, endMs: infTs})
	}
	return mt
}

func (mt modifierTimeline) heldAt(ts float64) bool {
	for _, h := range mt.holds {
		if ts >= h.startMs && ts <= h.endMs {
			return true
		}
	}
	return false
}

// eligibleClicksForPolicy returns the clicks from events that the
// given policy allows to participate in clustering.
func eligibleClicksForPolicy(events []schema.InputEvent, policy Policy) []schema.InputEvent {
	var clicks []schema.InputEvent
	for _, e := range events {
		if e.Type == schema.EventClick {
			clicks = append(clicks, e)
		}
	}

	switch policy {
	case PolicySingleClick:
		return clicks
	case PolicyCtrlClick:
		mt := buildModifierTimeline(events)
		var out []schema.InputEvent
		for _, c := range clicks {
			if mt.heldAt(c.TsMs) {
				out = append(out, c)
			}
		}
		return out
	case PolicyMultiClickWindow:
		return filterMultiClickWindows(clicks)
	default:
		return clicks
	}
}

// filterMultiClickWindows groups clicks using a MultiClickWindowMs
// gap and keeps only the clicks belonging to a group of >= 2, per the
// multi-click-window trigger policy.
func filterMultiClickWindows(clicks []schema.InputEvent) []schema.InputEvent {
	if len(clicks) == 0 {
		return nil
	}
	var out []schema.InputEvent
	group := []schema.InputEvent{clicks[0]}
	flush := func() {
		if len(group) >= 2 {
			out = append(out, group...)
		}
	}
	for i := 1; i < len(clicks); i++ {
		if clicks[i].TsMs-clicks[i-1].TsMs <= MultiClickWindowMs {
			group = append(group, clicks[i])
		} else {
			flush()
			group = []schema.InputEvent{clicks[i]}
		}
	}
	flush()
	return out
}

// cluster is one semantic focus cluster: a run of
// eligible clicks within ClusterGapMs of each other. Anchor is the
// last click in the cluster.
type cluster struct {
	Anchor schema.InputEvent
}

// clusterClicks merges consecutive eligible clicks within
// ClusterGapMs into clusters, anchored on each cluster's last click.
func clusterClicks(clicks []schema.InputEvent) []cluster {
	if len(clicks) == 0 {
		return nil
	}
	var clusters []cluster
	for i := 1; i <= len(clicks); i++ {
		if i == len(clicks) || clicks[i].TsMs-clicks[i-1].TsMs > ClusterGapMs {
			clusters = append(clusters, cluster{Anchor: clicks[i-1]})
		}
	}
	return clusters
}
