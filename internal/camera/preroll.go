package camera

import (
	"math"

	"github.com/neurochelplus/NeuroScreenCaster/internal/schema"
)

// preRollFor returns how far before anchorTs the locked segment should
// actually start: the earliest timestamp in the trailing
// PreRollMs window where cursor speed, computed between consecutive
// move events, first drops below SlowdownPxPerSec. 0 if the cursor
// never slows in that window (or there aren't enough samples to tell).
func preRollFor(moves []schema.InputEvent, anchorTs float64) float64 {
	windowStart := anchorTs - PreRollMs

	var rel []schema.InputEvent
	for _, e := range moves {
		if e.TsMs > anchorTs {
			break
		}
		if e.TsMs >= windowStart-1 {
			rel = append(rel, e)
		}
	}
	if len(rel) < 2 {
		return 0
	}

	for i := 1; i < len(rel); i++ {
		if rel[i].TsMs < windowStart {
			continue
		}
		dtMs := rel[i].TsMs - rel[i-1].TsMs
		if dtMs <= 0 {
			continue
		}
		dx := rel[i].X - rel[i-1].X
		dy := rel[i].Y - rel[i-1].Y
		speed := math.Hypot(dx, dy) / (dtMs / 1000.0)
		if speed < SlowdownPxPerSec {
			preRoll := anchorTs - rel[i].TsMs
			if preRoll > PreRollMs {
				preRoll = PreRollMs
			}
			if preRoll < 0 {
				preRoll = 0
			}
			return preRoll
		}
	}
	return 0
}

func moveEvents(events []schema.InputEvent) []schema.InputEvent {
	var out []schema.InputEvent
	for _, e := range events {
		if e.Type == schema.EventMove {
			out = append(out, e)
		}
	}
	return out
}
