package followcursor

import (
	"testing"

	"github.com/neurochelplus/NeuroScreenCaster/internal/geometry"
	"github.com/neurochelplus/NeuroScreenCaster/internal/segment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateStaysWithinDeadZoneWhenCursorStill(t *testing.T) {
	seg := segment.Segment{
		StartTsMs:   0,
		EndTsMs:     300,
		InitialRect: geometry.Rect{X: 0.4, Y: 0.4, W: 0.2, H: 0.2},
		Mode:        segment.ModeFollowCursor,
	}
	// Cursor sits at the rect's center the whole time: offset is zero,
	// well inside the dead zone, so the center never moves.
	cx, cy := seg.InitialRect.Center()
	sampler := SamplerFunc(func(ts float64) (float64, float64) { return cx, cy })

	points := Generate(seg, sampler, 1920, 1080)
	require.NotEmpty(t, points)
	for _, p := range points {
		pcx, pcy := p.Rect.Center()
		assert.InDelta(t, cx, pcx, 1e-6)
		assert.InDelta(t, cy, pcy, 1e-6)
	}
}

func TestGenerateTracksCursorPastHardEdge(t *testing.T) {
	seg := segment.Segment{
		StartTsMs:   0,
		EndTsMs:     2000,
		InitialRect: geometry.Rect{X: 0.3, Y: 0.3, W: 0.2, H: 0.2},
		Mode:        segment.ModeFollowCursor,
	}
	// Cursor parked far to the right, well past the hard edge.
	sampler := SamplerFunc(func(ts float64) (float64, float64) { return 0.9, 0.4 })

	points := Generate(seg, sampler, 1920, 1080)
	require.NotEmpty(t, points)
	last := points[len(points)-1]
	firstCx, _ := points[0].Rect.Center()
	lastCx, _ := last.Rect.Center()
	assert.Greater(t, lastCx, firstCx)
	assert.True(t, last.Rect.Valid())
}

func TestGenerateSpacingMatchesStep(t *testing.T) {
	seg := segment.Segment{
		StartTsMs:   0,
		EndTsMs:     230,
		InitialRect: geometry.Rect{X: 0.4, Y: 0.4, W: 0.2, H: 0.2},
		Mode:        segment.ModeFollowCursor,
	}
	sampler := SamplerFunc(func(ts float64) (float64, float64) { return 0.5, 0.5 })
	points := Generate(seg, sampler, 1920, 1080)
	require.True(t, len(points) >= 3)
	assert.Equal(t, 0.0, points[0].TsMs)
	assert.Equal(t, 75.0, points[1].TsMs)
	assert.Equal(t, 150.0, points[2].TsMs)
	assert.Equal(t, 230.0, points[len(points)-1].TsMs)
}
