package segment

import (
	"testing"

	"github.com/neurochelplus/NeuroScreenCaster/internal/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func zoomedRect(z float64) geometry.Rect {
	return geometry.Rect{X: 0.4, Y: 0.4, W: 1 / z, H: 1 / z}
}

func TestTrimAutoNoopDropsLeadingNoop(t *testing.T) {
	s := Segment{
		IsAuto:      true,
		InitialRect: zoomedRect(1.0),
		StartTsMs:   0,
		EndTsMs:     1000,
		TargetPoint: []TargetPoint{
			{TsMs: 0, Rect: zoomedRect(1.0)},
			{TsMs: 100, Rect: zoomedRect(1.0)},
			{TsMs: 200, Rect: zoomedRect(2.0)},
		},
	}
	out, ok := TrimAutoNoop(s)
	require.True(t, ok)
	require.Len(t, out.TargetPoint, 1)
	assert.Equal(t, 200.0, out.TargetPoint[0].TsMs)
	assert.Equal(t, 200.0, out.StartTsMs)
}

func TestTrimAutoNoopDropsWholeSegment(t *testing.T) {
	s := Segment{
		IsAuto:      true,
		InitialRect: zoomedRect(1.0),
		TargetPoint: []TargetPoint{{TsMs: 0, Rect: zoomedRect(1.0)}},
	}
	_, ok := TrimAutoNoop(s)
	assert.False(t, ok)
}

// A segment whose InitialRect is still zoomed from an earlier
// processing step, but whose only TargetPoint was a no-op retarget,
// must be dropped: once trimming consumes every target point the
// segment ever had, InitialRect no longer has a say.
func TestTrimAutoNoopDropsWholeSegmentDespiteZoomedInitialRect(t *testing.T) {
	s := Segment{
		IsAuto:      true,
		InitialRect: zoomedRect(2.0),
		TargetPoint: []TargetPoint{{TsMs: 0, Rect: zoomedRect(1.0)}},
	}
	_, ok := TrimAutoNoop(s)
	assert.False(t, ok)
}

func TestTrimAutoNoopIdempotent(t *testing.T) {
	s := Segment{
		IsAuto:      true,
		InitialRect: zoomedRect(1.0),
		StartTsMs:   0,
		EndTsMs:     1000,
		TargetPoint: []TargetPoint{
			{TsMs: 0, Rect: zoomedRect(1.0)},
			{TsMs: 200, Rect: zoomedRect(2.0)},
		},
	}
	once, ok1 := TrimAutoNoop(s)
	require.True(t, ok1)
	twice, ok2 := TrimAutoNoop(once)
	require.True(t, ok2)
	assert.Equal(t, once, twice)
}

func TestTrimAutoNoopSkipsManual(t *testing.T) {
	s := Segment{
		IsAuto:      false,
		InitialRect: zoomedRect(1.0),
		TargetPoint: []TargetPoint{{TsMs: 0, Rect: zoomedRect(1.0)}},
	}
	out, ok := TrimAutoNoop(s)
	require.True(t, ok)
	assert.Equal(t, s, out)
}

func TestSortSegments(t *testing.T) {
	segs := []Segment{{ID: "b", StartTsMs: 500}, {ID: "a", StartTsMs: 100}}
	SortSegments(segs)
	assert.Equal(t, "a", segs[0].ID)
	assert.Equal(t, "b", segs[1].ID)
}

func TestMoveSegmentScenario6(t *testing.T) {
	segs := []Segment{
		{ID: "1", StartTsMs: 1000, EndTsMs: 3000},
		{ID: "2", StartTsMs: 4000, EndTsMs: 6000},
	}
	start, end, ok := MoveSegment(segs, "1", 3800, 20000)
	require.True(t, ok)
	assert.InDelta(t, 1800, start, 1e-9)
	assert.InDelta(t, 3800, end, 1e-9)
}

func TestFindAvailableGapCapsAt1600(t *testing.T) {
	segs := []Segment{
		{ID: "1", StartTsMs: 0, EndTsMs: 1000},
		{ID: "2", StartTsMs: 10000, EndTsMs: 11000},
	}
	g, ok := FindAvailableGap(segs, 5000, 20000)
	require.True(t, ok)
	assert.InDelta(t, 1600, g.EndMs-g.StartMs, 1e-9)
	assert.GreaterOrEqual(t, g.StartMs, 1000+MinSegmentGapMs)
	assert.LessOrEqual(t, g.EndMs, 10000-MinSegmentGapMs)
}

func TestFindAvailableGapTooSmall(t *testing.T) {
	segs := []Segment{
		{ID: "1", StartTsMs: 0, EndTsMs: 1000},
		{ID: "2", StartTsMs: 1300, EndTsMs: 2000},
	}
	_, ok := FindAvailableGap(segs, 1150, 20000)
	assert.False(t, ok)
}

func TestFindAvailableGapNeverOverlaps(t *testing.T) {
	segs := []Segment{
		{ID: "1", StartTsMs: 0, EndTsMs: 1000},
		{ID: "2", StartTsMs: 5000, EndTsMs: 6000},
	}
	g, ok := FindAvailableGap(segs, 2000, 20000)
	require.True(t, ok)
	assert.GreaterOrEqual(t, g.StartMs, 1000.0)
	assert.LessOrEqual(t, g.EndMs, 5000.0)
}

func TestRectAtFollowCursorStepSemantics(t *testing.T) {
	s := Segment{
		Mode:        ModeFollowCursor,
		InitialRect: zoomedRect(1.0),
		TargetPoint: []TargetPoint{
			{TsMs: 100, Rect: zoomedRect(2.0)},
			{TsMs: 200, Rect: zoomedRect(3.0)},
		},
	}
	assert.Equal(t, zoomedRect(1.0), s.RectAt(50))
	assert.Equal(t, zoomedRect(2.0), s.RectAt(150))
	assert.Equal(t, zoomedRect(3.0), s.RectAt(250))
}
