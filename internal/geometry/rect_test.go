package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRectClampFloor(t *testing.T) {
	r := Rect{X: 0, Y: 0, W: 0.001, H: 0.001}.Clamp()
	require.True(t, r.Valid())
	assert.Equal(t, MinRectSize, r.W)
	assert.Equal(t, MinRectSize, r.H)
}

func TestRectClampSpill(t *testing.T) {
	r := Rect{X: 0.9, Y: 0.9, W: 0.5, H: 0.5}.Clamp()
	assert.True(t, r.Valid())
	assert.LessOrEqual(t, r.X+r.W, 1.0+1e-9)
	assert.LessOrEqual(t, r.Y+r.H, 1.0+1e-9)
}

func TestZoomStrength(t *testing.T) {
	r := Rect{W: 0.5, H: 0.25}
	assert.InDelta(t, 2.0, r.ZoomStrength(), 1e-9)
}

func TestAspectLockWidensShorterAxis(t *testing.T) {
	r := Rect{X: 0.4, Y: 0.4, W: 0.1, H: 0.2}
	locked := r.AspectLock(16.0 / 9.0)
	assert.InDelta(t, 16.0/9.0, locked.W/locked.H, 1e-6)
	cx, cy := r.Center()
	lcx, lcy := locked.Center()
	assert.InDelta(t, cx, lcx, 1e-6)
	assert.InDelta(t, cy, lcy, 1e-6)
}

func TestContainsAndShrink(t *testing.T) {
	outer := Rect{X: 0.2, Y: 0.2, W: 0.4, H: 0.4}
	safe := outer.Shrink(0.1)
	assert.True(t, outer.Contains(safe))
	inner := Rect{X: 0.25, Y: 0.25, W: 0.1, H: 0.1}
	assert.True(t, outer.Contains(inner))
	assert.False(t, inner.Contains(outer))
}

func TestWithZoomStrengthPreservesAspect(t *testing.T) {
	r := Rect{X: 0.4, Y: 0.45, W: 0.2, H: 0.1}
	z := r.WithZoomStrength(2.0)
	assert.InDelta(t, 2.0, z.ZoomStrength(), 1e-9)
	assert.InDelta(t, r.W/r.H, z.W/z.H, 1e-6)
}

func TestPixelRectNormalize(t *testing.T) {
	p := PixelRect{X: 300, Y: 250, Width: 200, Height: 100}
	n := p.Normalize(1920, 1080)
	assert.InDelta(t, 300.0/1920.0, n.X, 1e-9)
	assert.InDelta(t, 100.0/1080.0, n.H, 1e-9)
}

func TestPad(t *testing.T) {
	r := Rect{X: 0.4, Y: 0.4, W: 0.2, H: 0.1}
	padded := r.Pad(0.06)
	assert.Greater(t, padded.W, r.W)
	assert.Greater(t, padded.H, r.H)
	cx, cy := r.Center()
	pcx, pcy := padded.Center()
	assert.InDelta(t, cx, pcx, 1e-6)
	assert.InDelta(t, cy, pcy, 1e-6)
}
