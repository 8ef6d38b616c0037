package geometry

// PixelRect is a rectangle in physical screen pixels, as reported by
// a click's UI-context bounding rect.
type PixelRect struct {
	X, Y, Width, Height float64
}

// Normalize converts a PixelRect captured on a screen of the given
// physical dimensions into a NormalizedRect in source-frame
// coordinates. It does not clamp to the rect invariants itself; Pad,
// AspectLock and the other resizing helpers re-clamp their results.
func (p PixelRect) Normalize(screenWidth, screenHeight float64) Rect {
	if screenWidth <= 0 || screenHeight <= 0 {
		return Rect{}
	}
	return Rect{
		X: p.X / screenWidth,
		Y: p.Y / screenHeight,
		W: p.Width / screenWidth,
		H: p.Height / screenHeight,
	}
}

// Pad grows r by `fraction` of its longer side on each axis, centered
// on the original rect. Used for SEMANTIC_PAD.
func (r Rect) Pad(fraction float64) Rect {
	longer := maxF(r.W, r.H)
	delta := longer * fraction
	cx, cy := r.Center()
	r.W += 2 * delta
	r.H += 2 * delta
	return r.CenteredAt(cx, cy)
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
