// Package cursor implements the cursor pipeline: EWMA smoothing of raw
// pointer samples, binary-search interpolation, and the click-pulse
// scaling signal.
//
// The Scale/Add/Subtract vector helpers below mirror a CursorPosition
// vector-arithmetic style, generalized from int16 pixel coordinates to
// normalized float64 ones.
package cursor

import "sort"

// Sample is a normalized CursorSample: ts in milliseconds
// since recording start, x/y normalized to the captured screen.
type Sample struct {
	TsMs float64
	X, Y float64
}

// Scale multiplies a sample's position by a scalar, keeping its
// timestamp.
func (s Sample) Scale(k float64) Sample {
	return Sample{TsMs: s.TsMs, X: s.X * k, Y: s.Y * k}
}

// Add adds two samples' positions, keeping the receiver's timestamp.
func (s Sample) Add(o Sample) Sample {
	return Sample{TsMs: s.TsMs, X: s.X + o.X, Y: s.Y + o.Y}
}

// Subtract subtracts o's position from s's, keeping the receiver's
// timestamp.
func (s Sample) Subtract(o Sample) Sample {
	return Sample{TsMs: s.TsMs, X: s.X - o.X, Y: s.Y - o.Y}
}

// Smooth applies a first-order exponential moving average:
// out[i] = out[i-1] + alpha*(in[i]-out[i-1]), with
// alpha = 1 - 0.9*smoothingFactor. smoothingFactor must be in [0,1];
// values outside that range are clamped. The input must already be
// sorted and strictly non-decreasing in TsMs; Smooth does
// not re-sort.
func Smooth(in []Sample, smoothingFactor float64) []Sample {
	if len(in) == 0 {
		return nil
	}
	if smoothingFactor < 0 {
		smoothingFactor = 0
	}
	if smoothingFactor > 1 {
		smoothingFactor = 1
	}
	alpha := 1 - 0.9*smoothingFactor

	out := make([]Sample, len(in))
	out[0] = in[0]
	for i := 1; i < len(in); i++ {
		prev := out[i-1]
		cur := in[i]
		out[i] = Sample{
			TsMs: cur.TsMs,
			X:    prev.X + alpha*(cur.X-prev.X),
			Y:    prev.Y + alpha*(cur.Y-prev.Y),
		}
	}
	return out
}

// Interpolate samples the cursor position at ts via binary search +
// linear interpolation between the two adjacent samples.
// Requests outside the sample range clamp to the first/last sample.
func Interpolate(samples []Sample, ts float64) (x, y float64) {
	n := len(samples)
	if n == 0 {
		return 0, 0
	}
	if n == 1 || ts <= samples[0].TsMs {
		return samples[0].X, samples[0].Y
	}
	if ts >= samples[n-1].TsMs {
		return samples[n-1].X, samples[n-1].Y
	}

	// Find the first sample with TsMs >= ts.
	idx := sort.Search(n, func(i int) bool { return samples[i].TsMs >= ts })
	hi := samples[idx]
	lo := samples[idx-1]
	span := hi.TsMs - lo.TsMs
	if span <= 0 {
		return hi.X, hi.Y
	}
	t := (ts - lo.TsMs) / span
	return lo.X + t*(hi.X-lo.X), lo.Y + t*(hi.Y-lo.Y)
}
