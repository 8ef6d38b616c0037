package cursor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmoothIdentityWhenFactorZero(t *testing.T) {
	in := []Sample{{0, 0, 0}, {10, 1, 1}, {20, 2, 0.5}}
	out := Smooth(in, 0)
	require.Len(t, out, len(in))
	for i := range in {
		assert.Equal(t, in[i], out[i])
	}
}

func TestSmoothAlphaAtFactorOne(t *testing.T) {
	in := []Sample{{0, 0, 0}, {10, 10, 0}}
	out := Smooth(in, 1)
	// alpha = 0.1 exactly: out[1] = 0 + 0.1*(10-0) = 1
	assert.InDelta(t, 1.0, out[1].X, 1e-9)
}

func TestInterpolateClampsOutsideRange(t *testing.T) {
	samples := []Sample{{100, 1, 1}, {200, 2, 2}}
	x, y := Interpolate(samples, 0)
	assert.Equal(t, 1.0, x)
	assert.Equal(t, 1.0, y)
	x, y = Interpolate(samples, 500)
	assert.Equal(t, 2.0, x)
	assert.Equal(t, 2.0, y)
}

func TestInterpolateLinear(t *testing.T) {
	samples := []Sample{{0, 0, 0}, {100, 10, 20}}
	x, y := Interpolate(samples, 50)
	assert.InDelta(t, 5.0, x, 1e-9)
	assert.InDelta(t, 10.0, y, 1e-9)
}

func TestClickPulseContract(t *testing.T) {
	p := NewPulseSignal([]float64{1000})
	assert.InDelta(t, 0.82, p.Scale(1065), 1e-9)
	assert.InDelta(t, 1.0, p.Scale(1150), 1e-9)
	assert.InDelta(t, 1.0, p.Scale(500), 1e-9) // before any click
}

func TestClickPulseContinuity(t *testing.T) {
	p := NewPulseSignal([]float64{0})
	prev := p.Scale(0)
	for ts := 1.0; ts <= 150; ts++ {
		cur := p.Scale(ts)
		assert.InDelta(t, prev, cur, 0.02)
		prev = cur
	}
}

func TestVectorHelpers(t *testing.T) {
	a := Sample{TsMs: 5, X: 1, Y: 2}
	b := Sample{TsMs: 9, X: 3, Y: 1}
	assert.Equal(t, Sample{TsMs: 5, X: 4, Y: 3}, a.Add(b))
	assert.Equal(t, Sample{TsMs: 5, X: -2, Y: 1}, a.Subtract(b))
	assert.Equal(t, Sample{TsMs: 5, X: 2, Y: 4}, a.Scale(2))
}
