package cursor

import "sort"

// Click-pulse constants. The factor pair (0.82, 150ms
// total / 65ms down-phase) is a contract, not a tunable; it's
// asserted directly in the testable properties.
const (
	pulseFloor      = 0.82
	pulseDownMs     = 65.0
	pulseTotalMs    = 150.0
	pulseUpMs       = pulseTotalMs - pulseDownMs
	pulseInactiveMs = pulseTotalMs
)

// PulseSignal is a deterministic scaling signal driven by click
// timestamps. Build it once per segment/session from the click
// timestamps and reuse it across Scale calls (binary search per
// lookup, no state mutation).
type PulseSignal struct {
	clickTimesMs []float64
}

// NewPulseSignal builds a PulseSignal from a set of click timestamps
// (ms). The slice need not be pre-sorted.
func NewPulseSignal(clickTimesMs []float64) PulseSignal {
	sorted := append([]float64(nil), clickTimesMs...)
	sort.Float64s(sorted)
	return PulseSignal{clickTimesMs: sorted}
}

// Scale returns the click-pulse scale at ts: find the
// latest click tc <= ts; let dt = ts - tc. dt > 150ms => 1. dt <= 65ms
// (down phase) => linear ramp from 1 to 0.82. Otherwise (up phase) =>
// linear ramp from 0.82 back to 1. With no prior click, scale is 1.
func (p PulseSignal) Scale(ts float64) float64 {
	if len(p.clickTimesMs) == 0 {
		return 1
	}
	idx := sort.Search(len(p.clickTimesMs), func(i int) bool {
		return p.clickTimesMs[i] > ts
	})
	if idx == 0 {
		return 1
	}
	tc := p.clickTimesMs[idx-1]
	dt := ts - tc
	if dt > pulseInactiveMs {
		return 1
	}
	if dt <= pulseDownMs {
		return 1 - (1-pulseFloor)*(dt/pulseDownMs)
	}
	return pulseFloor + (1-pulseFloor)*((dt-pulseDownMs)/pulseUpMs)
}
