package crossover

import (
	"math"

	"github.com/cwbudde/algo-multiband/dsp/core"
)

const (
	// DefaultHysteresisHz is the recompute threshold used by the
	// multiband processor: requested split frequencies within this
	// distance of the ones already applied leave the filters untouched,
	// so sub-Hz parameter jitter cannot trigger per-block redesigns and
	// the state resets that come with them.
	DefaultHysteresisHz = 0.5

	// MinFrequencyHz is the lowest permitted low/mid split frequency.
	MinFrequencyHz = 10.0

	// MinSeparationHz is the minimum distance kept between the two split
	// frequencies.
	MinSeparationHz = 10.0

	// lowNyquistFactor and highNyquistFactor bound the split frequencies
	// below Nyquist so the Butterworth designs stay well-conditioned.
	lowNyquistFactor  = 0.8
	highNyquistFactor = 0.99
)

// ShouldRecompute reports whether a requested frequency differs from the
// currently applied one by more than threshold. A difference of exactly
// threshold does not trigger a recompute.
func ShouldRecompute(requested, current, threshold float64) bool {
	return math.Abs(requested-current) > threshold
}

// ClampFrequencies derives safe split frequencies from raw requested
// values: the low/mid split lands in [MinFrequencyHz, 0.8*nyquist] and
// the mid/high split in [low+MinSeparationHz, 0.99*nyquist]. The result
// always satisfies low < high with both strictly below Nyquist, which
// keeps every section design stable.
func ClampFrequencies(loMid, midHi, sampleRate float64) (low, high float64) {
	nyquist := sampleRate / 2

	low = core.Clamp(loMid, MinFrequencyHz, nyquist*lowNyquistFactor)
	high = core.Clamp(midHi, low+MinSeparationHz, nyquist*highNyquistFactor)

	return low, high
}
