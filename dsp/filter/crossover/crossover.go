package crossover

import (
	"fmt"

	"github.com/cwbudde/algo-multiband/dsp/filter/biquad"
)

// Filters splits one audio channel into low, mid, and high bands using
// four cascades of two Butterworth sections each:
//
//	low  = input → LP(lowFreq) → LP(lowFreq)
//	mid  = input → HP(lowFreq) → HP(lowFreq) → LP(highFreq) → LP(highFreq)
//	high = input → HP(highFreq) → HP(highFreq)
//
// Each two-section cascade is a 4th-order Linkwitz-Riley slope, so
// adjacent bands sum flat in magnitude; the three-band sum carries small
// ripple near the split points from the phase interaction of the
// non-adjacent paths (see the package documentation).
//
// The section arrays are fixed-size values, so a slice of Filters (one
// per channel) is a single contiguous allocation with no pointer
// chasing in the per-sample path.
type Filters struct {
	lowLP  [2]biquad.Section
	midHP  [2]biquad.Section
	midLP  [2]biquad.Section
	highHP [2]biquad.Section

	lowFreq    float64
	highFreq   float64
	sampleRate float64
}

// NewFilters creates a three-band splitter with validated split
// frequencies. Both frequencies must lie in (0, sampleRate/2) with
// lowFreq < highFreq.
//
// Callers driving the splitter from unclamped parameter values should
// derive the frequencies with [ClampFrequencies] instead of validating
// themselves.
func NewFilters(lowFreq, highFreq, sampleRate float64) (*Filters, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("crossover: sample rate must be positive, got %v", sampleRate)
	}
	nyquist := sampleRate / 2
	if lowFreq <= 0 || lowFreq >= nyquist {
		return nil, fmt.Errorf("crossover: low split must be in (0, %v), got %v", nyquist, lowFreq)
	}
	if highFreq <= lowFreq || highFreq >= nyquist {
		return nil, fmt.Errorf("crossover: high split must be in (%v, %v), got %v", lowFreq, nyquist, highFreq)
	}

	f := &Filters{}
	f.Design(lowFreq, highFreq, sampleRate)
	return f, nil
}

// Design re-derives all eight sections for the given split frequencies
// and clears every delay line, so the swap cannot click. The frequencies
// are applied as given; use [ClampFrequencies] first when they come from
// raw parameter values.
func (f *Filters) Design(lowFreq, highFreq, sampleRate float64) {
	for i := range f.lowLP {
		f.lowLP[i].SetLowpass(lowFreq, sampleRate)
	}
	for i := range f.midHP {
		f.midHP[i].SetHighpass(lowFreq, sampleRate)
	}
	for i := range f.midLP {
		f.midLP[i].SetLowpass(highFreq, sampleRate)
	}
	for i := range f.highHP {
		f.highHP[i].SetHighpass(highFreq, sampleRate)
	}

	f.lowFreq = lowFreq
	f.highFreq = highFreq
	f.sampleRate = sampleRate
}

// Split filters one input sample into its three band components.
// O(1), allocation-free.
func (f *Filters) Split(x float64) (low, mid, high float64) {
	low = x
	for i := range f.lowLP {
		low = f.lowLP[i].ProcessSample(low)
	}

	high = x
	for i := range f.highHP {
		high = f.highHP[i].ProcessSample(high)
	}

	mid = x
	for i := range f.midHP {
		mid = f.midHP[i].ProcessSample(mid)
	}
	for i := range f.midLP {
		mid = f.midLP[i].ProcessSample(mid)
	}

	return low, mid, high
}

// SplitBlock filters a block of input samples, writing the band outputs
// to low, mid, and high. All four slices must have the same length.
func (f *Filters) SplitBlock(input, low, mid, high []float64) {
	n := len(input)
	if n == 0 {
		return
	}
	_ = low[n-1]
	_ = mid[n-1]
	_ = high[n-1]

	copy(low, input)
	for i := range f.lowLP {
		f.lowLP[i].ProcessBlock(low)
	}

	copy(high, input)
	for i := range f.highHP {
		f.highHP[i].ProcessBlock(high)
	}

	copy(mid, input)
	for i := range f.midHP {
		f.midHP[i].ProcessBlock(mid)
	}
	for i := range f.midLP {
		f.midLP[i].ProcessBlock(mid)
	}
}

// Reset clears all section delay lines without touching coefficients.
func (f *Filters) Reset() {
	for i := range f.lowLP {
		f.lowLP[i].Reset()
	}
	for i := range f.midHP {
		f.midHP[i].Reset()
	}
	for i := range f.midLP {
		f.midLP[i].Reset()
	}
	for i := range f.highHP {
		f.highHP[i].Reset()
	}
}

// LowFrequency returns the applied low/mid split frequency in Hz.
func (f *Filters) LowFrequency() float64 { return f.lowFreq }

// HighFrequency returns the applied mid/high split frequency in Hz.
func (f *Filters) HighFrequency() float64 { return f.highFreq }

// SampleRate returns the sample rate the sections were designed for.
func (f *Filters) SampleRate() float64 { return f.sampleRate }

// LowChain returns the low band path as an analysis chain carrying the
// same coefficients as the internal cascade.
func (f *Filters) LowChain() *biquad.Chain {
	return biquad.NewChain([]biquad.Coefficients{
		f.lowLP[0].Coefficients,
		f.lowLP[1].Coefficients,
	})
}

// MidChain returns the mid band path (highpass then lowpass cascades) as
// an analysis chain.
func (f *Filters) MidChain() *biquad.Chain {
	return biquad.NewChain([]biquad.Coefficients{
		f.midHP[0].Coefficients,
		f.midHP[1].Coefficients,
		f.midLP[0].Coefficients,
		f.midLP[1].Coefficients,
	})
}

// HighChain returns the high band path as an analysis chain.
func (f *Filters) HighChain() *biquad.Chain {
	return biquad.NewChain([]biquad.Coefficients{
		f.highHP[0].Coefficients,
		f.highHP[1].Coefficients,
	})
}
