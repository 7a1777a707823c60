package response

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-multiband/dsp/core"
	"github.com/cwbudde/algo-multiband/dsp/filter/crossover"
)

// BandResponse holds the measured magnitude response of a three-band
// crossover, one dB value per FFT bin from DC to Nyquist inclusive.
//
// SumDB is the response of the reconstructed signal (all three bands summed
// before the transform), which is what reaches the output of a multiband
// processor running at unity gain.
type BandResponse struct {
	SampleRate float64
	FFTSize    int

	LowDB  []float64
	MidDB  []float64
	HighDB []float64
	SumDB  []float64
}

// Bands measures the realized response of a crossover design by driving a
// unit impulse through a stateless copy of the splitter and transforming
// the band outputs. The passed Filters value is not modified.
//
// fftSize must be a power of two; it bounds both the frequency resolution
// (sampleRate/fftSize) and the captured impulse-response length.
func Bands(f *crossover.Filters, fftSize int) (*BandResponse, error) {
	if f == nil {
		return nil, fmt.Errorf("response: filters must not be nil")
	}
	if fftSize < 2 || fftSize&(fftSize-1) != 0 {
		return nil, fmt.Errorf("response: fft size must be a power of two >= 2: %d", fftSize)
	}

	// Work on a copy so the measurement neither picks up nor disturbs any
	// in-flight filter state.
	splitter := *f
	splitter.Reset()

	impulse := make([]float64, fftSize)
	impulse[0] = 1

	low := make([]float64, fftSize)
	mid := make([]float64, fftSize)
	high := make([]float64, fftSize)
	splitter.SplitBlock(impulse, low, mid, high)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("response: failed to create FFT plan: %w", err)
	}

	lowBins, err := transform(plan, low)
	if err != nil {
		return nil, err
	}
	midBins, err := transform(plan, mid)
	if err != nil {
		return nil, err
	}
	highBins, err := transform(plan, high)
	if err != nil {
		return nil, err
	}

	sumBins := make([]complex128, len(lowBins))
	for i := range sumBins {
		sumBins[i] = lowBins[i] + midBins[i] + highBins[i]
	}

	return &BandResponse{
		SampleRate: f.SampleRate(),
		FFTSize:    fftSize,
		LowDB:      magnitudeDB(lowBins),
		MidDB:      magnitudeDB(midBins),
		HighDB:     magnitudeDB(highBins),
		SumDB:      magnitudeDB(sumBins),
	}, nil
}

// transform runs a forward FFT over a real signal and returns the
// non-redundant half spectrum, bins 0 through n/2.
func transform(plan *algofft.Plan[complex128], signal []float64) ([]complex128, error) {
	n := len(signal)
	in := make([]complex128, n)
	for i, v := range signal {
		in[i] = complex(v, 0)
	}

	out := make([]complex128, n)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("response: forward FFT failed: %w", err)
	}

	return out[:n/2+1], nil
}

// magnitudeDB converts complex bins to magnitude in dB. Bins with exactly
// zero magnitude report -Inf.
func magnitudeDB(bins []complex128) []float64 {
	re := make([]float64, len(bins))
	im := make([]float64, len(bins))
	for i, c := range bins {
		re[i] = real(c)
		im[i] = imag(c)
	}

	mag := make([]float64, len(bins))
	vecmath.Magnitude(mag, re, im)

	for i, m := range mag {
		mag[i] = core.LinearToDB(m)
	}
	return mag
}

// FrequencyAt returns the center frequency of a bin.
func (r *BandResponse) FrequencyAt(bin int) float64 {
	return float64(bin) * r.SampleRate / float64(r.FFTSize)
}

// MaxSumDeviationDB returns the largest absolute deviation of the summed
// response from unity gain across bins whose center frequency falls in
// [fromHz, toHz]. It reports how far the reconstruction is from allpass
// over that range.
func (r *BandResponse) MaxSumDeviationDB(fromHz, toHz float64) (float64, error) {
	maxDev := math.Inf(-1)
	for bin, db := range r.SumDB {
		freq := r.FrequencyAt(bin)
		if freq < fromHz || freq > toHz {
			continue
		}
		if dev := math.Abs(db); dev > maxDev {
			maxDev = dev
		}
	}

	if math.IsInf(maxDev, -1) {
		return 0, fmt.Errorf("response: no bins between %g Hz and %g Hz at resolution %g Hz",
			fromHz, toHz, r.SampleRate/float64(r.FFTSize))
	}
	return maxDev, nil
}
