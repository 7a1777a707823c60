package biquad

import "math"

// butterworthQ is the quality factor of a single second-order Butterworth
// section, 1/sqrt(2).
const butterworthQ = 1 / math.Sqrt2

// Lowpass designs a second-order Butterworth lowpass section at the given
// cutoff frequency using the RBJ cookbook bilinear transform.
//
// The caller must ensure 0 < freq < sampleRate/2. Outside that range the
// returned coefficients are degenerate (not NaN-guarded); frequency
// clamping is a caller responsibility, see crossover.ClampFrequencies.
func Lowpass(freq, sampleRate float64) Coefficients {
	omega := 2 * math.Pi * freq / sampleRate
	cosw := math.Cos(omega)
	sinw := math.Sin(omega)
	alpha := sinw / (2 * butterworthQ)

	a0 := 1 + alpha

	return Coefficients{
		B0: (1 - cosw) / 2 / a0,
		B1: (1 - cosw) / a0,
		B2: (1 - cosw) / 2 / a0,
		A1: -2 * cosw / a0,
		A2: (1 - alpha) / a0,
	}
}

// Highpass designs a second-order Butterworth highpass section at the given
// cutoff frequency. Same preconditions as Lowpass.
func Highpass(freq, sampleRate float64) Coefficients {
	omega := 2 * math.Pi * freq / sampleRate
	cosw := math.Cos(omega)
	sinw := math.Sin(omega)
	alpha := sinw / (2 * butterworthQ)

	a0 := 1 + alpha

	return Coefficients{
		B0: (1 + cosw) / 2 / a0,
		B1: -(1 + cosw) / a0,
		B2: (1 + cosw) / 2 / a0,
		A1: -2 * cosw / a0,
		A2: (1 - alpha) / a0,
	}
}

// SetLowpass loads Butterworth lowpass coefficients and clears the delay
// line so the coefficient change cannot click.
func (s *Section) SetLowpass(freq, sampleRate float64) {
	s.SetCoefficients(Lowpass(freq, sampleRate))
}

// SetHighpass loads Butterworth highpass coefficients and clears the delay
// line so the coefficient change cannot click.
func (s *Section) SetHighpass(freq, sampleRate float64) {
	s.SetCoefficients(Highpass(freq, sampleRate))
}
