// Package response measures the realized magnitude response of a
// three-band crossover design.
//
// [Bands] drives a unit impulse through a stateless copy of a
// crossover.Filters value, transforms the three band outputs with an FFT
// and reports per-bin magnitudes in dB alongside the response of the
// reconstructed (summed) signal. The summed response quantifies how far
// the crossover is from a perfect allpass: two cascaded Butterworth
// sections per side form Linkwitz-Riley slopes whose adjacent-band sums
// are flat in magnitude, but the full three-band sum carries residual
// ripple near the split frequencies. [BandResponse.MaxSumDeviationDB]
// condenses that ripple into a single number over a frequency range.
//
// This package runs offline; nothing here is suitable for the real-time
// processing path.
package response
