// Package crossover provides the three-band splitter used by the
// multiband dynamics processor.
//
// [Filters] holds four cascades of two Butterworth biquad sections: a
// lowpass pair at the low/mid split, a highpass pair at the same split,
// and a lowpass/highpass pair at the mid/high split. Each pair forms a
// 4th-order Linkwitz-Riley slope, so any adjacent band pair sums to an
// allpass (flat magnitude). The full low+mid+high sum is only
// approximately flat: the low and high paths reach the opposite split
// with residual phase, which leaves a fraction-of-a-dB ripple near the
// split frequencies when they sit at least a decade apart. The ripple
// is accepted rather than corrected; measure/response quantifies it.
//
// Coefficient updates are governed by an explicit policy rather than
// recomputed per block: [ShouldRecompute] implements the hysteresis
// comparison and [ClampFrequencies] derives safe design frequencies
// from raw parameter values. Redesigning clears all delay lines (see
// the biquad package for the click trade-off), which is exactly why
// the hysteresis exists.
package crossover
