// Package biquad provides biquad (second-order IIR) filter runtime
// primitives and the Butterworth designs used by the crossover network.
//
// A [Section] implements Direct Form II Transposed processing for a single
// second-order section defined by [Coefficients]. Multiple sections can be
// cascaded via [Chain] for higher-order filters; two cascaded Butterworth
// sections form one 4th-order Linkwitz-Riley crossover slope.
//
// Coefficient updates through [Section.SetCoefficients] (and the
// SetLowpass/SetHighpass shorthands) clear the delay line. A zeroed delay
// line cannot produce the click that stale state excited by new feedback
// coefficients would; the cost is losing in-flight filter memory.
package biquad
