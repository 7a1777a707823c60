package biquad_test

import (
	"fmt"

	"github.com/cwbudde/algo-multiband/dsp/filter/biquad"
)

func ExampleSection_ProcessSample() {
	// Create a lowpass-like biquad section.
	s := biquad.NewSection(biquad.Coefficients{
		B0: 0.25, B1: 0.5, B2: 0.25,
		A1: -0.2, A2: 0.04,
	})

	// Process an impulse.
	for i := range 6 {
		var x float64
		if i == 0 {
			x = 1
		}

		y := s.ProcessSample(x)
		fmt.Printf("y[%d] = %.6f\n", i, y)
	}
	// Output:
	// y[0] = 0.250000
	// y[1] = 0.550000
	// y[2] = 0.350000
	// y[3] = 0.048000
	// y[4] = -0.004400
	// y[5] = -0.002800
}

func ExampleLowpass() {
	// A Butterworth section (Q = 1/sqrt2) sits exactly 3.01 dB down at
	// its cutoff.
	c := biquad.Lowpass(1000, 48000)

	fmt.Printf("cutoff: %.2f dB\n", c.MagnitudeDB(1000, 48000))
	// Output:
	// cutoff: -3.01 dB
}

func ExampleChain() {
	// Two cascaded Butterworth sections form a 4th-order Linkwitz-Riley
	// slope: -6.02 dB at the crossover frequency.
	fc := 1000.0
	chain := biquad.NewChain([]biquad.Coefficients{
		biquad.Lowpass(fc, 48000),
		biquad.Lowpass(fc, 48000),
	})

	fmt.Printf("order %d\n", chain.Order())
	fmt.Printf("crossover: %.2f dB\n", chain.MagnitudeDB(fc, 48000))
	// Output:
	// order 4
	// crossover: -6.02 dB
}
