package biquad

import (
	"math"
	"testing"
)

func TestLowpass_EdgeGains(t *testing.T) {
	c := Lowpass(1000, 48000)

	// Unity gain at DC.
	if got := c.MagnitudeSquared(0, 48000); !almostEqual(got, 1, 1e-12) {
		t.Errorf("DC gain: got %v, want 1", got)
	}

	// -3.01 dB at the cutoff: a Butterworth section with Q=1/sqrt(2) has
	// |H(fc)| = Q exactly.
	if got := c.MagnitudeDB(1000, 48000); !almostEqual(got, 10*math.Log10(0.5), 1e-9) {
		t.Errorf("cutoff gain: got %v dB, want %v dB", got, 10*math.Log10(0.5))
	}

	// Strong attenuation two octaves up (ideal 4th: -24 dB; 2nd order
	// gives about -12 dB/octave beyond cutoff).
	if got := c.MagnitudeDB(4000, 48000); got > -20 {
		t.Errorf("stopband at 4 kHz: got %v dB, want < -20 dB", got)
	}
}

func TestHighpass_EdgeGains(t *testing.T) {
	c := Highpass(1000, 48000)

	// Unity gain at Nyquist.
	if got := c.MagnitudeSquared(24000, 48000); !almostEqual(got, 1, 1e-9) {
		t.Errorf("Nyquist gain: got %v, want 1", got)
	}

	if got := c.MagnitudeDB(1000, 48000); !almostEqual(got, 10*math.Log10(0.5), 1e-9) {
		t.Errorf("cutoff gain: got %v dB, want %v dB", got, 10*math.Log10(0.5))
	}

	if got := c.MagnitudeDB(250, 48000); got > -20 {
		t.Errorf("stopband at 250 Hz: got %v dB, want < -20 dB", got)
	}
}

func TestLowpassHighpass_PowerComplementary(t *testing.T) {
	// Butterworth LP and HP at the same cutoff satisfy
	// |LP(f)|^2 + |HP(f)|^2 = 1 for all f.
	const sampleRate = 44100.0

	lp := Lowpass(800, sampleRate)
	hp := Highpass(800, sampleRate)

	for _, f := range []float64{20, 100, 400, 800, 1600, 5000, 15000, 22000} {
		sum := lp.MagnitudeSquared(f, sampleRate) + hp.MagnitudeSquared(f, sampleRate)
		if !almostEqual(sum, 1, 1e-9) {
			t.Errorf("f=%v: |LP|^2+|HP|^2 = %v, want 1", f, sum)
		}
	}
}

func TestSetLowpass_ClearsState(t *testing.T) {
	s := NewSection(Identity())
	s.ProcessSample(1)
	s.ProcessSample(0.5)
	_ = s.ProcessSample(-0.25)

	s.SetLowpass(500, 44100)
	if st := s.State(); st != [2]float64{0, 0} {
		t.Fatalf("state after SetLowpass: %v, want zero", st)
	}

	s.ProcessSample(1)
	s.SetHighpass(2000, 44100)
	if st := s.State(); st != [2]float64{0, 0} {
		t.Fatalf("state after SetHighpass: %v, want zero", st)
	}
}

func TestDesign_StableAcrossRange(t *testing.T) {
	// Any cutoff inside (0, Nyquist) must give a stable section: for a
	// second-order polynomial, |A2| < 1 and |A1| < 1 + A2 puts both poles
	// inside the unit circle.
	const sampleRate = 44100.0

	for _, f := range []float64{10, 50, 200, 1000, 5000, 15000, 21000, 21800} {
		for _, c := range []Coefficients{Lowpass(f, sampleRate), Highpass(f, sampleRate)} {
			if math.Abs(c.A2) >= 1 || math.Abs(c.A1) >= 1+c.A2 {
				t.Errorf("f=%v: unstable coefficients %+v", f, c)
			}
		}
	}
}

func TestDesign_BoundedOutputOnNoise(t *testing.T) {
	const sampleRate = 44100.0

	s := NewSection(Lowpass(120, sampleRate))

	// Worst-case bounded input: full-scale alternating signal.
	var maxAbs float64
	for i := range 50000 {
		x := 1.0
		if i%2 == 1 {
			x = -1
		}
		y := s.ProcessSample(x)
		if math.IsNaN(y) || math.IsInf(y, 0) {
			t.Fatalf("non-finite output at sample %d", i)
		}
		if a := math.Abs(y); a > maxAbs {
			maxAbs = a
		}
	}

	// A stable unity-DC-gain lowpass cannot blow up; allow generous headroom
	// for transient overshoot.
	if maxAbs > 4 {
		t.Errorf("output peak %v exceeds stability bound", maxAbs)
	}
}
