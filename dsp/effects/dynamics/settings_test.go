package dynamics

import (
	"math"
	"testing"
)

func TestNewSettings_CoefficientDerivation(t *testing.T) {
	s := NewSettings(-12, 4, 20, 150, 3, 44100)

	if s.ThresholdDB != -12 {
		t.Errorf("ThresholdDB = %v, want -12", s.ThresholdDB)
	}
	if s.Ratio != 4 {
		t.Errorf("Ratio = %v, want 4", s.Ratio)
	}
	if s.MakeupDB != 3 {
		t.Errorf("MakeupDB = %v, want 3", s.MakeupDB)
	}

	wantAttack := math.Exp(-1 / (0.020 * 44100))
	wantRelease := math.Exp(-1 / (0.150 * 44100))
	if s.AttackCoef != wantAttack {
		t.Errorf("AttackCoef = %v, want %v", s.AttackCoef, wantAttack)
	}
	if s.ReleaseCoef != wantRelease {
		t.Errorf("ReleaseCoef = %v, want %v", s.ReleaseCoef, wantRelease)
	}

	// Longer time constants smooth harder.
	if s.AttackCoef >= s.ReleaseCoef {
		t.Errorf("attack coef %v should be below release coef %v for 20 ms vs 150 ms",
			s.AttackCoef, s.ReleaseCoef)
	}
	for _, c := range []float64{s.AttackCoef, s.ReleaseCoef} {
		if c <= 0 || c >= 1 {
			t.Errorf("coefficient %v outside (0, 1)", c)
		}
	}
}

func TestNewSettings_ClampsRatio(t *testing.T) {
	for _, ratio := range []float64{0.5, 0, -3} {
		s := NewSettings(-12, ratio, 20, 150, 0, 44100)
		if s.Ratio != 1 {
			t.Errorf("ratio %v: got %v, want clamp to 1", ratio, s.Ratio)
		}
	}

	if s := NewSettings(-12, 8, 20, 150, 0, 44100); s.Ratio != 8 {
		t.Errorf("ratio 8 should pass through, got %v", s.Ratio)
	}
}

func TestNewSettings_FloorsTimeConstants(t *testing.T) {
	floored := NewSettings(-12, 4, 0.1, 0.1, 0, 44100)

	for _, attackMs := range []float64{0, -5, 0.05} {
		s := NewSettings(-12, 4, attackMs, 0.1, 0, 44100)
		if s.AttackCoef != floored.AttackCoef {
			t.Errorf("attack %v ms: coef %v, want floored value %v",
				attackMs, s.AttackCoef, floored.AttackCoef)
		}
	}

	// Above the floor the coefficient must move.
	if s := NewSettings(-12, 4, 0.2, 0.1, 0, 44100); s.AttackCoef == floored.AttackCoef {
		t.Error("attack 0.2 ms should differ from the floored coefficient")
	}
}

func TestNewSettings_ScalesWithSampleRate(t *testing.T) {
	s44 := NewSettings(-12, 4, 20, 150, 0, 44100)
	s96 := NewSettings(-12, 4, 20, 150, 0, 96000)

	// The same wall-clock time spans more samples at a higher rate, so the
	// per-sample coefficient has to sit closer to 1.
	if s96.AttackCoef <= s44.AttackCoef {
		t.Errorf("attack coef at 96 kHz (%v) should exceed coef at 44.1 kHz (%v)",
			s96.AttackCoef, s44.AttackCoef)
	}
}

func TestBandParams_Settings(t *testing.T) {
	bp := BandParams{ThresholdDB: -18, Ratio: 3, AttackMs: 12, ReleaseMs: 90, MakeupDB: 2}

	got := bp.Settings(48000)
	want := NewSettings(-18, 3, 12, 90, 2, 48000)
	if got != want {
		t.Fatalf("BandParams.Settings = %+v, want %+v", got, want)
	}
}
