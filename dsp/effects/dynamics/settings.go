package dynamics

import "math"

const (
	// minTimeSeconds floors attack and release times. Nonpositive times
	// would turn the one-pole coefficients degenerate or unstable.
	minTimeSeconds = 0.0001
	// minRatio is the unity ratio below which compression has no meaning.
	minRatio = 1.0
)

// Settings holds one band's compression parameters in per-sample form.
// Threshold and makeup stay in dB; attack and release times are already
// folded into one-pole smoothing coefficients for a fixed sample rate, so a
// Settings value is only valid at the rate it was derived for.
type Settings struct {
	ThresholdDB float64
	Ratio       float64
	AttackCoef  float64
	ReleaseCoef float64
	MakeupDB    float64
}

// NewSettings derives per-sample smoothing coefficients from musician-facing
// parameters. Ratio is clamped to at least 1, attack and release times to at
// least 0.1 ms. sampleRate must be positive.
func NewSettings(thresholdDB, ratio, attackMs, releaseMs, makeupDB, sampleRate float64) Settings {
	attackSec := math.Max(attackMs/1000, minTimeSeconds)
	releaseSec := math.Max(releaseMs/1000, minTimeSeconds)

	return Settings{
		ThresholdDB: thresholdDB,
		Ratio:       math.Max(ratio, minRatio),
		AttackCoef:  math.Exp(-1 / (attackSec * sampleRate)),
		ReleaseCoef: math.Exp(-1 / (releaseSec * sampleRate)),
		MakeupDB:    makeupDB,
	}
}
