package dynamics

import "math"

// Level conversion floor. Amplitudes at or below MinusInfinityGain are
// treated as silence and map to MinusInfinityDB. Keeping the floor finite
// matters for the envelope followers: a one-pole smoother pulled to an
// actual -Inf would never come back.
const (
	MinusInfinityDB   = -100.0
	MinusInfinityGain = 1e-5
)

// GainToDB converts a linear amplitude to decibels, flooring at
// MinusInfinityDB.
func GainToDB(gain float64) float64 {
	return 20 * mathLog10(math.Max(gain, MinusInfinityGain))
}

// DBToGain converts decibels to a linear amplitude. Values at or below
// MinusInfinityDB map to exactly 0.
func DBToGain(db float64) float64 {
	if db > MinusInfinityDB {
		return mathPower10(db / 20)
	}
	return 0
}
