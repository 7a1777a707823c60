package dynamics

import "math"

// BandCompressor compresses a single frequency band. Both the level
// envelope and the applied gain reduction are smoothed in the dB domain
// with asymmetric attack/release one-pole filters.
//
// The envelope follows rising levels at attack speed and falling levels at
// release speed. Gain reduction smoothing swaps the roles: reduction gets
// deeper at attack speed and recovers at release speed, so a transient is
// caught quickly and released gently.
type BandCompressor struct {
	envelopeDB      float64
	gainReductionDB float64
}

// NewBandCompressor returns a compressor at rest: envelope at the silence
// floor, no gain reduction applied.
func NewBandCompressor() BandCompressor {
	return BandCompressor{envelopeDB: MinusInfinityDB}
}

// ProcessSample compresses one sample using the given band settings.
// Settings must have been derived for the sample rate this stream runs at.
func (c *BandCompressor) ProcessSample(input float64, s *Settings) float64 {
	inputAbs := math.Abs(input)
	inputDB := MinusInfinityDB
	if inputAbs > 0 {
		inputDB = GainToDB(inputAbs)
	}

	if inputDB > c.envelopeDB {
		c.envelopeDB = c.envelopeDB*s.AttackCoef + inputDB*(1-s.AttackCoef)
	} else {
		c.envelopeDB = c.envelopeDB*s.ReleaseCoef + inputDB*(1-s.ReleaseCoef)
	}

	targetDB := 0.0
	if c.envelopeDB > s.ThresholdDB {
		targetDB = -((c.envelopeDB - s.ThresholdDB) * (1 - 1/math.Max(s.Ratio, minRatio)))
	}

	if targetDB < c.gainReductionDB {
		c.gainReductionDB = c.gainReductionDB*s.AttackCoef + targetDB*(1-s.AttackCoef)
	} else {
		c.gainReductionDB = c.gainReductionDB*s.ReleaseCoef + targetDB*(1-s.ReleaseCoef)
	}

	return input * DBToGain(c.gainReductionDB+s.MakeupDB)
}

// Reset returns the compressor to rest without touching any settings.
func (c *BandCompressor) Reset() {
	c.envelopeDB = MinusInfinityDB
	c.gainReductionDB = 0
}

// EnvelopeDB returns the current detector level in dB.
func (c *BandCompressor) EnvelopeDB() float64 { return c.envelopeDB }

// GainReductionDB returns the smoothed gain reduction in dB. Zero means no
// reduction; more negative means deeper reduction. Makeup gain is not
// included.
func (c *BandCompressor) GainReductionDB() float64 { return c.gainReductionDB }
